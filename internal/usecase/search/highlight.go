package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Markers wrapped around matched terms.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

const ellipsis = "..."

var markRe = regexp.MustCompile(`<mark>.*?</mark>`)

// splitTerms breaks a free-text query into highlightable terms: the full
// phrase plus each word, de-duplicated case-insensitively and ordered longest
// first so a shorter term never fragments a longer overlapping match.
func splitTerms(term string) []string {
	fields := strings.Fields(term)

	terms := make([]string, 0, len(fields)+1)
	if trimmed := strings.TrimSpace(term); len(fields) > 1 && trimmed != "" {
		terms = append(terms, trimmed)
	}
	terms = append(terms, fields...)

	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]
	for _, t := range terms {
		k := strings.ToLower(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// Highlight wraps whole-word occurrences of the terms in <mark> markers.
// Already-marked spans are left untouched, which makes the operation
// idempotent. Returns the marked-up text and whether anything matched.
func Highlight(text string, terms []string) (string, bool) {
	changed := false
	for _, t := range terms {
		re, err := termRegexp(t)
		if err != nil {
			continue
		}
		var c bool
		text, c = replaceOutsideMarks(text, re)
		changed = changed || c
	}
	return text, changed
}

// termRegexp builds a case-insensitive whole-word pattern for a term.
// Boundary anchors are only applied on sides where the term starts or ends
// with a word character ("c++" must not require a trailing boundary).
func termRegexp(term string) (*regexp.Regexp, error) {
	runes := []rune(term)
	pattern := regexp.QuoteMeta(term)
	if isWordRune(runes[0]) {
		pattern = `\b` + pattern
	}
	if isWordRune(runes[len(runes)-1]) {
		pattern += `\b`
	}
	return regexp.Compile(`(?i)` + pattern)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// replaceOutsideMarks substitutes matches of re everywhere except inside
// existing <mark> spans, so markers never nest.
func replaceOutsideMarks(text string, re *regexp.Regexp) (string, bool) {
	wrap := markOpen + "$0" + markClose

	spans := markRe.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		out := re.ReplaceAllString(text, wrap)
		return out, out != text
	}

	var b strings.Builder
	changed := false
	prev := 0
	for _, sp := range spans {
		seg := text[prev:sp[0]]
		rep := re.ReplaceAllString(seg, wrap)
		if rep != seg {
			changed = true
		}
		b.WriteString(rep)
		b.WriteString(text[sp[0]:sp[1]])
		prev = sp[1]
	}

	seg := text[prev:]
	rep := re.ReplaceAllString(seg, wrap)
	if rep != seg {
		changed = true
	}
	b.WriteString(rep)

	return b.String(), changed
}

// Snippet produces a bounded excerpt of content centered on the first
// occurrence of the search term. The window counts runes, not bytes, so
// multi-byte text is never split mid-character.
func Snippet(content, term string, window int) string {
	if window <= 0 {
		window = DefaultSnippetWindow
	}

	runes := []rune(content)
	if len(runes) == 0 {
		return ""
	}

	idx, n := findPrimaryTerm(runes, term)
	if idx < 0 {
		if len(runes) <= window {
			return content
		}
		return string(runes[:window]) + ellipsis
	}

	start := idx + n/2 - window/2
	if start > len(runes)-window {
		start = len(runes) - window
	}
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(runes) {
		end = len(runes)
	}

	out := string(runes[start:end])
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(runes) {
		out += ellipsis
	}
	return out
}

// findPrimaryTerm locates the first occurrence of the most specific term:
// the whole phrase when present, otherwise the longest matching word.
func findPrimaryTerm(content []rune, term string) (idx, length int) {
	for _, t := range splitTerms(term) {
		rt := []rune(t)
		if i := indexFold(content, rt); i >= 0 {
			return i, len(rt)
		}
	}
	return -1, 0
}

// indexFold is a case-insensitive rune-wise substring search.
func indexFold(s, sub []rune) int {
	if len(sub) == 0 || len(sub) > len(s) {
		return -1
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if unicode.ToLower(s[i+j]) != unicode.ToLower(sub[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
