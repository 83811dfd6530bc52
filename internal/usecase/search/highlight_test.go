package search

import (
	"strings"
	"testing"
)

func TestHighlight_WrapsWholeWords(t *testing.T) {
	out, changed := Highlight("Docker networking for docker users", []string{"docker"})
	if !changed {
		t.Fatal("expected a match")
	}
	want := "<mark>Docker</mark> networking for <mark>docker</mark> users"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestHighlight_WholeWordBoundary(t *testing.T) {
	out, changed := Highlight("dockerize everything", []string{"docker"})
	if changed {
		t.Errorf("partial word should not match, got %q", out)
	}
}

func TestHighlight_Idempotent(t *testing.T) {
	terms := splitTerms("docker")
	once, _ := Highlight("restart the docker daemon", terms)
	twice, _ := Highlight(once, terms)

	if once != twice {
		t.Errorf("re-highlighting changed the text:\nonce:  %q\ntwice: %q", once, twice)
	}
	if strings.Contains(twice, markOpen+markOpen) || strings.Count(twice, markOpen) != 1 {
		t.Errorf("nested or doubled markers: %q", twice)
	}
}

func TestHighlight_LongestTermFirst(t *testing.T) {
	out, _ := Highlight("docker compose is handy", splitTerms("docker compose"))
	if !strings.Contains(out, markOpen+"docker compose"+markClose) {
		t.Errorf("phrase should be wrapped whole, got %q", out)
	}
	if strings.Contains(out, markOpen+"docker"+markClose+" ") {
		t.Errorf("shorter term fragmented the phrase: %q", out)
	}
}

func TestHighlight_NonWordEdges(t *testing.T) {
	out, changed := Highlight("We use Next.js here", splitTerms("next.js"))
	if !changed || !strings.Contains(out, markOpen+"Next.js"+markClose) {
		t.Errorf("dotted term not matched: %q", out)
	}
}

func TestSplitTerms_LongestFirstAndDeduped(t *testing.T) {
	terms := splitTerms("auth Auth authentication")
	if len(terms) != 3 {
		t.Fatalf("terms = %v, want phrase + 2 unique words", terms)
	}
	if terms[0] != "auth Auth authentication" {
		t.Errorf("first term should be the full phrase, got %q", terms[0])
	}
	if terms[1] != "authentication" || terms[2] != "auth" {
		t.Errorf("words not ordered longest first: %v", terms)
	}
}

func TestSnippet_CentersOnTerm(t *testing.T) {
	content := strings.Repeat("a", 300) + " docker " + strings.Repeat("b", 300)

	out := Snippet(content, "docker", 100)

	if !strings.Contains(out, "docker") {
		t.Errorf("snippet lost the term: %q", out)
	}
	if !strings.HasPrefix(out, ellipsis) || !strings.HasSuffix(out, ellipsis) {
		t.Errorf("interior window should have both ellipses: %q", out)
	}
	if n := len([]rune(out)); n > 100+2*len(ellipsis) {
		t.Errorf("snippet length %d exceeds window plus ellipses", n)
	}
}

func TestSnippet_TermNearStart(t *testing.T) {
	content := "docker " + strings.Repeat("x", 500)

	out := Snippet(content, "docker", 100)

	if strings.HasPrefix(out, ellipsis) {
		t.Errorf("window at position 0 should not have a leading ellipsis: %q", out)
	}
	if !strings.HasSuffix(out, ellipsis) {
		t.Errorf("truncated tail should have a trailing ellipsis: %q", out)
	}
}

func TestSnippet_TermAbsent(t *testing.T) {
	short := "brief content"
	if out := Snippet(short, "docker", 100); out != short {
		t.Errorf("short content should come back whole, got %q", out)
	}

	long := strings.Repeat("y", 250)
	out := Snippet(long, "docker", 100)
	if want := strings.Repeat("y", 100) + ellipsis; out != want {
		t.Errorf("head truncation wrong: got %d runes", len([]rune(out)))
	}
}

func TestSnippet_MultibyteSafe(t *testing.T) {
	content := strings.Repeat("あ", 150) + "認証" + strings.Repeat("い", 150)

	out := Snippet(content, "認証", 100)

	if !strings.Contains(out, "認証") {
		t.Errorf("snippet lost the multibyte term: %q", out)
	}
	if n := len([]rune(out)); n > 100+2*len(ellipsis) {
		t.Errorf("rune window exceeded: %d", n)
	}
}
