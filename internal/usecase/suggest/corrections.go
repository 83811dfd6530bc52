package suggest

// correction maps a known misspelling to its canonical term.
type correction struct {
	typo      string
	canonical string
}

// corrections is the static typo table, checked in order after title and tag
// matches. Entries come from the portal's most common query misspellings.
var corrections = []correction{
	{"autentication", "authentication"},
	{"authentification", "authentication"},
	{"authorisation", "authorization"},
	{"kubernets", "kubernetes"},
	{"kubernates", "kubernetes"},
	{"postgress", "postgresql"},
	{"postgre", "postgresql"},
	{"javascrip", "javascript"},
	{"typescrit", "typescript"},
	{"dokcer", "docker"},
	{"ngnix", "nginx"},
	{"terrafrom", "terraform"},
	{"graphlq", "graphql"},
	{"websoket", "websocket"},
}
