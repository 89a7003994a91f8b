package content

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var authorPolicy = newAuthorPolicy()

func newAuthorPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("a")
	policy.AllowAttrs("href", "rel", "target").OnElements("a")
	policy.AllowStandardURLs()
	return policy
}

// HTML renders the author as an escaped name or, when a URL is present, a
// sanitized anchor opening in a new tab.
func (a Author) HTML() string {
	name := html.EscapeString(strings.TrimSpace(a.Name))
	if a.URL == "" {
		return name
	}
	anchor := fmt.Sprintf(`<a href="%s" rel="noopener" target="_blank">%s</a>`,
		html.EscapeString(a.URL), name)
	return authorPolicy.Sanitize(anchor)
}

// AuthorsHTML joins the article's author credits into one markup fragment,
// separating the final pair with "and".
func (a Article) AuthorsHTML() string {
	switch len(a.Authors) {
	case 0:
		return ""
	case 1:
		return a.Authors[0].HTML()
	}
	parts := make([]string, 0, len(a.Authors))
	for _, author := range a.Authors {
		parts = append(parts, author.HTML())
	}
	last := len(parts) - 1
	return strings.Join(parts[:last], ", ") + " and " + parts[last]
}

// SanitizeFragment strips everything but author-grade markup from a content
// field that may carry inline HTML.
func SanitizeFragment(fragment string) string {
	return authorPolicy.Sanitize(fragment)
}
