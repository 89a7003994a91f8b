package render

import (
	"github.com/goliatone/go-sitegen/pkg/form"
)

// RenderOptions describe per-build data that renderers can use to customise
// their output without mutating the content pipeline.
type RenderOptions struct {
	// Title is the site-wide title pages embed in their chrome.
	Title string
	// BaseURL prefixes absolute links emitted by renderers.
	BaseURL string
	// Theme carries the resolved theme configuration, or nil when no theme
	// selector is wired.
	Theme *ThemeConfig
	// ContactForm describes the contact form for renderers that emit it.
	ContactForm form.Form
	// HiddenFields lists extra hidden inputs emitted inside the contact form,
	// keyed by input name. The challenge token slot is managed separately by
	// the client runtime and should not appear here.
	HiddenFields map[string]string
	// Challenge configures the anti-bot widget emitted next to the contact
	// form. The zero value disables the widget markup.
	Challenge ChallengeOptions
	// ArticleID selects the article rendered by detail-page renderers. List
	// renderers ignore it.
	ArticleID string
}

// ChallengeOptions carries the attributes stamped onto the challenge
// placeholder element.
type ChallengeOptions struct {
	SiteKey    string
	Theme      string
	Size       string
	TokenField string
}

// Enabled reports whether the placeholder markup should be emitted.
func (c ChallengeOptions) Enabled() bool {
	return c.SiteKey != ""
}
