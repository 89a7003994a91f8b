package challenge

import (
	"github.com/goliatone/go-sitegen/pkg/dom"
)

// Size selects the widget variant rendered into a placeholder.
type Size string

const (
	SizeCompact Size = "compact"
	SizeNormal  Size = "normal"
)

// Theme selects the widget's visual theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Handle is the opaque value the widget API returns from a successful render.
// It is only ever passed back to the same API instance.
type Handle any

// Callbacks carries the widget lifecycle hooks. Any of the fields may be nil.
type Callbacks struct {
	// OnSolved receives the solved response token.
	OnSolved func(token string)
	// OnExpired fires when a previously solved challenge lapses.
	OnExpired func()
	// OnErrored fires when the rendered widget fails internally.
	OnErrored func()
}

// RenderParams configures a single render call against a placeholder.
type RenderParams struct {
	SiteKey   string
	Theme     Theme
	Size      Size
	Callbacks Callbacks
}

// API abstracts the third-party widget script. The production binding adapts
// the script's global functions; rendering twice into the same node is
// rejected by the underlying implementation, which is why the coordinator
// always replaces a placeholder before re-rendering.
type API interface {
	Render(target *dom.Element, params RenderParams) (Handle, error)
	Reset(handle Handle) error
	Response(handle Handle) (string, error)
}

// Submitter performs the native submission of a form once the gate lets it
// through. Hosts bind this to whatever "submit" means for them.
type Submitter interface {
	Submit(form *dom.Element) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(form *dom.Element) error

// Submit implements Submitter.
func (fn SubmitterFunc) Submit(form *dom.Element) error {
	return fn(form)
}

// Marker attributes and classes the coordinator reads from and writes to the
// page markup. Configuration attributes carry the AttrPrefix so they survive
// node replacement verbatim.
const (
	AttrPrefix = "data-sitegen-"

	AttrWidgetID = AttrPrefix + "widget"
	AttrSiteKey  = AttrPrefix + "sitekey"
	AttrTheme    = AttrPrefix + "theme"
	AttrSize     = AttrPrefix + "size"

	PlaceholderClass = "challenge-placeholder"
	ContainerClass   = "challenge-container"
	ErrorClass       = "challenge-error"
	HiddenClass      = "hidden"
)
