package render

import (
	"context"

	"github.com/goliatone/go-sitegen/pkg/content"
)

// Renderer converts site content into one page of output (HTML, feeds, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, site content.Site, options RenderOptions) ([]byte, error)
}
