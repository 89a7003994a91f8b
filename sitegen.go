// Package sitegen generates a personal portfolio website from JSON content
// collections: article, skill and project pages plus a contact page whose
// form is derived from an OpenAPI definition and protected by an anti-bot
// challenge widget (see pkg/challenge for the client-side coordination
// model).
package sitegen

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-sitegen/internal/content/loader"
	internalParser "github.com/goliatone/go-sitegen/internal/form/parser"
	"github.com/goliatone/go-sitegen/pkg/content"
	"github.com/goliatone/go-sitegen/pkg/form"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/renderers/pages"
	"github.com/goliatone/go-sitegen/pkg/site"
)

// Config aliases the site configuration for convenience.
type Config = site.Config

// Option aliases the builder option type.
type Option = site.Option

// NewBuilder exposes the site builder constructor from the top-level module.
func NewBuilder(config Config, options ...Option) (*site.Builder, error) {
	return site.New(config, options...)
}

// Build loads the config at path and runs one full build. It is the simplest
// entry point for callers that just want the output tree written.
func Build(ctx context.Context, configPath string, options ...Option) error {
	cfg, err := site.LoadConfig(configPath)
	if err != nil {
		return err
	}
	builder, err := site.New(cfg, options...)
	if err != nil {
		return err
	}
	return builder.Build(ctx)
}

// Watch loads the config at path, runs an initial build, and rebuilds on
// content changes until ctx is cancelled.
func Watch(ctx context.Context, configPath string, options ...Option) error {
	cfg, err := site.LoadConfig(configPath)
	if err != nil {
		return err
	}
	builder, err := site.New(cfg, options...)
	if err != nil {
		return err
	}
	return builder.Watch(ctx)
}

// WithLogger passes a build logger through to the site builder.
func WithLogger(logger *zap.Logger) Option {
	return site.WithLogger(logger)
}

// WithThemeSelector passes a go-theme selector through to the site builder so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return site.WithThemeSelector(selector)
}

// WithRegistry replaces the default page renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return site.WithRegistry(registry)
}

// NewLoader constructs a content loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options content.LoaderOptions) content.Loader {
	return internalLoader.New(options)
}

// NewFormParser constructs an OpenAPI form parser backed by the internal
// implementation.
func NewFormParser(options form.ParserOptions) form.Parser {
	return internalParser.New(options)
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return pages.TemplatesFS()
}
