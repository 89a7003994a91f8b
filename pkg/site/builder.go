package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-sitegen/internal/content/loader"
	formparser "github.com/goliatone/go-sitegen/internal/form/parser"
	"github.com/goliatone/go-sitegen/pkg/content"
	"github.com/goliatone/go-sitegen/pkg/form"
	"github.com/goliatone/go-sitegen/pkg/render"
	"github.com/goliatone/go-sitegen/pkg/renderers/pages"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger injects the build logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithRegistry replaces the default page renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(b *Builder) {
		if registry != nil {
			b.registry = registry
		}
	}
}

// WithLoader replaces the default file-backed content loader.
func WithLoader(l content.Loader) Option {
	return func(b *Builder) {
		if l != nil {
			b.loader = l
		}
	}
}

// WithFormParser replaces the default OpenAPI form parser.
func WithFormParser(p form.Parser) Option {
	return func(b *Builder) {
		if p != nil {
			b.parser = p
		}
	}
}

// WithThemeSelector wires a go-theme selector so builds resolve theme tokens
// and assets ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(b *Builder) {
		b.selector = selector
	}
}

// WithConcurrency caps how many pages render in parallel. Zero means one
// goroutine per page.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		b.concurrency = n
	}
}

// Builder runs site builds.
type Builder struct {
	config      Config
	registry    *render.Registry
	loader      content.Loader
	parser      form.Parser
	selector    theme.ThemeSelector
	logger      *zap.Logger
	concurrency int
}

// New constructs a Builder. Without options the built-in page renderers, the
// file-backed loader, and the kin-openapi form parser are used.
func New(config Config, options ...Option) (*Builder, error) {
	b := &Builder{
		config: config,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}

	if b.registry == nil {
		registry := render.NewRegistry()
		if err := pages.RegisterAll(registry); err != nil {
			return nil, fmt.Errorf("site: register page renderers: %w", err)
		}
		b.registry = registry
	}
	if b.loader == nil {
		b.loader = loader.New(content.LoaderOptions{})
	}
	if b.parser == nil {
		b.parser = formparser.New(form.ParserOptions{})
	}
	return b, nil
}

// Config returns the builder's site definition.
func (b *Builder) Config() Config {
	return b.config
}

// Build loads all inputs and writes every configured page to the output dir.
func (b *Builder) Build(ctx context.Context) error {
	site, err := content.LoadSite(ctx, b.loader, b.sources())
	if err != nil {
		return err
	}

	options, err := b.renderOptions(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("site: create output dir: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if b.concurrency > 0 {
		group.SetLimit(b.concurrency)
	}

	for _, page := range b.config.Pages {
		group.Go(func() error {
			return b.buildPage(groupCtx, page, site, options)
		})
	}

	detailPages := 0
	if b.registry.Has(detailRenderer) {
		for _, article := range site.BuildableArticles() {
			detailPages++
			page := PageConfig{
				Renderer: detailRenderer,
				Output:   pages.DetailPath(article.ID),
			}
			detailOptions := options
			detailOptions.ArticleID = article.ID
			group.Go(func() error {
				return b.buildPage(groupCtx, page, site, detailOptions)
			})
		}
	}

	if err := group.Wait(); err != nil {
		return err
	}

	b.logger.Info("site built",
		zap.Int("pages", len(b.config.Pages)+detailPages),
		zap.String("output", b.config.OutputDir))
	return nil
}

// detailRenderer names the per-article page renderer. Articles flagged
// auto_build each get one output under articles/.
const detailRenderer = "article"

func (b *Builder) buildPage(ctx context.Context, page PageConfig, site content.Site, options render.RenderOptions) error {
	renderer, err := b.registry.Get(page.Renderer)
	if err != nil {
		return err
	}

	body, err := renderer.Render(ctx, site, options)
	if err != nil {
		return fmt.Errorf("site: render %s: %w", page.Renderer, err)
	}

	target := filepath.Join(b.config.OutputDir, page.Output)
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("site: create page dir: %w", err)
		}
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("site: write %s: %w", target, err)
	}

	b.logger.Debug("page written",
		zap.String("renderer", page.Renderer),
		zap.String("output", page.Output),
		zap.Int("bytes", len(body)))
	return nil
}

func (b *Builder) sources() content.Sources {
	var sources content.Sources
	if b.config.Content.Articles != "" {
		sources.Articles = content.SourceFromFile(b.config.Content.Articles)
	}
	if b.config.Content.Skills != "" {
		sources.Skills = content.SourceFromFile(b.config.Content.Skills)
	}
	if b.config.Content.Projects != "" {
		sources.Projects = content.SourceFromFile(b.config.Content.Projects)
	}
	return sources
}

func (b *Builder) renderOptions(ctx context.Context) (render.RenderOptions, error) {
	options := render.RenderOptions{
		Title:        b.config.Title,
		BaseURL:      b.config.BaseURL,
		HiddenFields: render.MergeHiddenFields(b.config.Contact.Hidden),
		Challenge: render.ChallengeOptions{
			SiteKey:    b.config.Contact.SiteKey,
			Theme:      b.config.Contact.ChallengeTheme,
			TokenField: b.config.Contact.TokenField,
		},
	}

	if b.config.Contact.OpenAPI != "" {
		doc, err := b.loader.Load(ctx, content.SourceFromFile(b.config.Contact.OpenAPI))
		if err != nil {
			return render.RenderOptions{}, fmt.Errorf("site: load contact definition: %w", err)
		}
		contactForm, err := b.parser.ContactForm(ctx, doc, b.config.Contact.OperationID)
		if err != nil {
			return render.RenderOptions{}, err
		}
		options.ContactForm = contactForm
	}

	if b.selector != nil && b.config.Theme.Name != "" {
		selection, err := b.selector.Select(b.config.Theme.Name, b.config.Theme.Variant)
		if err != nil {
			return render.RenderOptions{}, fmt.Errorf("site: resolve theme: %w", err)
		}
		options.Theme = render.ThemeFromSelection(selection)
	}

	return options, nil
}
