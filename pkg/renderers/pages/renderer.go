package pages

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-sitegen/pkg/content"
	"github.com/goliatone/go-sitegen/pkg/render"
	rendertemplate "github.com/goliatone/go-sitegen/pkg/render/template"
	gotemplate "github.com/goliatone/go-sitegen/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// contextBuilder assembles the page-specific template context.
type contextBuilder func(site content.Site, options render.RenderOptions) (map[string]any, error)

// Renderer renders one page of the site from its template.
type Renderer struct {
	name         string
	templatePath string
	templates    rendertemplate.TemplateRenderer
	build        contextBuilder
}

func newRenderer(name, templatePath string, build contextBuilder, options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("pages renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		name:         name,
		templatePath: templatePath,
		templates:    renderer,
		build:        build,
	}, nil
}

// NewArticles constructs the articles list page renderer.
func NewArticles(options ...Option) (*Renderer, error) {
	return newRenderer("articles", "templates/articles.tmpl", articlesContext, options...)
}

// NewArticle constructs the single-article detail page renderer. The article
// is selected through RenderOptions.ArticleID.
func NewArticle(options ...Option) (*Renderer, error) {
	return newRenderer("article", "templates/article.tmpl", articleContext, options...)
}

// NewSkills constructs the skills overview page renderer.
func NewSkills(options ...Option) (*Renderer, error) {
	return newRenderer("skills", "templates/skills.tmpl", skillsContext, options...)
}

// NewProjects constructs the projects gallery page renderer.
func NewProjects(options ...Option) (*Renderer, error) {
	return newRenderer("projects", "templates/projects.tmpl", projectsContext, options...)
}

// NewContact constructs the contact page renderer.
func NewContact(options ...Option) (*Renderer, error) {
	return newRenderer("contact", "templates/contact.tmpl", contactContext, options...)
}

// RegisterAll constructs every built-in page renderer with the same options
// and registers them on the registry.
func RegisterAll(registry *render.Registry, options ...Option) error {
	constructors := []func(...Option) (*Renderer, error){
		NewArticles,
		NewArticle,
		NewSkills,
		NewProjects,
		NewContact,
	}
	for _, construct := range constructors {
		renderer, err := construct(options...)
		if err != nil {
			return err
		}
		if err := registry.Register(renderer); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) Name() string {
	return r.name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, site content.Site, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("pages renderer: template renderer is nil")
	}

	pageContext, err := r.build(site, options)
	if err != nil {
		return nil, fmt.Errorf("pages renderer %s: build context: %w", r.name, err)
	}
	for key, value := range commonContext(options) {
		if _, exists := pageContext[key]; !exists {
			pageContext[key] = value
		}
	}

	result, err := r.templates.RenderTemplate(r.templatePath, pageContext)
	if err != nil {
		return nil, fmt.Errorf("pages renderer %s: render template: %w", r.name, err)
	}
	return []byte(result), nil
}

func commonContext(options render.RenderOptions) map[string]any {
	theme := map[string]any{
		"body_class": "",
		"css_vars":   "",
		"stylesheet": "",
	}
	if options.Theme != nil {
		theme["body_class"] = options.Theme.BodyClass()
		theme["css_vars"] = options.Theme.CSSVarsStyle()
		if options.Theme.AssetURL != nil {
			theme["stylesheet"] = options.Theme.AssetURL("stylesheet")
		}
	}
	return map[string]any{
		"site_title": options.Title,
		"base_url":   options.BaseURL,
		"theme":      theme,
	}
}
