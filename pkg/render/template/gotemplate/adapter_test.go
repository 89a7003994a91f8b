package gotemplate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func newTestEngine(t *testing.T, files fstest.MapFS) *Engine {
	t.Helper()
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return engine
}

func TestRenderTemplate(t *testing.T) {
	engine := newTestEngine(t, fstest.MapFS{
		"greeting.tmpl": {Data: []byte("Hello {{ name }}!")},
	})

	got, err := engine.RenderTemplate("greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if got != "Hello Ada!" {
		t.Fatalf("rendered %q", got)
	}
}

func TestRenderDispatchesOnContent(t *testing.T) {
	engine := newTestEngine(t, fstest.MapFS{
		"page.tmpl": {Data: []byte("from file")},
	})

	if got, _ := engine.Render("page", nil); got != "from file" {
		t.Fatalf("named render = %q", got)
	}
	if got, _ := engine.Render("inline {{ x }}", map[string]any{"x": "y"}); got != "inline y" {
		t.Fatalf("inline render = %q", got)
	}
}

func TestHumanDateFilter(t *testing.T) {
	engine := newTestEngine(t, fstest.MapFS{})

	got, err := engine.RenderString(`{{ published|humandate }}`, map[string]any{
		"published": "2024-02-03",
	})
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if got != "3 Feb 2024" {
		t.Fatalf("humandate output = %q", got)
	}

	if _, err := engine.RenderString(`{{ "garbage"|humandate }}`, nil); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestStructDataConverts(t *testing.T) {
	engine := newTestEngine(t, fstest.MapFS{})

	type payload struct {
		Title string `json:"title"`
	}
	got, err := engine.RenderString(`{{ page.title }}`, map[string]any{
		"page": payload{Title: "About"},
	})
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if got != "About" {
		t.Fatalf("rendered %q", got)
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newTestEngine(t, fstest.MapFS{})
	if err := engine.GlobalContext(map[string]any{"site_title": "Example"}); err != nil {
		t.Fatalf("GlobalContext returned error: %v", err)
	}

	got, err := engine.RenderString(`{{ site_title }}`, nil)
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if got != "Example" {
		t.Fatalf("rendered %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil || !strings.Contains(err.Error(), "base dir or fs.FS") {
		t.Fatalf("expected source error, got %v", err)
	}
}
