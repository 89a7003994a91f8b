package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitegen/pkg/content"
	"github.com/goliatone/go-sitegen/pkg/form"
)

type stubRenderer struct {
	name string
}

func (r stubRenderer) Name() string        { return r.name }
func (r stubRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (r stubRenderer) Render(context.Context, content.Site, RenderOptions) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(stubRenderer{name: "articles"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "articles"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected error for unnamed renderer")
	}

	registry.MustRegister(stubRenderer{name: "contact"})

	if !registry.Has("articles") {
		t.Fatal("Has(articles) = false")
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected not-found error")
	}
	if got := registry.List(); !cmp.Equal(got, []string{"articles", "contact"}) {
		t.Fatalf("List = %v", got)
	}
}

func TestMergeHiddenFields(t *testing.T) {
	base := map[string]string{"redirect": "/thanks"}
	merged := MergeHiddenFields(base,
		ChallengeToken("challenge-token", ""),
		Hidden("  ", "dropped"),
		RedirectField("redirect", "/contact#sent"),
	)

	want := map[string]string{
		"challenge-token": "",
		"redirect":        "/contact#sent",
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged mismatch (-want +got):\n%s", diff)
	}

	sorted := SortedHiddenFields(merged)
	if len(sorted) != 2 || sorted[0].Name != "challenge-token" || sorted[1].Name != "redirect" {
		t.Fatalf("sorted = %+v", sorted)
	}

	if MergeHiddenFields(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestMapErrorPayload(t *testing.T) {
	contactForm := form.Form{
		Action: "/contact",
		Fields: []form.Field{
			{Name: "email"},
			{Name: "message"},
		},
	}

	mapping := MapErrorPayload(contactForm, map[string][]string{
		"email":   {" invalid address ", "invalid address"},
		"mystery": {"unmapped"},
		"__all__": {"try again later"},
		"ignored": {"  "},
		"message": nil,
	})

	if got := mapping.Fields["email"]; len(got) != 1 || got[0] != "invalid address" {
		t.Fatalf("email errors = %v", got)
	}
	if _, ok := mapping.Fields["message"]; ok {
		t.Fatal("empty message errors should be dropped")
	}

	wantForm := []string{"unmapped", "try again later"}
	if len(mapping.Form) != 2 {
		t.Fatalf("form errors = %v, want %v", mapping.Form, wantForm)
	}
	for _, want := range wantForm {
		found := false
		for _, got := range mapping.Form {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("form errors %v missing %q", mapping.Form, want)
		}
	}
}

func TestThemeFromSelection(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "aurora",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
			"ink":   "#111111",
		},
		Templates: map[string]string{
			"pages.layout": "themes/aurora/layout.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/aurora",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{
					Files: map[string]string{"stylesheet": "theme.dark.css"},
				},
			},
		},
	}

	cfg := ThemeFromSelection(&theme.Selection{
		Theme:    "aurora",
		Variant:  "dark",
		Manifest: manifest,
	})
	if cfg == nil {
		t.Fatal("expected config")
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant token not applied: %v", cfg.Tokens)
	}
	if cfg.Tokens["ink"] != "#111111" {
		t.Fatalf("base token lost: %v", cfg.Tokens)
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/aurora/theme.dark.css" {
		t.Fatalf("asset url = %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset url = %q", got)
	}
	if got := cfg.BodyClass(); got != "theme-aurora theme-aurora--dark" {
		t.Fatalf("body class = %q", got)
	}

	style := cfg.CSSVarsStyle()
	if style != "--brand: #654321; --ink: #111111" {
		t.Fatalf("css vars style = %q", style)
	}

	if ThemeFromSelection(nil) != nil {
		t.Fatal("nil selection should yield nil config")
	}
}
