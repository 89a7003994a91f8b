package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the resolved theme data renderers consume: merged tokens,
// derived CSS custom properties, and an asset resolver.
type ThemeConfig struct {
	Name     string
	Variant  string
	Partials map[string]string
	Tokens   map[string]string
	CSSVars  map[string]string
	AssetURL func(key string) string
}

// ThemeFromSelection flattens a go-theme selection into the configuration
// renderers consume. Variant tokens, templates and assets override the base
// manifest entries.
func ThemeFromSelection(selection *theme.Selection) *ThemeConfig {
	if selection == nil {
		return nil
	}

	cfg := &ThemeConfig{
		Name:    selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	cfg.Tokens = copyStringMap(manifest.Tokens)
	cfg.Partials = copyStringMap(manifest.Templates)

	assets := manifest.Assets
	files := copyStringMap(assets.Files)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		cfg.Tokens = overlayStringMap(cfg.Tokens, variant.Tokens)
		cfg.Partials = overlayStringMap(cfg.Partials, variant.Templates)
		files = overlayStringMap(files, variant.Assets.Files)
	}

	cfg.CSSVars = cssVarsFromTokens(cfg.Tokens)

	prefix := strings.TrimRight(assets.Prefix, "/")
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + file
	}

	return cfg
}

// CSSVarsStyle renders the config's CSS custom properties as an inline style
// attribute value, sorted for deterministic output.
func (c *ThemeConfig) CSSVarsStyle() string {
	if c == nil || len(c.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.CSSVars))
	for key := range c.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+": "+c.CSSVars[key])
	}
	return strings.Join(pairs, "; ")
}

// BodyClass derives the theme class stamped on the page body so stylesheets
// can scope variant rules.
func (c *ThemeConfig) BodyClass() string {
	if c == nil || c.Name == "" {
		return ""
	}
	if c.Variant == "" {
		return "theme-" + c.Name
	}
	return "theme-" + c.Name + " theme-" + c.Name + "--" + c.Variant
}

func cssVarsFromTokens(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+key] = value
	}
	return vars
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func overlayStringMap(base, overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(overrides))
	}
	for key, value := range overrides {
		base[key] = value
	}
	return base
}
