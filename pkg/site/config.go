package site

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sitegen/pkg/challenge"
)

// Config is the site definition loaded from site.yaml.
type Config struct {
	Title     string         `yaml:"title"`
	BaseURL   string         `yaml:"base_url"`
	OutputDir string         `yaml:"output_dir"`
	Content   ContentConfig  `yaml:"content"`
	Contact   ContactConfig  `yaml:"contact"`
	Theme     ThemeSettings  `yaml:"theme"`
	Pages     []PageConfig   `yaml:"pages,omitempty"`
}

// ContentConfig names the collection files feeding the build.
type ContentConfig struct {
	Articles string `yaml:"articles"`
	Skills   string `yaml:"skills"`
	Projects string `yaml:"projects"`
}

// ContactConfig wires the contact page: the OpenAPI document its form is
// derived from and the challenge widget attributes.
type ContactConfig struct {
	OpenAPI        string            `yaml:"openapi"`
	OperationID    string            `yaml:"operation_id"`
	Recipient      string            `yaml:"recipient"`
	SiteKey        string            `yaml:"site_key"`
	ChallengeTheme string            `yaml:"challenge_theme"`
	TokenField     string            `yaml:"token_field"`
	Hidden         map[string]string `yaml:"hidden,omitempty"`
}

// ThemeSettings selects the theme and variant resolved at build time.
type ThemeSettings struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// PageConfig maps a registered renderer to an output file.
type PageConfig struct {
	Renderer string `yaml:"renderer"`
	Output   string `yaml:"output"`
}

// DefaultPages is the page set used when the config names none.
func DefaultPages() []PageConfig {
	return []PageConfig{
		{Renderer: "articles", Output: "index.html"},
		{Renderer: "skills", Output: "skills.html"},
		{Renderer: "projects", Output: "projects.html"},
		{Renderer: "contact", Output: "contact.html"},
	}
}

// LoadConfig reads and parses a site.yaml file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("site: read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML config payload and applies defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("site: parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.Contact.TokenField == "" {
		c.Contact.TokenField = challenge.DefaultTokenField
	}
	if len(c.Pages) == 0 {
		c.Pages = DefaultPages()
	}
}

func (c *Config) validate() error {
	if c.Title == "" {
		return fmt.Errorf("site: config title is required")
	}
	seen := make(map[string]struct{}, len(c.Pages))
	for _, page := range c.Pages {
		if page.Renderer == "" || page.Output == "" {
			return fmt.Errorf("site: page entries need renderer and output")
		}
		if _, dup := seen[page.Output]; dup {
			return fmt.Errorf("site: duplicate page output %q", page.Output)
		}
		seen[page.Output] = struct{}{}
	}
	return nil
}
