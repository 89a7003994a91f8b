package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sitegen/pkg/site"
)

func runInit(args []string) error {
	flags := flag.NewFlagSet("init", flag.ExitOnError)
	output := flags.String("output", "site.yaml", "where to write the configuration")
	force := flags.Bool("force", false, "overwrite an existing configuration")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if !*force {
		if _, err := os.Stat(*output); err == nil {
			return fmt.Errorf("%s already exists, pass -force to overwrite", *output)
		}
	}

	cfg, err := promptConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *output, err)
	}

	fmt.Printf("Configuration written to %s\n", *output)
	return nil
}

func promptConfig() (site.Config, error) {
	var cfg site.Config

	questions := []*survey.Question{
		{
			Name:     "title",
			Prompt:   &survey.Input{Message: "Site title:"},
			Validate: survey.Required,
		},
		{
			Name:   "baseURL",
			Prompt: &survey.Input{Message: "Base URL:", Default: "https://example.com"},
		},
		{
			Name:   "outputDir",
			Prompt: &survey.Input{Message: "Output directory:", Default: "public"},
		},
	}
	answers := struct {
		Title     string
		BaseURL   string
		OutputDir string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return site.Config{}, err
	}
	cfg.Title = answers.Title
	cfg.BaseURL = answers.BaseURL
	cfg.OutputDir = answers.OutputDir

	contentQuestions := []*survey.Question{
		{
			Name:   "articles",
			Prompt: &survey.Input{Message: "Articles collection file:", Default: "content/articles.json"},
		},
		{
			Name:   "skills",
			Prompt: &survey.Input{Message: "Skills collection file:", Default: "content/skills.json"},
		},
		{
			Name:   "projects",
			Prompt: &survey.Input{Message: "Projects collection file:", Default: "content/projects.json"},
		},
	}
	content := struct {
		Articles string
		Skills   string
		Projects string
	}{}
	if err := survey.Ask(contentQuestions, &content); err != nil {
		return site.Config{}, err
	}
	cfg.Content = site.ContentConfig{
		Articles: content.Articles,
		Skills:   content.Skills,
		Projects: content.Projects,
	}

	wantContact := false
	if err := survey.AskOne(&survey.Confirm{
		Message: "Configure the contact page?",
		Default: true,
	}, &wantContact); err != nil {
		return site.Config{}, err
	}
	if wantContact {
		contactQuestions := []*survey.Question{
			{
				Name:   "openAPI",
				Prompt: &survey.Input{Message: "Contact OpenAPI document:", Default: "content/contact.json"},
			},
			{
				Name:   "recipient",
				Prompt: &survey.Input{Message: "Contact recipient email:"},
			},
			{
				Name:   "siteKey",
				Prompt: &survey.Input{Message: "Challenge widget site key:"},
			},
		}
		contact := struct {
			OpenAPI   string
			Recipient string
			SiteKey   string
		}{}
		if err := survey.Ask(contactQuestions, &contact); err != nil {
			return site.Config{}, err
		}
		cfg.Contact = site.ContactConfig{
			OpenAPI:   contact.OpenAPI,
			Recipient: contact.Recipient,
			SiteKey:   contact.SiteKey,
		}
	}

	return cfg, nil
}
