package pages

import (
	"fmt"

	"github.com/goliatone/go-sitegen/pkg/content"
	"github.com/goliatone/go-sitegen/pkg/render"
)

// DetailPath is the output location of an article detail page relative to the
// site root.
func DetailPath(articleID string) string {
	return "articles/" + articleID + ".html"
}

func articlesContext(site content.Site, _ render.RenderOptions) (map[string]any, error) {
	articles := make([]map[string]any, 0, len(site.Articles))
	for _, article := range site.Articles {
		published, err := article.PublishedDisplay()
		if err != nil {
			return nil, err
		}
		edited, err := article.EditedDisplay()
		if err != nil {
			return nil, err
		}
		entry := map[string]any{
			"id":           article.ID,
			"title":        article.Title,
			"strap_line":   content.SanitizeFragment(article.StrapLine),
			"authors_html": article.AuthorsHTML(),
			"published":    published,
			"edited":       edited,
			"keywords":     article.Keywords,
			"link":         article.Link,
		}
		if article.AutoBuild {
			entry["detail_link"] = DetailPath(article.ID)
		}
		articles = append(articles, entry)
	}
	return map[string]any{
		"page_title": "Articles",
		"articles":   articles,
	}, nil
}

func articleContext(site content.Site, options render.RenderOptions) (map[string]any, error) {
	var article *content.Article
	for i := range site.Articles {
		if site.Articles[i].ID == options.ArticleID {
			article = &site.Articles[i]
			break
		}
	}
	if article == nil {
		return nil, fmt.Errorf("pages: article %q not found", options.ArticleID)
	}

	published, err := article.PublishedDisplay()
	if err != nil {
		return nil, err
	}
	edited, err := article.EditedDisplay()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"page_title": article.Title,
		"article": map[string]any{
			"id":           article.ID,
			"title":        article.Title,
			"strap_line":   content.SanitizeFragment(article.StrapLine),
			"authors_html": article.AuthorsHTML(),
			"published":    published,
			"edited":       edited,
			"keywords":     article.Keywords,
			"link":         article.Link,
		},
	}, nil
}

func skillsContext(site content.Site, _ render.RenderOptions) (map[string]any, error) {
	groups := make([]map[string]any, 0, len(site.Skills))
	for _, group := range site.Skills {
		skills := make([]map[string]any, 0, len(group.Skills))
		for _, skill := range group.Skills {
			skills = append(skills, map[string]any{
				"name":  skill.Name,
				"level": skill.Level,
				"icon":  skill.Icon,
			})
		}
		groups = append(groups, map[string]any{
			"title":  group.Title,
			"skills": skills,
		})
	}
	return map[string]any{
		"page_title": "Skills",
		"groups":     groups,
	}, nil
}

func projectsContext(site content.Site, _ render.RenderOptions) (map[string]any, error) {
	convert := func(projects []content.Project) []map[string]any {
		out := make([]map[string]any, 0, len(projects))
		for _, project := range projects {
			out = append(out, map[string]any{
				"id":          project.ID,
				"title":       project.Title,
				"description": content.SanitizeFragment(project.Description),
				"tags":        project.Tags,
				"link":        project.Link,
				"image":       project.Image,
				"image_alt":   project.ImageAlt,
			})
		}
		return out
	}
	return map[string]any{
		"page_title": "Projects",
		"featured":   convert(site.FeaturedProjects()),
		"projects":   convert(site.Projects),
	}, nil
}

func contactContext(_ content.Site, options render.RenderOptions) (map[string]any, error) {
	contactForm := options.ContactForm

	fields := make([]map[string]any, 0, len(contactForm.Fields))
	for _, field := range contactForm.Fields {
		fields = append(fields, map[string]any{
			"name":        field.Name,
			"label":       field.Label,
			"kind":        string(field.Kind),
			"placeholder": field.Placeholder,
			"required":    field.Required,
			"max_length":  field.MaxLength,
		})
	}

	hidden := make([]map[string]any, 0)
	for _, field := range render.SortedHiddenFields(options.HiddenFields) {
		hidden = append(hidden, map[string]any{
			"name":  field.Name,
			"value": field.Value,
		})
	}

	method := contactForm.Method
	if method == "" {
		method = "POST"
	}

	return map[string]any{
		"page_title": "Contact",
		"form": map[string]any{
			"name":   contactForm.Name,
			"method": method,
			"action": contactForm.Action,
			"fields": fields,
			"hidden": hidden,
		},
		"challenge": map[string]any{
			"enabled":  options.Challenge.Enabled(),
			"site_key": options.Challenge.SiteKey,
			"theme":    options.Challenge.Theme,
			"size":     options.Challenge.Size,
		},
	}, nil
}
