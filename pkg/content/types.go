package content

// Site aggregates every content collection the page renderers consume.
type Site struct {
	Articles []Article
	Skills   []SkillGroup
	Projects []Project
}

// Author credits an article, optionally linking out.
type Author struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ArticleDate carries the ISO-8601 timestamps attached to an article.
type ArticleDate struct {
	Published string `json:"published"`
	Edited    string `json:"edited,omitempty"`
}

// Article is one entry of the articles collection. StrapLine doubles as the
// short description shown on the list page.
type Article struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	StrapLine string      `json:"strap_line"`
	Authors   []Author    `json:"authors,omitempty"`
	Date      ArticleDate `json:"date"`
	Keywords  []string    `json:"keywords,omitempty"`
	Link      string      `json:"link,omitempty"`
	AutoBuild bool        `json:"auto_build"`
}

// Skill is a single entry inside a skill group.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// SkillGroup clusters related skills under one heading.
type SkillGroup struct {
	Title  string  `json:"title"`
	Skills []Skill `json:"skills"`
}

// Project is one entry of the projects collection. Featured projects appear
// in the carousel as well as the grid.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Link        string   `json:"link,omitempty"`
	Image       string   `json:"image,omitempty"`
	ImageAlt    string   `json:"image_alt,omitempty"`
	Featured    bool     `json:"featured"`
}

// FeaturedProjects filters the projects that belong in the carousel,
// preserving collection order.
func (s Site) FeaturedProjects() []Project {
	var out []Project
	for _, project := range s.Projects {
		if project.Featured {
			out = append(out, project)
		}
	}
	return out
}

// BuildableArticles filters the articles flagged for page generation.
func (s Site) BuildableArticles() []Article {
	var out []Article
	for _, article := range s.Articles {
		if article.AutoBuild {
			out = append(out, article)
		}
	}
	return out
}
