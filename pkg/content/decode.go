package content

import (
	"encoding/json"
	"fmt"
)

type articlesFile struct {
	Articles []Article `json:"articles"`
}

type skillsFile struct {
	Groups []SkillGroup `json:"groups"`
}

type projectsFile struct {
	Projects []Project `json:"projects"`
}

// DecodeArticles parses an articles collection file and validates that every
// entry carries a unique id.
func DecodeArticles(data []byte) ([]Article, error) {
	var file articlesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("content: decode articles: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Articles))
	for i, article := range file.Articles {
		if article.ID == "" {
			return nil, fmt.Errorf("content: article %d missing id", i)
		}
		if _, dup := seen[article.ID]; dup {
			return nil, fmt.Errorf("content: duplicate article id %q", article.ID)
		}
		seen[article.ID] = struct{}{}
		if article.Date.Published == "" {
			return nil, fmt.Errorf("content: article %q missing published date", article.ID)
		}
		if _, err := ParseISODate(article.Date.Published); err != nil {
			return nil, fmt.Errorf("content: article %q: %w", article.ID, err)
		}
		if article.Date.Edited != "" {
			if _, err := ParseISODate(article.Date.Edited); err != nil {
				return nil, fmt.Errorf("content: article %q: %w", article.ID, err)
			}
		}
	}
	return file.Articles, nil
}

// DecodeSkills parses a skills collection file.
func DecodeSkills(data []byte) ([]SkillGroup, error) {
	var file skillsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("content: decode skills: %w", err)
	}
	for i, group := range file.Groups {
		if group.Title == "" {
			return nil, fmt.Errorf("content: skill group %d missing title", i)
		}
	}
	return file.Groups, nil
}

// DecodeProjects parses a projects collection file and validates ids.
func DecodeProjects(data []byte) ([]Project, error) {
	var file projectsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("content: decode projects: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Projects))
	for i, project := range file.Projects {
		if project.ID == "" {
			return nil, fmt.Errorf("content: project %d missing id", i)
		}
		if _, dup := seen[project.ID]; dup {
			return nil, fmt.Errorf("content: duplicate project id %q", project.ID)
		}
		seen[project.ID] = struct{}{}
	}
	return file.Projects, nil
}
