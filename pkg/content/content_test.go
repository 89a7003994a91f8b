package content

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeArticles(t *testing.T) {
	data := []byte(`{
		"articles": [
			{
				"id": "first-post",
				"title": "First Post",
				"strap_line": "Where it all began.",
				"authors": [{"name": "Ada Lovelace", "url": "https://example.com/ada"}],
				"date": {"published": "2024-02-03", "edited": "2024-02-10T09:30:00"},
				"keywords": ["go", "web"],
				"auto_build": true
			},
			{
				"id": "external-note",
				"title": "External Note",
				"strap_line": "Hosted elsewhere.",
				"date": {"published": "2023-11-20"},
				"link": "https://example.com/note",
				"auto_build": false
			}
		]
	}`)

	articles, err := DecodeArticles(data)
	if err != nil {
		t.Fatalf("DecodeArticles returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	want := Article{
		ID:        "first-post",
		Title:     "First Post",
		StrapLine: "Where it all began.",
		Authors:   []Author{{Name: "Ada Lovelace", URL: "https://example.com/ada"}},
		Date:      ArticleDate{Published: "2024-02-03", Edited: "2024-02-10T09:30:00"},
		Keywords:  []string{"go", "web"},
		AutoBuild: true,
	}
	if diff := cmp.Diff(want, articles[0]); diff != "" {
		t.Fatalf("article mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeArticlesRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing id",
			data: `{"articles": [{"title": "No ID", "date": {"published": "2024-01-01"}}]}`,
			want: "missing id",
		},
		{
			name: "duplicate id",
			data: `{"articles": [
				{"id": "a", "date": {"published": "2024-01-01"}},
				{"id": "a", "date": {"published": "2024-01-02"}}
			]}`,
			want: "duplicate article id",
		},
		{
			name: "missing published date",
			data: `{"articles": [{"id": "a", "date": {}}]}`,
			want: "missing published date",
		},
		{
			name: "malformed date",
			data: `{"articles": [{"id": "a", "date": {"published": "last tuesday"}}]}`,
			want: "unrecognized date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeArticles([]byte(tc.data)); err == nil {
				t.Fatal("expected error, got nil")
			} else if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestHumanDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-02-03", "3 Feb 2024"},
		{"2023-11-20T14:05:00", "20 Nov 2023"},
		{"2022-01-09T08:00:00Z", "9 Jan 2022"},
	}
	for _, tc := range cases {
		got, err := HumanDate(tc.in)
		if err != nil {
			t.Fatalf("HumanDate(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("HumanDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := HumanDate("03/02/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestAuthorHTML(t *testing.T) {
	linked := Author{Name: "Ada Lovelace", URL: "https://example.com/ada"}
	got := linked.HTML()
	for _, fragment := range []string{`href="https://example.com/ada"`, `rel="noopener"`, `target="_blank"`, "Ada Lovelace"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("linked author HTML %q missing %q", got, fragment)
		}
	}

	plain := Author{Name: "Grace <script>alert(1)</script> Hopper"}
	if got := plain.HTML(); strings.Contains(got, "<script>") {
		t.Fatalf("plain author HTML not escaped: %q", got)
	}

	hostile := Author{Name: "Mallory", URL: "javascript:alert(1)"}
	if got := hostile.HTML(); strings.Contains(got, "javascript:") {
		t.Fatalf("hostile URL survived sanitization: %q", got)
	}
}

func TestAuthorsHTMLJoins(t *testing.T) {
	article := Article{Authors: []Author{
		{Name: "Ada"},
		{Name: "Grace"},
		{Name: "Katherine"},
	}}
	got := article.AuthorsHTML()
	if got != "Ada, Grace and Katherine" {
		t.Fatalf("AuthorsHTML = %q", got)
	}

	if got := (Article{}).AuthorsHTML(); got != "" {
		t.Fatalf("empty authors produced %q", got)
	}
}

func TestSiteFilters(t *testing.T) {
	site := Site{
		Articles: []Article{
			{ID: "a", AutoBuild: true},
			{ID: "b", AutoBuild: false},
		},
		Projects: []Project{
			{ID: "p1", Featured: true},
			{ID: "p2"},
			{ID: "p3", Featured: true},
		},
	}

	buildable := site.BuildableArticles()
	if len(buildable) != 1 || buildable[0].ID != "a" {
		t.Fatalf("BuildableArticles = %+v", buildable)
	}

	featured := site.FeaturedProjects()
	if len(featured) != 2 || featured[0].ID != "p1" || featured[1].ID != "p3" {
		t.Fatalf("FeaturedProjects = %+v", featured)
	}
}

func TestDecodeSkillsAndProjects(t *testing.T) {
	skills, err := DecodeSkills([]byte(`{"groups": [{"title": "Languages", "skills": [{"name": "Go"}]}]}`))
	if err != nil {
		t.Fatalf("DecodeSkills returned error: %v", err)
	}
	if len(skills) != 1 || skills[0].Skills[0].Name != "Go" {
		t.Fatalf("skills = %+v", skills)
	}
	if _, err := DecodeSkills([]byte(`{"groups": [{"skills": []}]}`)); err == nil {
		t.Fatal("expected error for untitled group")
	}

	projects, err := DecodeProjects([]byte(`{"projects": [{"id": "p", "title": "P", "description": "d"}]}`))
	if err != nil {
		t.Fatalf("DecodeProjects returned error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("projects = %+v", projects)
	}
	if _, err := DecodeProjects([]byte(`{"projects": [{"id": "p"}, {"id": "p"}]}`)); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
