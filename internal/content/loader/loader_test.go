package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	pkgcontent "github.com/goliatone/go-sitegen/pkg/content"
)

func TestLoadFromFS(t *testing.T) {
	files := fstest.MapFS{
		"data/articles.json": {Data: []byte(`{"articles": []}`)},
	}
	l := New(pkgcontent.LoaderOptions{FileSystem: files})

	data, err := l.Load(context.Background(), pkgcontent.SourceFromFS("data/articles.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(data) != `{"articles": []}` {
		t.Fatalf("unexpected payload %q", data)
	}

	if _, err := l.Load(context.Background(), pkgcontent.SourceFromFS("missing.json")); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestLoadHTTPRequiresOptIn(t *testing.T) {
	l := New(pkgcontent.LoaderOptions{})
	_, err := l.Load(context.Background(), pkgcontent.SourceFromURL("https://example.com/data.json"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled-http error, got %v", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"projects": []}`))
	}))
	defer srv.Close()

	l := New(pkgcontent.LoaderOptions{AllowHTTPFallback: true})

	data, err := l.Load(context.Background(), pkgcontent.SourceFromURL(srv.URL+"/projects.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(data) != `{"projects": []}` {
		t.Fatalf("unexpected payload %q", data)
	}

	if _, err := l.Load(context.Background(), pkgcontent.SourceFromURL(srv.URL+"/missing.json")); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestLoadNilSource(t *testing.T) {
	l := New(pkgcontent.LoaderOptions{})
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestLoadSiteThroughLoader(t *testing.T) {
	files := fstest.MapFS{
		"articles.json": {Data: []byte(`{"articles": [{"id": "a", "title": "A", "date": {"published": "2024-01-01"}, "auto_build": true}]}`)},
		"skills.json":   {Data: []byte(`{"groups": [{"title": "Tools", "skills": [{"name": "Git"}]}]}`)},
	}
	l := New(pkgcontent.LoaderOptions{FileSystem: files})

	site, err := pkgcontent.LoadSite(context.Background(), l, pkgcontent.Sources{
		Articles: pkgcontent.SourceFromFS("articles.json"),
		Skills:   pkgcontent.SourceFromFS("skills.json"),
	})
	if err != nil {
		t.Fatalf("LoadSite returned error: %v", err)
	}
	if len(site.Articles) != 1 || len(site.Skills) != 1 || len(site.Projects) != 0 {
		t.Fatalf("unexpected site %+v", site)
	}
}
