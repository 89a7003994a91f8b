package content

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches the raw bytes of a collection file from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) ([]byte, error)
}

// LoaderOptions configures loader construction. FileSystem backs fs sources;
// HTTP sources require either an explicit client or the fallback flag.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
}

// Sources names the collection files that make up a site.
type Sources struct {
	Articles Source
	Skills   Source
	Projects Source
}

// LoadSite fetches and decodes every configured collection. Absent sources
// yield empty collections rather than errors.
func LoadSite(ctx context.Context, loader Loader, sources Sources) (Site, error) {
	var site Site

	if sources.Articles != nil {
		data, err := loader.Load(ctx, sources.Articles)
		if err != nil {
			return Site{}, fmt.Errorf("content: load articles from %s: %w", sources.Articles.Location(), err)
		}
		if site.Articles, err = DecodeArticles(data); err != nil {
			return Site{}, err
		}
	}

	if sources.Skills != nil {
		data, err := loader.Load(ctx, sources.Skills)
		if err != nil {
			return Site{}, fmt.Errorf("content: load skills from %s: %w", sources.Skills.Location(), err)
		}
		if site.Skills, err = DecodeSkills(data); err != nil {
			return Site{}, err
		}
	}

	if sources.Projects != nil {
		data, err := loader.Load(ctx, sources.Projects)
		if err != nil {
			return Site{}, fmt.Errorf("content: load projects from %s: %w", sources.Projects.Location(), err)
		}
		if site.Projects, err = DecodeProjects(data); err != nil {
			return Site{}, err
		}
	}

	return site, nil
}
