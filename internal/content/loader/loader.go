package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgcontent "github.com/goliatone/go-sitegen/pkg/content"
)

// Loader implements pkgcontent.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ pkgcontent.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgcontent.LoaderOptions) pkgcontent.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a collection file from the provided source.
func (l *Loader) Load(ctx context.Context, src pkgcontent.Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("content loader: source is nil")
	}

	switch src.Kind() {
	case pkgcontent.SourceKindFile:
		return loadFile(ctx, src.Location())
	case pkgcontent.SourceKindFS:
		return loadFromFS(ctx, l.fs, src.Location())
	case pkgcontent.SourceKindURL:
		if !l.allowHTTP {
			return nil, errors.New("content loader: http support disabled")
		}
		return loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		return nil, errors.New("content loader: unsupported source kind")
	}
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("content loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return readFile(path)
}

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("content loader: fs path is required")
	}
	if files == nil {
		return nil, errors.New("content loader: fs is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return fs.ReadFile(files, name)
}
