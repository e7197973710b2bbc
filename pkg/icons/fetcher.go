package icons

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/archlens/pkg/errors"
)

// Fetcher loads the payload for an icon request.
//
// Implementations must be safe for concurrent use: the lazy-load pipeline
// dispatches a whole batch at once.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req Request) ([]byte, error)

// Fetch calls f(ctx, req).
func (f FetcherFunc) Fetch(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}

// FailingFetcher rejects every request. It is used when no icon source is
// configured so that queued loads fail loudly in the logs instead of hanging.
type FailingFetcher struct{}

// Fetch always returns an UNSUPPORTED error.
func (FailingFetcher) Fetch(_ context.Context, req Request) ([]byte, error) {
	return nil, errors.New(errors.ErrCodeUnsupported, "no icon source configured for %q", req.Name)
}

// DirFetcher reads icons from a local directory laid out as
// <dir>/<name>.<format>. Namespaced names ("aws/lambda") map to
// subdirectories.
type DirFetcher struct {
	dir string
}

// NewDirFetcher creates a fetcher rooted at dir.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{dir: dir}
}

// Dir returns the root directory.
func (f *DirFetcher) Dir() string { return f.dir }

// Fetch reads the icon file for req.
func (f *DirFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.Path(req)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeIconNotFound, "icon %q not found in %s", req.Name, f.dir)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, err, "read icon %q", req.Name)
	}
	return data, nil
}

// Path returns the file path for req after validating the icon name.
func (f *DirFetcher) Path(req Request) (string, error) {
	if err := errors.ValidateIconName(req.Name); err != nil {
		return "", err
	}
	return filepath.Join(f.dir, filepath.FromSlash(req.FileName())), nil
}

var (
	_ Fetcher = FetcherFunc(nil)
	_ Fetcher = FailingFetcher{}
	_ Fetcher = (*DirFetcher)(nil)
)
