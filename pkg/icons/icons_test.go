package icons

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archlens/pkg/errors"
	"github.com/matzehuels/archlens/pkg/httputil"
)

func TestResolver(t *testing.T) {
	tests := []struct {
		name     string
		resolver Resolver
		icon     string
		want     Request
	}{
		{
			name: "defaults",
			icon: "database",
			want: Request{Name: "database", Format: "svg", Source: "local"},
		},
		{
			name:     "base url",
			resolver: Resolver{Format: "png", Source: "cdn", BaseURL: "https://cdn.example.com/icons/"},
			icon:     "aws/lambda",
			want: Request{
				Name:   "aws/lambda",
				Format: "png",
				Source: "cdn",
				URL:    "https://cdn.example.com/icons/aws/lambda.png",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resolver.Resolve(tt.icon); got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.icon, got, tt.want)
			}
		})
	}
}

func TestDirFetcher(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "aws"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "aws", "lambda.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewDirFetcher(dir)
	ctx := context.Background()

	data, err := f.Fetch(ctx, Request{Name: "aws/lambda", Format: "svg"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Fetch() = %q, want <svg/>", data)
	}

	_, err = f.Fetch(ctx, Request{Name: "missing", Format: "svg"})
	if !errors.Is(err, errors.ErrCodeIconNotFound) {
		t.Errorf("missing icon error = %v, want ICON_NOT_FOUND", err)
	}

	_, err = f.Fetch(ctx, Request{Name: "../secret", Format: "svg"})
	if !errors.Is(err, errors.ErrCodeInvalidIcon) {
		t.Errorf("traversal error = %v, want INVALID_ICON", err)
	}
}

func TestFailingFetcher(t *testing.T) {
	_, err := FailingFetcher{}.Fetch(context.Background(), Request{Name: "db"})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestHTTPFetcher(t *testing.T) {
	var flaky atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/db.svg":
			if r.Header.Get("X-Token") != "secret" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte("<svg>db</svg>"))
		case "/flaky.svg":
			if flaky.Add(1) < 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte("<svg>flaky</svg>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client(), map[string]string{"X-Token": "secret"}, log.New(os.Stderr)).
		WithPolicy(httputil.Policy{Attempts: 3, Delay: time.Millisecond})
	ctx := context.Background()
	resolver := Resolver{BaseURL: srv.URL}

	t.Run("ok", func(t *testing.T) {
		data, err := f.Fetch(ctx, resolver.Resolve("db"))
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if string(data) != "<svg>db</svg>" {
			t.Errorf("Fetch() = %q", data)
		}
	})

	t.Run("retries 5xx", func(t *testing.T) {
		data, err := f.Fetch(ctx, resolver.Resolve("flaky"))
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if string(data) != "<svg>flaky</svg>" {
			t.Errorf("Fetch() = %q", data)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := f.Fetch(ctx, resolver.Resolve("nope"))
		if !errors.Is(err, errors.ErrCodeIconNotFound) {
			t.Errorf("error = %v, want ICON_NOT_FOUND", err)
		}
	})

	t.Run("missing url", func(t *testing.T) {
		_, err := f.Fetch(ctx, Request{Name: "db"})
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("error = %v, want INVALID_INPUT", err)
		}
	})
}
