package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %v, %v, %v; want nil, false, nil", data, hit, err)
	}
	if n, _ := c.Len(ctx); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

// backendContract runs the behavior every local backend must share.
func backendContract(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "icon:local:svg:db"); err != nil || hit {
		t.Fatalf("empty Get() hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "icon:local:svg:db", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "icon:local:svg:db")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get() = %q, %v, %v; want <svg/>, true, nil", data, hit, err)
	}

	if err := c.Set(ctx, "icon:local:svg:api", []byte("<svg>api</svg>"), 0); err != nil {
		t.Fatal(err)
	}
	if n, err := c.Len(ctx); err != nil || n != 2 {
		t.Errorf("Len() = %d, %v; want 2", n, err)
	}

	if err := c.Delete(ctx, "icon:local:svg:db"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Delete(ctx, "icon:local:svg:missing"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "icon:local:svg:db"); hit {
		t.Error("deleted key still present")
	}

	if err := c.Set(ctx, "short-lived", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short-lived"); hit {
		t.Error("expired entry reported as hit")
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n, _ := c.Len(ctx); n != 0 {
		t.Errorf("Len() after Clear = %d, want 0", n)
	}
}

func TestMemoryCache(t *testing.T) {
	backendContract(t, NewMemoryCache(0))
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	backendContract(t, c)
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("broken")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "broken"); hit || err != nil {
		t.Errorf("corrupt entry Get() hit=%v err=%v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClearCount(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for i := range 5 {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0)
	}
	n, err := c.ClearCount(ctx)
	if err != nil || n != 5 {
		t.Errorf("ClearCount() = %d, %v; want 5", n, err)
	}
}

func TestMemoryCacheLRU(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache(2, 1)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_, _, _ = c.Get(ctx, "a") // a is now most recently used
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("b should have been evicted as least recently used")
	}
	for _, k := range []string{"a", "c"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s should still be cached", k)
		}
	}

	stats := c.Stats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
	if stats.Hits != 3 || stats.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 3/1", stats.Hits, stats.Misses)
	}
}

func TestMemoryCacheBounded(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(32)
	for i := range 1000 {
		_ = c.Set(ctx, fmt.Sprintf("icon:%d", i), []byte("x"), 0)
	}
	n, _ := c.Len(ctx)
	if n > 32 {
		t.Errorf("Len() = %d, want <= 32", n)
	}
	if c.Stats().Evictions == 0 {
		t.Error("expected evictions")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	key := k.IconKey("aws/lambda", IconKeyOpts{Format: "svg", Source: "cdn"})
	if key != "icon:cdn:svg:aws/lambda" {
		t.Errorf("IconKey unexpected: %s", key)
	}

	svg := k.IconKey("db", IconKeyOpts{Format: "svg", Source: "local"})
	png := k.IconKey("db", IconKeyOpts{Format: "png", Source: "local"})
	cdn := k.IconKey("db", IconKeyOpts{Format: "svg", Source: "cdn"})
	if svg == png || svg == cdn {
		t.Error("Different load parameters should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:acme:")
	key := scoped.IconKey("db", IconKeyOpts{Format: "svg", Source: "local"})
	if key != "tenant:acme:icon:local:svg:db" {
		t.Errorf("ScopedKeyer IconKey unexpected: %s", key)
	}

	// Nil inner falls back to DefaultKeyer
	key = NewScopedKeyer(nil, "p:").IconKey("db", IconKeyOpts{})
	if key != "p:icon:::db" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default", Options{}, false},
		{"memory", Options{Backend: BackendMemory, Capacity: 10}, false},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, false},
		{"file without dir", Options{Backend: BackendFile}, true},
		{"redis without url", Options{Backend: BackendRedis}, true},
		{"mongo without uri", Options{Backend: BackendMongo}, true},
		{"none", Options{Backend: BackendNone}, false},
		{"unknown", Options{Backend: "memcached"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if c != nil {
				c.Close()
			}
		})
	}

	_, err := Open(ctx, Options{Backend: "memcached"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v, want ErrUnknownBackend", err)
	}
}
