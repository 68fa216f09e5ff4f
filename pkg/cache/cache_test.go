package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "raster:abc"); hit {
		t.Fatal("empty cache should miss")
	}

	want := []byte{0x89, 'P', 'N', 'G'}
	if err := c.Set(ctx, "raster:abc", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := c.Get(ctx, "raster:abc")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v; want hit", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %v, want %v", got, want)
	}

	if err := c.Delete(ctx, "raster:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "raster:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "raster:abc"); err != nil {
		t.Errorf("Delete of missing key should succeed, got %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	path := fc.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit = %v, err = %v; want miss without error", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := fc.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after Clear, has %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.RasterKey("svg123", RasterKeyOpts{Width: 180, Height: 180})
	k2 := k.RasterKey("svg123", RasterKeyOpts{Width: 192, Height: 192})
	k3 := k.RasterKey("svg456", RasterKeyOpts{Width: 180, Height: 180})

	if k1 == k2 {
		t.Error("different sizes should produce different keys")
	}
	if k1 == k3 {
		t.Error("different SVGs should produce different keys")
	}
	if k1 != k.RasterKey("svg123", RasterKeyOpts{Width: 180, Height: 180}) {
		t.Error("RasterKey should be deterministic")
	}
	if k1[:7] != "raster:" {
		t.Errorf("RasterKey should be prefixed with raster:, got %s", k1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "brandkit:")

	opts := RasterKeyOpts{Width: 16, Height: 16}
	got := scoped.RasterKey("h", opts)
	want := "brandkit:" + inner.RasterKey("h", opts)
	if got != want {
		t.Errorf("ScopedKeyer RasterKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.RasterKey("h", RasterKeyOpts{Width: 1, Height: 1})
	if len(key) < 14 || key[:14] != "prefix:raster:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		location string
		wantType string
		wantErr  bool
	}{
		{"empty is null", "", "null", false},
		{"none is null", "none", "null", false},
		{"directory is file", t.TempDir(), "file", false},
		{"redis url", "redis://localhost:6379/0", "redis", false},
		{"unknown scheme", "memcached://localhost", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(tt.location)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open(%q) error = %v, wantErr %v", tt.location, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer c.Close()

			var got string
			switch c.(type) {
			case NullCache:
				got = "null"
			case *FileCache:
				got = "file"
			case *RedisCache:
				got = "redis"
			}
			if got != tt.wantType {
				t.Errorf("Open(%q) = %s cache, want %s", tt.location, got, tt.wantType)
			}
		})
	}
}

func TestDefaultKeyerStrict(t *testing.T) {
	k := NewDefaultKeyer()
	lenient := k.RasterKey("svg", RasterKeyOpts{Width: 16, Height: 16})
	strict := k.RasterKey("svg", RasterKeyOpts{Width: 16, Height: 16, Strict: true})
	if lenient == strict {
		t.Error("strict and lenient rasterizations should not share a key")
	}
}
