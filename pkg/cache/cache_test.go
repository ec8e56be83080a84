package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "artifact:x", []byte("<svg/>"), time.Hour); err != nil {
		t.Errorf("Set() error: %v", err)
	}
	if data, hit, err := c.Get(ctx, "artifact:x"); hit || data != nil || err != nil {
		t.Errorf("Get() = %q, %v, %v; want nil, false, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "artifact:x"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
}

func TestHash(t *testing.T) {
	a, b := Hash([]byte("<svg>a</svg>")), Hash([]byte("<svg>b</svg>"))
	if a != Hash([]byte("<svg>a</svg>")) {
		t.Error("Hash() is not deterministic")
	}
	if a == b {
		t.Error("Hash() collides for different boards")
	}
	if len(a) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(a))
	}
	if k := hashKey("artifact", "h", ArtifactKeyOpts{Format: "png"}); !strings.HasPrefix(k, "artifact:") || len(k) != len("artifact:")+64 {
		t.Errorf("hashKey() = %q", k)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "simple"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Style: "simple"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey should start with artifact:, got %s", ak1)
	}

	// Same inputs give the same key
	if again := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "simple"}); again != ak1 {
		t.Errorf("ArtifactKey not deterministic: %s != %s", again, ak1)
	}

	// Board hash is part of the key
	if other := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "svg", Style: "simple"}); other == ak1 {
		t.Error("Different board hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "board:123:")

	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "png"})
	if want := "board:123:" + inner.ArtifactKey("h", ArtifactKeyOpts{Format: "png"}); key != want {
		t.Errorf("ScopedKeyer ArtifactKey = %s, want %s", key, want)
	}
	if p := scoped.(*ScopedKeyer).Prefix(); p != "board:123:" {
		t.Errorf("Prefix() = %q", p)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "pdf"})
	if !strings.HasPrefix(key, "prefix:artifact:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("png-bytes"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "png-bytes" {
		t.Errorf("Get(k) = %q, %v, %v; want png-bytes hit", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	c.Set(ctx, "forever", []byte("y"), 0)
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should hit")
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	calls := 0
	produce := func() ([]byte, error) {
		calls++
		return []byte("rendered"), nil
	}

	for i := 0; i < 3; i++ {
		data, err := Fetch(ctx, c, "key", "png", time.Hour, produce)
		if err != nil {
			t.Fatalf("Fetch error: %v", err)
		}
		if string(data) != "rendered" {
			t.Errorf("Fetch() = %q, want rendered", data)
		}
	}
	if calls != 1 {
		t.Errorf("produce called %d times, want 1", calls)
	}

	// Errors are passed through and nothing is stored
	_, err := Fetch(ctx, c, "bad", "png", time.Hour, func() ([]byte, error) { return nil, ErrUnavailable })
	if err != ErrUnavailable {
		t.Errorf("Fetch error = %v, want ErrUnavailable", err)
	}
	if _, hit, _ := c.Get(ctx, "bad"); hit {
		t.Error("failed produce should not be cached")
	}

	// NullCache always produces
	calls = 0
	Fetch(ctx, NewNullCache(), "key", "png", 0, produce)
	Fetch(ctx, NewNullCache(), "key", "png", 0, produce)
	if calls != 2 {
		t.Errorf("NullCache produce called %d times, want 2", calls)
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("NAMEPLATE_TEST_REDIS")
	if url == "" {
		t.Skip("NAMEPLATE_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	key := "test:" + Hash([]byte(t.Name()))
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if data, hit, err := c.Get(ctx, key); !hit || err != nil || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not a url"); err == nil {
		t.Error("NewRedisCache should reject a malformed url")
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}

	base := fmt.Errorf("dial: %w", ErrUnavailable)
	err := Retryable(base)
	if !IsRetryable(err) {
		t.Error("IsRetryable(Retryable(err)) = false, want true")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("Retryable should keep the wrapped chain")
	}
	if err.Error() != base.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), base.Error())
	}
	if IsRetryable(base) {
		t.Error("IsRetryable(unmarked) = true, want false")
	}
	if !IsRetryable(fmt.Errorf("ping: %w", err)) {
		t.Error("IsRetryable should see through wrapping")
	}
}

func TestBackoffDo(t *testing.T) {
	ctx := context.Background()
	fatal := errors.New("auth failed")
	flaky := Retryable(ErrUnavailable)
	b := Backoff{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent error stops", 5, fatal, 1, fatal},
		{"recovers after retry", 2, flaky, 3, nil},
		{"attempts exhausted", 5, flaky, 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Do() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Do() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("RetryWithBackoff() = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestFileCacheForeignFile(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"data":"old"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(foreign) = hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("foreign entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}

	gone := &FileCache{dir: filepath.Join(t.TempDir(), "never"), now: time.Now}
	if n, err := gone.Clear(); n != 0 || err != nil {
		t.Errorf("Clear(missing) = %d, %v, want 0, nil", n, err)
	}
}
