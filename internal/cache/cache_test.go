package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key(KindSearch, "https://en.wikipedia.org/w/api.php?srsearch=Acme")
	b := Key(KindSearch, "https://en.wikipedia.org/w/api.php?srsearch=Acme")
	c := Key(KindPage, "https://en.wikipedia.org/w/api.php?srsearch=Acme")

	if a != b {
		t.Errorf("Expected stable keys, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected kind to change the key")
	}
	if !strings.HasPrefix(a, "foundyear:v1:search:") {
		t.Errorf("Unexpected key prefix: %s", a)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute, nil)

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour, nil)
	key := Key(KindPage, "https://example.org/wiki/Acme")

	if err := c.Set(key, []byte("body"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get(key)
	if !ok || string(got) != "body" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	if err := c.Set(key, []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("Expected expired entry to miss")
	}
	if _, err := os.Stat(c.path(key)); !os.IsNotExist(err) {
		t.Error("Expected expired entry file to be removed")
	}

	if err := c.Delete(key); err != nil {
		t.Errorf("Delete of missing entry should not fail: %v", err)
	}
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour, nil)

	if err := os.WriteFile(filepath.Join(dir, "bad.cache"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("Expected corrupt entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(Options{MemoryTTL: time.Minute, Dir: dir, DiskTTL: time.Hour})

	disk := NewDiskCache(dir, time.Hour, nil)
	if err := disk.Set("k", []byte("from-disk"), 0); err != nil {
		t.Fatal(err)
	}

	got, ok := c.Get("k")
	if !ok || string(got) != "from-disk" {
		t.Fatalf("Get() = %q, %v", got, ok)
	}
	if val, ok := c.memory.Get("k"); !ok || string(val) != "from-disk" {
		t.Error("Expected disk hit to be promoted to memory")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after clear")
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(Options{MemoryTTL: time.Minute, DiskTTL: time.Hour}).(*MemoryCache); !ok {
		t.Error("Expected memory-only cache without a directory")
	}
	if _, ok := New(Options{MemoryTTL: time.Minute, Dir: t.TempDir(), DiskTTL: time.Hour}).(*LayeredCache); !ok {
		t.Error("Expected layered cache with a directory")
	}
}

func TestKindOf(t *testing.T) {
	tests := map[string]string{
		Key(KindSearch, "https://en.wikipedia.org/w/api.php?srsearch=Acme"): KindSearch,
		Key(KindExtract, "https://en.wikipedia.org/w/api.php?titles=Acme"):  KindExtract,
		Key(KindPage, "https://en.wikipedia.org/wiki/Acme"):                 KindPage,
		"unrelated-key":  "",
		"foundyear:v1:x": "",
	}
	for key, want := range tests {
		if got := KindOf(key); got != want {
			t.Errorf("KindOf(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestLifetimes_Resolve(t *testing.T) {
	l := lifetimes{
		layer: time.Hour,
		kinds: map[string]time.Duration{KindSearch: 10 * time.Minute, KindPage: 48 * time.Hour},
	}
	search := Key(KindSearch, "https://example.org/search")
	page := Key(KindPage, "https://example.org/wiki/Acme")
	extract := Key(KindExtract, "https://example.org/extract")

	tests := []struct {
		name string
		key  string
		ttl  time.Duration
		want time.Duration
	}{
		{"kind lifetime", search, 0, 10 * time.Minute},
		{"kind lifetime capped by layer", page, 0, time.Hour},
		{"layer default for kind without lifetime", extract, 0, time.Hour},
		{"explicit ttl wins", search, 5 * time.Minute, 5 * time.Minute},
		{"explicit ttl capped by layer", extract, 3 * time.Hour, time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.resolve(tt.key, tt.ttl); got != tt.want {
				t.Errorf("resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayeredCache_SearchResultsExpireBeforeArticles(t *testing.T) {
	c := NewLayeredCache(Options{
		MemoryTTL: time.Hour,
		Dir:       t.TempDir(),
		DiskTTL:   time.Hour,
		KindTTL:   map[string]time.Duration{KindSearch: time.Millisecond},
	})
	search := Key(KindSearch, "https://example.org/w/api.php?srsearch=Acme")
	article := Key(KindExtract, "https://example.org/w/api.php?titles=Acme")

	if err := c.Set(search, []byte("hits"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(article, []byte("body"), 0); err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get(search); ok {
		t.Error("Expected search result to expire")
	}
	if got, ok := c.Get(article); !ok || string(got) != "body" {
		t.Errorf("Expected article body to survive, got %q, %v", got, ok)
	}
}

func TestMemoryCache_NegativeTTLIsNotStored(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute, nil)
	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Expected already-expired entry to miss")
	}
}
