package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache stores raw lookup responses by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Request kinds cached by the lookup backends
const (
	KindSearch  = "search"  // search result listing for a company name
	KindExtract = "extract" // plain-text article body from the API
	KindPage    = "page"    // rendered article HTML
)

const keyPrefix = "foundyear:v1:"

// Key derives a cache key from a request kind and its URL
func Key(kind string, url string) string {
	hash := sha256.Sum256([]byte(url))
	return keyPrefix + kind + ":" + hex.EncodeToString(hash[:])
}

// KindOf returns the request kind encoded in key, or "" for keys not made by Key
func KindOf(key string) string {
	rest, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return ""
	}
	kind, _, ok := strings.Cut(rest, ":")
	if !ok {
		return ""
	}
	return kind
}

// Options configures New
type Options struct {
	MemoryTTL time.Duration
	Dir       string // Empty disables the disk layer
	DiskTTL   time.Duration
	KindTTL   map[string]time.Duration // Per-kind lifetime, capped by each layer's TTL
}

// New builds the configured cache. A memory layer is always present; a disk
// layer is added when opts.Dir is not empty.
func New(opts Options) Cache {
	if opts.Dir == "" {
		return NewMemoryCache(opts.MemoryTTL, 10*time.Minute, opts.KindTTL)
	}
	return NewLayeredCache(opts)
}

// lifetimes resolves how long one layer keeps an entry
type lifetimes struct {
	layer time.Duration
	kinds map[string]time.Duration
}

// resolve returns the entry TTL for key. A zero ttl picks the kind's
// lifetime, then the layer's. The layer TTL is an upper bound.
func (l lifetimes) resolve(key string, ttl time.Duration) time.Duration {
	if ttl == 0 {
		ttl = l.layer
		if kindTTL, ok := l.kinds[KindOf(key)]; ok && kindTTL != 0 {
			ttl = kindTTL
		}
	}
	if l.layer > 0 && ttl > l.layer {
		ttl = l.layer
	}
	return ttl
}
