// Package cache memoises rendered markup. Values are immutable strings, so
// a cache miss is always safe: callers just render again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is a string cache.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, val string)
}

// Key builds a fixed-size key from its parts.
func Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h[:])
}

// DefaultSize is the entry limit of NewMemory(0).
const DefaultSize = 512

// Memory is a bounded least-recently-used in-process store.
type Memory struct {
	lru *lru.Cache[string, string]
}

// NewMemory returns an LRU holding at most size entries.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	// New only fails for a non-positive size
	c, _ := lru.New[string, string](size)
	return &Memory{lru: c}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) { return m.lru.Get(key) }

func (m *Memory) Set(_ context.Context, key, val string) { m.lru.Add(key, val) }

// Len returns the number of cached entries.
func (m *Memory) Len() int { return m.lru.Len() }

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool) { return "", false }
func (Nop) Set(context.Context, string, string)        {}
