// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/net/context"
)

// CachedChecker puts a bounded-TTL cache in front of a Checker. Whether
// staleness against an out-of-band-updated breach corpus is acceptable is
// the caller's call; nothing in this package enables it by default. Keys
// are hash digests, never raw passwords.
type CachedChecker struct {
	inner Checker
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewCachedChecker wraps inner with a TTL cache of successful results.
// Unavailable outcomes are never cached.
func NewCachedChecker(inner Checker, ttl time.Duration) (*CachedChecker, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &CachedChecker{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}, nil
}

func (c *CachedChecker) Check(ctx context.Context, password string) (*Result, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	sum := sha1.Sum([]byte(password))
	key := hex.EncodeToString(sum[:])

	if v, ok := c.cache.Get(key); ok {
		return v.(*Result), nil
	}

	res, err := c.inner.Check(ctx, password)
	if err != nil {
		return nil, err
	}
	if !res.Unavailable {
		c.cache.SetWithTTL(key, res, 1, c.ttl)
	}
	return res, nil
}

// Close releases the cache's internal goroutines.
func (c *CachedChecker) Close() {
	c.cache.Close()
}
