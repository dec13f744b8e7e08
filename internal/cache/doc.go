// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

/*
Package cache provides a thread-safe in-memory TTL cache.

The HTTP layer uses it to replay recommendation responses: identical requests
(same method, path, query string and body) within the TTL are answered from the
cache without invoking the handler.

# Usage

	c := cache.New(300*time.Second, 500)
	key := cache.GenerateKey("POST /recommend", params)
	if v, ok := c.Get(key); ok {
	    return v
	}
	c.Set(key, value)

Expired entries are never returned. They are removed on access, when the cache
is full, and by the Janitor service that the supervisor runs alongside the HTTP
server.

# Metrics

Hits, misses, evictions (by reason) and the current entry count are exported
through the metrics package.
*/
package cache
