// Package cache provides a byte-bounded LRU cache for immutable blob blocks.
//
// Cached bytes are charged against an optional resource.Controller, so the
// cache competes with in-flight archive uploads for the same memory budget.
// When the controller refuses, the block is simply not cached.
package cache
