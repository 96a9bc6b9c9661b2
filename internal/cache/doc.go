// Package cache implements the time-boxed entity caches used by the API facades.
//
// A [Store] maps keys to values and to the time each key was last fetched.
// A key is fresh while now - fetchedAt is within the store's freshness window.
// [Store.Fetch] returns fresh values without calling the backend, refetches stale ones, and falls back to the stale value when the refetch fails.
// With nothing cached, the error reaches the caller.
//
// Invalidation is explicit: a create operation calls [Store.Invalidate] on the one key it affects.
// Keys are never invalidated across each other.
//
// Stores are built per session and cleared on logout with [Store.Clear].
// Concurrent callers are serialized by a mutex, but overlapping fetches of the same key are not merged.
// The later response wins.
//
// An optional [Mirror] (see [RedisMirror]) persists entries between processes.
// It is read only when a key has no local entry, and its failures are logged, never returned.
// Wrap it with [Scoped] to keep one session's entries away from another's.
package cache
