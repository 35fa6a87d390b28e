// Package provider produces material tables and caches them by key.
//
// A Source produces a complete table on demand. Cache wraps any Source with
// an explicit, invalidatable cache: the first Get for a key loads the table
// once (concurrent callers share the load), later Gets return the identical
// table until Invalidate or Purge drops it.
//
// Every table a Cache loads is stamped with a snapshot id so callers can
// tell two loads apart. Failures surface as DATA_UNAVAILABLE errors and are
// never cached.
package provider
