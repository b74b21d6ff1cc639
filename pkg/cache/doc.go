// Package cache provides typed caches kept in memory or in Redis, and a
// read-through Loader that collapses concurrent misses with singleflight.
//
// The site mode uses it for parsed templates and as the backing store of
// memory and Redis sessions.
package cache
