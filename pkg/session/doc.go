// Package session defines visitor sessions and their stores.
//
// Stores:
//   - CacheStore over cache.Memory or cache.Redis; entries expire on their own.
//   - PostgresStore over a pgx pool; run Migrate once and schedule PurgeTask
//     to drop expired rows.
package session
