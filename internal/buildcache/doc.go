// Package buildcache memoizes internal/codegen output by schema content
// hash, so that re-running a build against an unchanged schema file returns
// the previously emitted source instead of re-walking the IR.
//
// Storage is a single SQLite table, following the same database/sql plus
// mattn/go-sqlite3 pattern the teacher's internal/store uses for its event
// log, adapted here from an append-only log to a content-addressed cache
// keyed on (schema_sha256, category_id).
package buildcache
