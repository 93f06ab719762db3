// Package store persists observation history in SQLite.
//
// The Store manages database connections, schema initialization, and the
// two tables md5tap writes: runs (one row per observed stream) and
// observations (one row per buffer). The database is a history, not a
// source of truth for tap behavior; pruning old rows never affects
// digesting. Schema changes bump the version in schema.go; users delete
// the database to adopt a new schema.
package store
