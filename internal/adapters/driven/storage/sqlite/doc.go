// Package sqlite implements the key-value store port on SQLite, using the
// pure Go modernc.org/sqlite driver.
//
// The schema is applied from numbered .up.sql files in migrations/ and
// tracked in a schema_migrations table. The database lives at
// ~/.skycast/data/state.db unless another directory is given.
//
// The database is opened in WAL mode with a five second busy timeout.
package sqlite
