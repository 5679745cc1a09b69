// Package sqlite provides the default key/value store backend: a single
// SQLite file opened through the pure-Go modernc.org/sqlite driver.
package sqlite
