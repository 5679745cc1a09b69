// Package postgres provides the PostgreSQL backend of the key/value store.
// It handles the details of database connections, schema migrations (goose)
// and the mapping of PostgreSQL error codes onto store errors.
package postgres
