// Package postgres contains PostgreSQL implementations of the store
// interfaces defined in internal/store. All database errors are mapped to
// the store error taxonomy before they leave this package.
package postgres
