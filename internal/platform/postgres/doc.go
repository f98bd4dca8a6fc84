// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, together with the
// embedded schema migrations they depend on. It handles query execution and
// data mapping between domain entities and database rows.
package postgres
