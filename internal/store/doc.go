// Package store defines the persistence contracts the invoice service
// depends on: user and product lookups, invoice CRUD with paginated
// listing, transaction helpers, and the errors implementations return.
// Concrete implementations live under internal/platform.
package store
