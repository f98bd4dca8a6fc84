// Package service provides the application-level invoice operations.
//
// The service orchestrates the user, product, and invoice stores, runs
// mutating operations inside a single transaction, and projects results to
// the response shapes in package dto.
package service
