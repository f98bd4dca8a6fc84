// Package dto defines the request and response shapes exchanged with callers of
// the invoice service. Requests carry validation tags; responses are built from
// domain entities by a single projection so every operation returns the same shape.
package dto
