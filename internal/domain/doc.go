// Package domain contains the core business entities of the shop backend:
// invoices and the users, products, and categories they reference. The
// types here are independent of any storage or delivery mechanism.
package domain
