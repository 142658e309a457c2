// Package api contains the HTTP handlers for the library API: auth, user
// and profile management, the author/book catalog, and the lending surface.
// Handlers validate payloads, call into stores and services, and map every
// error through one taxonomy into the uniform response envelope.
package api
