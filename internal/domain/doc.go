// Package domain contains the entity types for the library catalog and
// membership: users, authors, and books, together with the validation rules
// and invariants they must satisfy. It has no dependencies on storage or
// transport packages.
package domain
