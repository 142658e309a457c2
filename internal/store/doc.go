// Package store defines the persistence interfaces consumed by the service
// and API layers, the shared error taxonomy for storage failures, and the
// transaction helper used to compose multi-entity writes atomically.
// Implementations live under internal/platform.
package store
