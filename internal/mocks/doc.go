// Package mocks provides test doubles for the store and service
// interfaces. Each mock carries a map-backed default implementation and
// per-method function fields for overriding behavior in a single test.
package mocks
