// Package store defines the persistence interfaces for the delivery
// back office and the sentinel errors their implementations return.
//
// Implementations live under internal/platform; services depend only on
// the interfaces here so they can be exercised against mocks.
package store
