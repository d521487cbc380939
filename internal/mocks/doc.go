// Package mocks provides hand-written test doubles for the store and
// auth interfaces. Each mock exposes function fields; a nil field falls
// back to a small in-memory default so simple tests need no setup.
package mocks
