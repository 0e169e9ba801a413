// Package storage defines the persistence contract consumed by the project
// manager.
//
// A project is persisted as a whole unit keyed by id; its lightweight
// metadata summary is indexed separately so listing projects never loads
// full timelines. Implementations (bbolt, sqlite, memory) live in
// subpackages.
//
// # Error Types
//
//   - ErrNotFound: Indicates a requested project is missing.
package storage
