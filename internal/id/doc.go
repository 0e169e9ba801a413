// Package id generates opaque identifiers for projects, scenes, tracks,
// elements, and media assets.
//
// Identifiers are UUIDv4 bytes encoded as base32 (RFC 4648) with no
// padding: 26 characters, lowercase, safe for URLs and file paths. The
// only contract is uniqueness within a process lifetime and stability
// once assigned.
package id
