// Package domain holds the timeline data model: scenes, typed tracks, and
// timed elements, together with the placement mapping and the element
// split algorithm. Types here are plain values; mutation policy lives in
// the session managers.
package domain
