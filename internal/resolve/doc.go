// Package resolve owns identifier resolution concerns.
//
// Ownership boundary:
// - clue to canonical entity mapping
// - disambiguation outcomes and errors
//
// A clue is whatever the user typed: an id, an exact name, or a name
// pattern. Resolution has no side effects unless create-if-missing is
// requested and no acceptable candidate exists.
package resolve
