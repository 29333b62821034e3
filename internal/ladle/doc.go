// Package ladle owns the remote gateway concerns.
//
// Ownership boundary:
// - recipe/ingredient/label data model
// - answer envelope decoding
// - HTTP verbs against one ladle server
//
// ladle does not own identifier resolution or cross-remote orchestration.
package ladle
