// Package maintenance owns cross-remote migration concerns.
//
// Ownership boundary:
// - identifier translation tables (replay and anonymize modes)
// - clone: replay of a recipe graph onto a second remote
// - dump: deterministic anonymized snapshot of a remote
// - clean: reclamation of unreferenced ingredients and labels
// - merge: requirement redirection between two ingredients
//
// Every operation runs against transient in-memory state fetched for the
// duration of one run; nothing is persisted locally and translation tables
// never outlive the run.
//
// Failure posture: gating fetch/tier steps fail the operation; per-item
// creations, attachments, and deletions are collected on the run Report as
// warnings without halting the batch.
package maintenance
