// Package moderation implements the content-classification and
// moderation-decision engine: abuse detection (lexical matching plus
// contextual disambiguation), spam detection (same-post repetition and
// promotional-content tracking), and the orchestration that merges both
// verdicts into a final comment disposition.
//
// Files in this package:
//   - types.go    — verdict structs, collaborator interfaces, constants
//   - lexicon.go  — flagged-word store with file load and built-in fallback
//   - patterns.go — static regex tables (positive context, clear abuse, sarcasm, direct address)
//   - matcher.go  — five obfuscation-tolerant word-matching strategies
//   - context.go  — contextual scoring of a text
//   - policy.go   — the fixed abuse decision table
//   - spam.go     — similarity counting and the spam decision ladder
//   - engine.go   — Engine construction and the Moderate orchestration
//
// Classification is pure and deterministic: the lexicon and pattern tables
// are read-only after startup, so one Engine serves all goroutines.
package moderation
