// Package services defines shared utilities consumed by the transcript
// pipeline and its external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, languages, operation names, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so failures classify
//     consistently (tool unavailable vs extraction failed vs malformed
//     metadata vs subtitle not found).
//   - The ExtractionError type that preserves an external tool's exit code
//     and captured stderr.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across operations.
package services
