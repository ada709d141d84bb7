// Package report persists rewrite run reports to SQLite.
//
// A run records the manifest it executed and one row per declaration it
// visited, with content-addressed hashes of the source before and after the
// rewrite. Hashes are domain-separated SHA-256 over NFC-normalized text, so
// the same logical source always addresses the same content regardless of
// Unicode encoding form.
package report
