// Package journal persists a best-effort history of fetch operations in a
// SQLite database. Callers treat a nil store as disabled; journal failures
// must never abort the operation they describe.
package journal
