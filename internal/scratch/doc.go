// Package scratch manages per-call working directories for subtitle
// downloads. Every fetch runs in its own uniquely named directory that is
// removed when the session closes, and a file lock coordinates sweeps with
// active sessions so cleanup never races a download in flight.
package scratch
