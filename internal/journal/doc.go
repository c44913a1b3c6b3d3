// Package journal provides durable storage for campaign play logs.
//
// The journal is an append-only record: every session of play gets a row
// in the sessions table, and every line produced during play (journal
// prose, move results, oracle answers, mechanical changes, notes) becomes
// an entry stamped with a strictly increasing sequence number. Entries
// are keyed by their id, and appends are idempotent, so retrying a write
// or re-running a recorded session never duplicates log lines.
//
// Reads are deterministic: entries come back ordered by seq, then id,
// which makes replay and markdown export reproducible across runs.
package journal
