// Package fleet spawns and supervises the mock sensor worker fleet.
//
// The fleet is described by a Plan: an ordered list of (kind, count) groups.
// Enumeration order is fixed, so spawn order is deterministic across runs.
//
// Lifecycle:
//
//	spawn ──→ track ──→ signal ──→ reap
//
// The Supervisor starts one worker per plan slot, records its pid, then
// blocks until an external interrupt arrives or every child exits on its
// own. Both paths run the same cleanup: request termination of every
// remaining child in spawn order (requests to already-exited children are
// ignored), then wait until every child has been reaped.
//
// A failed spawn aborts the whole fleet rather than leaving a partial one
// running.
package fleet
