// Package catalog holds the fixed event data the simulator streams to clients.
//
// This package is internal to eventsim and owns the canned event vocabulary:
//
//   - [EventType]: the enumerated event type names the dashboard understands
//   - [Event]: one JSON event as it appears on the wire
//   - [Templates]: the fixed table of example events used as randomization seeds
//   - [Teams]: the candidate team names substituted into team-based events
//
// The template table and team list are constructed once and never mutated.
// [Randomize] operates on a per-emission value copy, so the table is safe to
// share across all connection loops without locking.
package catalog
