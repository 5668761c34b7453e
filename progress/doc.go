// Package progress keeps aggregated kernel counters for a single boot session.
// Counters are updated by the kernel on every state transition and can be
// observed through an onChange callback or read as a snapshot.
package progress
