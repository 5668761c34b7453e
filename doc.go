// Package nucleus boots HOCA style nucleus images on a simulated single CPU
// machine.
//
// A boot image (YAML, loadable from any afs URL) describes the initial memory
// words, state areas, process programs, device behaviour and the state of the
// first process. Runtime.Boot assembles the programs, builds the machine,
// boots the kernel and runs it until it halts: normally when no process is
// left, with a deadlock when every remaining process waits on a semaphore no
// one can signal, or with a panic on an internal capacity overflow. Each run
// produces a report with the halt status, the kernel transcript and progress
// counters, stored in the configured report DAO.
//
// Usage:
//
//	srv := nucleus.New()
//	rt := srv.Runtime()
//	report, err := rt.BootURL(ctx, "file:///images/producer_consumer.yaml")
package nucleus
