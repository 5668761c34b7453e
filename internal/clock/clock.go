// Package clock supplies wall clock time for run reports; the simulated machine
// keeps its own microsecond clock.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Since returns the wall time elapsed since start
func Since(start time.Time) time.Duration { return Now().Sub(start) }
