// Package tracing wraps OpenTelemetry so that the kernel and the runtime can
// record spans around boot, traps, interrupts and whole runs without importing
// the SDK directly. Until Init is called spans are no-ops.
package tracing
