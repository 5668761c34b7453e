// Package state defines the processor state saved and restored around every
// privileged transition.
package state
