package kernel

import "errors"

var (
	// ErrProtocol reports a malformed system call; the caller is destroyed
	ErrProtocol = errors.New("protocol violation")
	// ErrVectorInstalled reports a second trap vector install for one class
	ErrVectorInstalled = errors.New("trap vector already installed")
	// ErrBooted reports a second Boot call
	ErrBooted = errors.New("kernel already booted")
	// ErrMemory reports memory too small for the reserved region
	ErrMemory = errors.New("memory smaller than reserved region")
)
