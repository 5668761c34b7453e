// Package report defines the outcome of one boot session.
package report

import (
	"time"

	"github.com/viant/nucleus/progress"
)

// Report describes how a boot session ended
type Report struct {
	ID         string            `json:"id" yaml:"id"`
	Image      string            `json:"image" yaml:"image"`
	Status     string            `json:"status" yaml:"status"`
	Message    string            `json:"message,omitempty" yaml:"message,omitempty"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
	Elapsed    int64             `json:"elapsed" yaml:"elapsed"`
	Progress   progress.Counters `json:"progress" yaml:"progress"`
	Transcript []string          `json:"transcript,omitempty" yaml:"transcript,omitempty"`
	StartedAt  time.Time         `json:"startedAt" yaml:"startedAt"`
	Duration   time.Duration     `json:"duration" yaml:"duration"`
}

// Halted reports whether the machine stopped with a kernel halt rather than a machine error
func (r *Report) Halted() bool {
	return r.Error == ""
}
