// Package transcript records kernel events as text lines and compares a
// recorded transcript against an expected one.
package transcript

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/nucleus/runtime/kernel"
)

// Recorder collects kernel event messages, it is a kernel.Listener
type Recorder struct {
	mux        sync.Mutex
	lines      []string
	timestamps bool
}

// Listen records one event
func (r *Recorder) Listen(event *kernel.Event) {
	line := event.Message
	if r.timestamps {
		line = fmt.Sprintf("%10d %s", event.Time, event.Message)
	}
	r.Append(line)
}

// Append records a preformatted line
func (r *Recorder) Append(line string) {
	r.mux.Lock()
	r.lines = append(r.lines, line)
	r.mux.Unlock()
}

// Lines returns a copy of the recorded lines
func (r *Recorder) Lines() []string {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]string(nil), r.lines...)
}

// String returns the transcript text, one line per event
func (r *Recorder) String() string {
	return Text(r.Lines())
}

// Save uploads the transcript text to URL
func (r *Recorder) Save(ctx context.Context, fs afs.Service, URL string) error {
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader([]byte(r.String()))); err != nil {
		return fmt.Errorf("failed to save transcript to %s: %w", URL, err)
	}
	return nil
}

// Text joins lines into newline terminated text
func Text(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// NewRecorder creates a recorder; timestamps prefixes every line with the event time in µs
func NewRecorder(timestamps bool) *Recorder {
	return &Recorder{timestamps: timestamps}
}
