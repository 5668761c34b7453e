package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the kernel
type Delta struct {
	Created     int
	Terminated  int
	Dispatches  int
	Preemptions int
	Blocks      int
	Releases    int
	Traps       int
	Interrupts  int
	PassUps     int
}

// Counters holds the aggregated kernel counters
type Counters struct {
	Created     int `json:"created" yaml:"created"`
	Terminated  int `json:"terminated" yaml:"terminated"`
	Dispatches  int `json:"dispatches" yaml:"dispatches"`
	Preemptions int `json:"preemptions" yaml:"preemptions"`
	Blocks      int `json:"blocks" yaml:"blocks"`
	Releases    int `json:"releases" yaml:"releases"`
	Traps       int `json:"traps" yaml:"traps"`
	Interrupts  int `json:"interrupts" yaml:"interrupts"`
	PassUps     int `json:"passUps" yaml:"passUps"`
}

// Live returns the number of processes created but not yet terminated
func (c Counters) Live() int {
	return c.Created - c.Terminated
}

// Progress keeps kernel counters for a boot session. It is safe for concurrent use.
type Progress struct {
	SessionID string    `json:"sessionId" yaml:"sessionId"`
	Image     string    `json:"image,omitempty" yaml:"image,omitempty"`
	StartedAt time.Time `json:"startedAt" yaml:"startedAt"`
	Counters  `yaml:",inline"`

	mux      sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta to the tracker. The onChange callback, if
// any, is invoked with a snapshot outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.Created += d.Created
	p.Terminated += d.Terminated
	p.Dispatches += d.Dispatches
	p.Preemptions += d.Preemptions
	p.Blocks += d.Blocks
	p.Releases += d.Releases
	p.Traps += d.Traps
	p.Interrupts += d.Interrupts
	p.PassUps += d.PassUps
	snapshot := p.snapshot()
	cb := p.onChange
	p.mux.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

func (p *Progress) snapshot() Progress {
	return Progress{SessionID: p.SessionID, Image: p.Image, StartedAt: p.StartedAt, Counters: p.Counters}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.snapshot()
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables the callback.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = cb
	p.mux.Unlock()
}

// New creates a tracker for a boot session
func New(sessionID, image string, startedAt time.Time) *Progress {
	return &Progress{SessionID: sessionID, Image: image, StartedAt: startedAt}
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, sessionID, image string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := New(sessionID, image, time.Now())
	tr.onChange = onChange
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}
