// Package event fans kernel transitions out to asynchronous listeners over a
// messaging queue, so that slow consumers never run inside a kernel entry.
package event

import "time"

// Context identifies where an event originated
type Context struct {
	SessionID string `json:"sessionID"`
	Image     string `json:"image,omitempty"`
	EventType string `json:"eventType"`
	Pid       int    `json:"pid,omitempty"`
}

// Event wraps a payload with its origin
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
