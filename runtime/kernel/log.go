package kernel

import (
	"fmt"

	"github.com/viant/nucleus/runtime/proc"
)

// EventType classifies kernel transitions
type EventType string

const (
	EventCreated    EventType = "created"
	EventDispatched EventType = "dispatched"
	EventPreempted  EventType = "preempted"
	EventBlocked    EventType = "blocked"
	EventReleased   EventType = "released"
	EventPassUp     EventType = "passUp"
	EventTerminated EventType = "terminated"
	EventHalted     EventType = "halted"
)

// Event represents one kernel transition
type Event struct {
	Time    int64     `json:"time"`
	Pid     int       `json:"pid,omitempty"`
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

func (e *Event) String() string {
	return e.Message
}

// Listener receives kernel events synchronously, it must not call back into the kernel
type Listener func(event *Event)

func (k *Kernel) emit(eventType EventType, pid proc.Handle, format string, args ...interface{}) {
	event := &Event{Time: k.machine.Now(), Pid: int(pid), Type: eventType, Message: fmt.Sprintf(format, args...)}
	k.logger.Print(event.Message)
	for _, listener := range k.listeners {
		listener(event)
	}
}
