package proc

import (
	"errors"
	"fmt"
)

// ErrOutOfProcesses is returned when the free pool is exhausted
var ErrOutOfProcesses = errors.New("out of processes")

// Pool represents a fixed capacity process table. Free entries are members of
// the free queue, allocated ones are not. The free ring is the only membership
// a free record holds, so Queues() returns 1 for it.
type Pool struct {
	table []Process
	free  Queue
}

// Get returns the process record for h or nil if h is not a table handle
func (p *Pool) Get(h Handle) *Process {
	if h <= None || int(h) > len(p.table) {
		return nil
	}
	return &p.table[h-1]
}

// Capacity returns the table size
func (p *Pool) Capacity() int {
	return len(p.table)
}

// Available returns the free pool size
func (p *Pool) Available() int {
	return p.Len(&p.free)
}

// InUse reports whether h is an allocated process
func (p *Pool) InUse(h Handle) bool {
	proc := p.Get(h)
	return proc != nil && !proc.free
}

// Alloc takes a process from the free pool
func (p *Pool) Alloc() (Handle, error) {
	h := p.Remove(&p.free)
	if h == None {
		return None, ErrOutOfProcesses
	}
	proc := p.Get(h)
	proc.free = false
	return h, nil
}

// Free clears the record and returns it to the free pool. The process must not
// be a member of any queue.
func (p *Pool) Free(h Handle) error {
	proc := p.Get(h)
	if proc == nil {
		return fmt.Errorf("invalid handle: %v", int(h))
	}
	if proc.free {
		return fmt.Errorf("%v already free", h)
	}
	if proc.queues != 0 {
		return fmt.Errorf("%v still on %d queue(s)", h, proc.queues)
	}
	proc.reset()
	proc.free = true
	p.Insert(&p.free, h)
	return nil
}

// Adopt links child under parent
func (p *Pool) Adopt(parent, child Handle) {
	parentProc, childProc := p.Get(parent), p.Get(child)
	if childProc == nil {
		return
	}
	childProc.Parent = parent
	if parentProc != nil {
		parentProc.Children = append(parentProc.Children, child)
	}
}

// Orphan unlinks h from its parent
func (p *Pool) Orphan(h Handle) {
	proc := p.Get(h)
	if proc == nil {
		return
	}
	if parent := p.Get(proc.Parent); parent != nil {
		for i, candidate := range parent.Children {
			if candidate == h {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
	}
	proc.Parent = None
}

// Subtree returns h and all its descendants in post-order, children before parents
func (p *Pool) Subtree(h Handle) []Handle {
	if p.Get(h) == nil {
		return nil
	}
	type frame struct {
		handle Handle
		next   int
	}
	var result []Handle
	stack := []frame{{handle: h}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := p.Get(top.handle).Children
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			stack = append(stack, frame{handle: child})
			continue
		}
		result = append(result, top.handle)
		stack = stack[:len(stack)-1]
	}
	return result
}

// NewPool creates a pool with capacity free processes
func NewPool(capacity int) *Pool {
	ret := &Pool{table: make([]Process, capacity)}
	for i := range ret.table {
		h := Handle(i + 1)
		ret.table[i].free = true
		ret.Insert(&ret.free, h)
	}
	return ret
}
