// Package asl implements the Active Semaphore List: the address ordered set of
// semaphore descriptors that currently have at least one blocked process.
package asl

import (
	"errors"

	"github.com/viant/nucleus/runtime/proc"
)

// ErrOutOfDescriptors reports an exhausted descriptor pool
var ErrOutOfDescriptors = errors.New("out of semaphore descriptors")

const nilIndex = -1

type descriptor struct {
	addr  int
	queue proc.Queue
	prev  int
	next  int
}

// List represents the active semaphore list
type List struct {
	pool   *proc.Pool
	table  []descriptor
	head   int
	free   int
	active int
}

// Insert blocks h on the semaphore at addr. It returns true only when a new
// descriptor was needed and none was free; h is left untouched in that case.
func (l *List) Insert(addr int, h proc.Handle) bool {
	process := l.pool.Get(h)
	if process == nil {
		return false
	}
	index := l.lookup(addr)
	if index == nilIndex {
		if index = l.alloc(addr); index == nilIndex {
			return true
		}
	}
	if !process.AddBlocker(addr) {
		panic(&proc.OverflowError{Handle: h})
	}
	l.pool.Insert(&l.table[index].queue, h)
	return false
}

// Remove releases the first process blocked on addr, returns proc.None if there is none
func (l *List) Remove(addr int) proc.Handle {
	index := l.lookup(addr)
	if index == nilIndex {
		return proc.None
	}
	h := l.pool.Remove(&l.table[index].queue)
	l.pool.Get(h).RemoveBlocker(addr)
	l.release(index)
	return h
}

// Out detaches h from every semaphore queue holding it, returns proc.None if h was not blocked
func (l *List) Out(h proc.Handle) proc.Handle {
	process := l.pool.Get(h)
	if process == nil {
		return proc.None
	}
	found := proc.None
	for index := l.head; index != nilIndex; {
		next := l.table[index].next
		if l.pool.Out(&l.table[index].queue, h) == h {
			process.RemoveBlocker(l.table[index].addr)
			found = h
			l.release(index)
		}
		index = next
	}
	return found
}

// Head returns the first process blocked on addr without removing it
func (l *List) Head(addr int) proc.Handle {
	index := l.lookup(addr)
	if index == nilIndex {
		return proc.None
	}
	return l.pool.Head(&l.table[index].queue)
}

// Waiters returns processes blocked on addr in release order
func (l *List) Waiters(addr int) []proc.Handle {
	index := l.lookup(addr)
	if index == nilIndex {
		return nil
	}
	return l.pool.Members(&l.table[index].queue)
}

// Active returns true if any semaphore has a blocked process
func (l *List) Active() bool {
	return l.head != nilIndex
}

// Len returns the number of active descriptors
func (l *List) Len() int {
	return l.active
}

// Available returns the number of free descriptors
func (l *List) Available() int {
	return len(l.table) - l.active
}

// Addresses returns the active semaphore addresses in ascending order
func (l *List) Addresses() []int {
	var ret []int
	for index := l.head; index != nilIndex; index = l.table[index].next {
		ret = append(ret, l.table[index].addr)
	}
	return ret
}

func (l *List) lookup(addr int) int {
	for index := l.head; index != nilIndex; index = l.table[index].next {
		switch candidate := l.table[index].addr; {
		case candidate == addr:
			return index
		case candidate > addr:
			return nilIndex
		}
	}
	return nilIndex
}

// alloc takes a free descriptor and links it in address order
func (l *List) alloc(addr int) int {
	index := l.free
	if index == nilIndex {
		return nilIndex
	}
	l.free = l.table[index].next
	l.table[index] = descriptor{addr: addr, prev: nilIndex, next: nilIndex}

	prev := nilIndex
	for cur := l.head; cur != nilIndex && l.table[cur].addr < addr; cur = l.table[cur].next {
		prev = cur
	}
	if prev == nilIndex {
		l.table[index].next = l.head
		l.head = index
	} else {
		l.table[index].next = l.table[prev].next
		l.table[prev].next = index
	}
	l.table[index].prev = prev
	if next := l.table[index].next; next != nilIndex {
		l.table[next].prev = index
	}
	l.active++
	return index
}

// release returns the descriptor to the free list once its queue drained
func (l *List) release(index int) {
	d := &l.table[index]
	if !d.queue.Empty() {
		return
	}
	if d.prev == nilIndex {
		l.head = d.next
	} else {
		l.table[d.prev].next = d.next
	}
	if d.next != nilIndex {
		l.table[d.next].prev = d.prev
	}
	*d = descriptor{prev: nilIndex, next: l.free}
	l.free = index
	l.active--
}

// New creates a list with capacity descriptors over the supplied process pool
func New(pool *proc.Pool, capacity int) *List {
	ret := &List{pool: pool, table: make([]descriptor, capacity), head: nilIndex, free: nilIndex}
	for i := capacity - 1; i >= 0; i-- {
		ret.table[i] = descriptor{prev: nilIndex, next: ret.free}
		ret.free = i
	}
	return ret
}
