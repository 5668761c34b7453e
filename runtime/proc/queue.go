package proc

// Queue represents a process queue by its tail. The zero value is an empty queue.
type Queue struct {
	Tail Handle
	Slot int
}

// Empty returns true if the queue has no members
func (q *Queue) Empty() bool {
	return q.Tail == None
}

func (q *Queue) isTail(h Handle, slot int) bool {
	return q.Tail == h && q.Slot == slot
}

// Insert appends the process to the tail of the queue. It panics with
// *OverflowError when the process has no free link slot.
func (p *Pool) Insert(q *Queue, h Handle) {
	proc := p.Get(h)
	if proc == nil {
		return
	}
	slot := proc.freeSlot()
	if slot < 0 {
		panic(&OverflowError{Handle: h})
	}
	if q.Empty() {
		proc.links[slot] = Link{Next: h, Slot: slot}
	} else {
		tail := p.Get(q.Tail)
		proc.links[slot] = tail.links[q.Slot] // new tail points at the head
		tail.links[q.Slot] = Link{Next: h, Slot: slot}
	}
	proc.queues++
	q.Tail, q.Slot = h, slot
}

// Remove dequeues the head of the queue, returns None if the queue is empty
func (p *Pool) Remove(q *Queue) Handle {
	if q.Empty() {
		return None
	}
	tail := p.Get(q.Tail)
	headLink := tail.links[q.Slot]
	if q.isTail(headLink.Next, headLink.Slot) {
		tail.links[q.Slot] = Link{}
		tail.queues--
		removed := q.Tail
		*q = Queue{}
		return removed
	}
	head := p.Get(headLink.Next)
	tail.links[q.Slot] = head.links[headLink.Slot]
	head.links[headLink.Slot] = Link{}
	head.queues--
	return headLink.Next
}

// Out removes h from anywhere in the queue. It returns None when h is not a member.
func (p *Pool) Out(q *Queue, h Handle) Handle {
	if q.Empty() || h == None {
		return None
	}
	headLink := p.Get(q.Tail).links[q.Slot]
	if headLink.Next == h {
		return p.Remove(q)
	}
	prevHandle, prevSlot := headLink.Next, headLink.Slot
	for !q.isTail(prevHandle, prevSlot) {
		prev := p.Get(prevHandle)
		next := prev.links[prevSlot]
		if next.Next == h {
			target := p.Get(h)
			prev.links[prevSlot] = target.links[next.Slot]
			target.links[next.Slot] = Link{}
			target.queues--
			if q.isTail(h, next.Slot) {
				q.Tail, q.Slot = prevHandle, prevSlot
			}
			return h
		}
		prevHandle, prevSlot = next.Next, next.Slot
	}
	return None
}

// Head returns the head of the queue without removing it
func (p *Pool) Head(q *Queue) Handle {
	if q.Empty() {
		return None
	}
	return p.Get(q.Tail).links[q.Slot].Next
}

// Walk calls fn for every member from head to tail; returning false stops the walk
func (p *Pool) Walk(q *Queue, fn func(h Handle) bool) {
	if q.Empty() {
		return
	}
	link := p.Get(q.Tail).links[q.Slot]
	for {
		if !fn(link.Next) {
			return
		}
		if q.isTail(link.Next, link.Slot) {
			return
		}
		link = p.Get(link.Next).links[link.Slot]
	}
}

// Members returns the queue members from head to tail
func (p *Pool) Members(q *Queue) []Handle {
	var ret []Handle
	p.Walk(q, func(h Handle) bool {
		ret = append(ret, h)
		return true
	})
	return ret
}

// Len returns the number of queue members
func (p *Pool) Len(q *Queue) int {
	count := 0
	p.Walk(q, func(Handle) bool {
		count++
		return true
	})
	return count
}

// Contains reports whether h is a member of the queue
func (p *Pool) Contains(q *Queue, h Handle) bool {
	found := false
	p.Walk(q, func(candidate Handle) bool {
		found = candidate == h
		return !found
	})
	return found
}
