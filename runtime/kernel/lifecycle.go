package kernel

import (
	"fmt"

	"github.com/viant/nucleus/model/state"
	"github.com/viant/nucleus/progress"
	"github.com/viant/nucleus/runtime/proc"
)

// create allocates a child of parent seeded with initial and makes it ready
func (k *Kernel) create(parent proc.Handle, initial *state.State) (proc.Handle, error) {
	h, err := k.pool.Alloc()
	if err != nil {
		return proc.None, err
	}
	process := k.pool.Get(h)
	process.State = *initial
	k.pool.Adopt(parent, h)
	k.pool.Insert(&k.ready, h)
	k.progress.Update(progress.Delta{Created: 1})
	k.emit(EventCreated, h, "pid %d created", h)
	return h, nil
}

// terminate destroys h and its descendants, children first. A process killed
// while blocked gives its unit back to the semaphore it waited on.
func (k *Kernel) terminate(h proc.Handle, reason string) {
	subtree := k.pool.Subtree(h)
	k.pool.Orphan(h)
	for _, member := range subtree {
		process := k.pool.Get(member)
		k.pool.Out(&k.ready, member)
		blockedOn := append([]int(nil), process.BlockedOn()...)
		if k.asl.Out(member) != proc.None {
			for _, addr := range blockedOn {
				_, _ = k.memory.Add(addr, 1) // address validated when blocked
			}
		}
		if member == k.current {
			k.current = proc.None
		}
		if member == k.slice {
			k.slice = proc.None
		}
		why := reason
		if member != h {
			why = fmt.Sprintf("ancestor pid %d terminated", h)
		}
		k.progress.Update(progress.Delta{Terminated: 1})
		k.emit(EventTerminated, member, "pid %d terminated: %s", member, why)
		if err := k.pool.Free(member); err != nil {
			panic(err)
		}
	}
}
