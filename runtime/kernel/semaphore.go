package kernel

import (
	"fmt"

	"github.com/viant/nucleus/progress"
	"github.com/viant/nucleus/runtime/proc"
)

// Op is one semaphore operation of a semop vector
type Op struct {
	Delta int `json:"delta"`
	Addr  int `json:"addr"`
}

// readOps decodes count (delta, address) word pairs starting at addr
func (k *Kernel) readOps(count, addr int) ([]Op, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative semop count %d", ErrProtocol, count)
	}
	ops := make([]Op, count)
	for i := range ops {
		delta, err := k.memory.Load(addr + 2*i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
		}
		semAddr, err := k.memory.Load(addr + 2*i + 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
		}
		ops[i] = Op{Delta: delta, Addr: semAddr}
	}
	return ops, nil
}

// validate runs ops against a scratch copy of the semaphore values: every
// delta must be +1 or -1, every address a user word, at most one P may block.
func (k *Kernel) validate(ops []Op) error {
	scratch := map[int]int{}
	blocking := 0
	for _, op := range ops {
		if op.Delta != 1 && op.Delta != -1 {
			return fmt.Errorf("%w: delta %d", ErrProtocol, op.Delta)
		}
		if op.Addr < Reserved || !k.memory.Valid(op.Addr) {
			return fmt.Errorf("%w: semaphore address %d", ErrProtocol, op.Addr)
		}
		value, ok := scratch[op.Addr]
		if !ok {
			value, _ = k.memory.Load(op.Addr)
		}
		if op.Delta < 0 && value <= 0 {
			blocking++
		}
		scratch[op.Addr] = value + op.Delta
	}
	if blocking > 1 {
		return fmt.Errorf("%w: %d blocking P operations", ErrProtocol, blocking)
	}
	return nil
}

// semop applies ops atomically for h. Releases take effect in vector order;
// blocking the caller is deferred until every op was applied. A V on the
// address of the caller's pending P that finds no waiter cancels that P's block.
func (k *Kernel) semop(h proc.Handle, ops []Op) error {
	if err := k.validate(ops); err != nil {
		return err
	}
	process := k.pool.Get(h)
	process.State.Return(0)
	blockAddr := -1
	for _, op := range ops {
		old, _ := k.memory.Add(op.Addr, op.Delta) // address validated
		switch {
		case op.Delta > 0 && old < 0:
			if k.release(op.Addr) == proc.None && op.Addr == blockAddr {
				blockAddr = -1
			}
		case op.Delta < 0 && old <= 0:
			blockAddr = op.Addr
		}
	}
	if blockAddr != -1 && !k.block(h, blockAddr) {
		_, _ = k.memory.Add(blockAddr, 1) // address validated
		process.State.Return(-1)
	}
	return nil
}

// v increments the semaphore at addr and releases one waiter if it was negative
func (k *Kernel) v(addr int) proc.Handle {
	old, _ := k.memory.Add(addr, 1)
	if old < 0 {
		return k.release(addr)
	}
	return proc.None
}

// p decrements the semaphore at addr and blocks h if it was not positive. It
// returns false when h should block but no descriptor was free; the decrement
// is reverted in that case.
func (k *Kernel) p(h proc.Handle, addr int) bool {
	old, _ := k.memory.Add(addr, -1)
	if old > 0 {
		return true
	}
	if !k.block(h, addr) {
		_, _ = k.memory.Add(addr, 1) // address validated by the decrement
		return false
	}
	return true
}

// block moves h off the ready queue onto the semaphore queue of addr
func (k *Kernel) block(h proc.Handle, addr int) bool {
	if k.asl.Insert(addr, h) {
		k.logger.Printf("pid %d: no free semaphore descriptor for %d", h, addr)
		return false
	}
	k.pool.Out(&k.ready, h)
	if k.current == h {
		k.current = proc.None
	}
	k.progress.Update(progress.Delta{Blocks: 1})
	k.emit(EventBlocked, h, "pid %d blocked on %d", h, addr)
	return true
}

// release unblocks the first waiter of addr; it rejoins the ready queue once nothing else blocks it
func (k *Kernel) release(addr int) proc.Handle {
	h := k.asl.Remove(addr)
	if h == proc.None {
		return h
	}
	if !k.pool.Get(h).Blocked() {
		k.pool.Insert(&k.ready, h)
	}
	k.progress.Update(progress.Delta{Releases: 1})
	k.emit(EventReleased, h, "pid %d released from %d", h, addr)
	return h
}
