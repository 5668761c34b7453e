package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Alloc(t *testing.T) {
	pool := NewPool(3)
	assert.Equal(t, 3, pool.Available())
	handles := allocAll(t, pool)
	assert.Equal(t, []Handle{1, 2, 3}, handles)
	assert.Equal(t, 0, pool.Available())

	_, err := pool.Alloc()
	assert.ErrorIs(t, err, ErrOutOfProcesses)

	assert.NoError(t, pool.Free(2))
	assert.False(t, pool.InUse(2))
	assert.Error(t, pool.Free(2))
	assert.Equal(t, 1, pool.Available())

	h, err := pool.Alloc()
	require.NoError(t, err)
	assert.Equal(t, Handle(2), h)
	assert.True(t, pool.InUse(h))
	assert.Equal(t, 0, pool.Get(h).Queues())
}

func TestPool_Free(t *testing.T) {
	pool := NewPool(2)
	h, err := pool.Alloc()
	require.NoError(t, err)
	proc := pool.Get(h)
	proc.CPUTime = 10
	proc.AddBlocker(7)
	ready := &Queue{}
	pool.Insert(ready, h)
	assert.Error(t, pool.Free(h), "queued process cannot be freed")

	pool.Out(ready, h)
	require.NoError(t, pool.Free(h))
	assert.Equal(t, int64(0), proc.CPUTime)
	assert.False(t, proc.Blocked())
	assert.Equal(t, 1, proc.Queues(), "free pool membership")
	assert.Error(t, pool.Free(None))
}

func TestPool_Subtree(t *testing.T) {
	pool := NewPool(6)
	allocAll(t, pool)
	pool.Adopt(1, 2)
	pool.Adopt(1, 3)
	pool.Adopt(2, 4)
	pool.Adopt(4, 5)

	testCases := []struct {
		description string
		root        Handle
		expect      []Handle
	}{
		{description: "whole tree", root: 1, expect: []Handle{5, 4, 2, 3, 1}},
		{description: "inner node", root: 2, expect: []Handle{5, 4, 2}},
		{description: "leaf", root: 3, expect: []Handle{3}},
		{description: "invalid", root: None},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, pool.Subtree(testCase.root))
		})
	}

	pool.Orphan(2)
	assert.Equal(t, []Handle{3}, pool.Get(1).Children)
	assert.Equal(t, None, pool.Get(2).Parent)
}

func TestProcess_Blockers(t *testing.T) {
	proc := &Process{}
	assert.True(t, proc.AddBlocker(5))
	assert.True(t, proc.AddBlocker(9))
	assert.True(t, proc.Blocked())
	assert.True(t, proc.RemoveBlocker(5))
	assert.False(t, proc.RemoveBlocker(5))
	assert.Equal(t, []int{9}, proc.BlockedOn())
}
