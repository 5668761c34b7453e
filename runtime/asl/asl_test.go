package asl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nucleus/runtime/proc"
)

func newList(t *testing.T, processes, descriptors int) (*proc.Pool, *List) {
	pool := proc.NewPool(processes)
	for pool.Available() > 0 {
		_, err := pool.Alloc()
		require.NoError(t, err)
	}
	return pool, New(pool, descriptors)
}

func TestList_Insert(t *testing.T) {
	testCases := []struct {
		description string
		blocks      [][2]int
		expectAddrs []int
		expectFull  bool
	}{
		{
			description: "sorted by address",
			blocks:      [][2]int{{40, 1}, {10, 2}, {30, 3}, {20, 4}},
			expectAddrs: []int{10, 20, 30, 40},
		},
		{
			description: "shared descriptor",
			blocks:      [][2]int{{40, 1}, {40, 2}, {40, 3}},
			expectAddrs: []int{40},
		},
		{
			description: "descriptor pool exhausted",
			blocks:      [][2]int{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}},
			expectAddrs: []int{1, 2, 3, 4},
			expectFull:  true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			pool, list := newList(t, 5, 4)
			full := false
			for _, block := range testCase.blocks {
				if list.Insert(block[0], proc.Handle(block[1])) {
					full = true
					assert.False(t, pool.Get(proc.Handle(block[1])).Blocked())
				}
			}
			assert.Equal(t, testCase.expectFull, full)
			assert.Equal(t, testCase.expectAddrs, list.Addresses())
			assert.Equal(t, len(testCase.expectAddrs), list.Len())
		})
	}
}

func TestList_Lifecycle(t *testing.T) {
	pool, list := newList(t, 4, 2)
	assert.False(t, list.Active())

	assert.False(t, list.Insert(100, 1))
	assert.False(t, list.Insert(100, 2))
	assert.False(t, list.Insert(200, 3))
	assert.True(t, list.Active())
	assert.Equal(t, proc.Handle(1), list.Head(100))
	assert.Equal(t, []int{100}, pool.Get(1).BlockedOn())
	assert.Equal(t, 0, list.Available())

	assert.Equal(t, proc.Handle(1), list.Remove(100))
	assert.False(t, pool.Get(1).Blocked())
	assert.Equal(t, []int{100, 200}, list.Addresses())

	assert.Equal(t, proc.Handle(2), list.Remove(100))
	assert.Equal(t, []int{200}, list.Addresses())
	assert.Equal(t, proc.None, list.Head(100))
	assert.Equal(t, proc.None, list.Remove(100))
	assert.Equal(t, 1, list.Available())

	// recycled descriptor must not carry the old address or queue
	assert.False(t, list.Insert(50, 4))
	assert.Equal(t, []int{50, 200}, list.Addresses())
	assert.Equal(t, []proc.Handle{4}, list.Waiters(50))
	assert.Nil(t, list.Waiters(100))

	assert.Equal(t, proc.Handle(3), list.Remove(200))
	assert.Equal(t, proc.Handle(4), list.Remove(50))
	assert.False(t, list.Active())
	assert.Equal(t, 0, pool.Get(4).Queues())
}

func TestList_Out(t *testing.T) {
	pool, list := newList(t, 3, 3)
	list.Insert(7, 1)
	list.Insert(7, 2)
	list.Insert(9, 3)

	assert.Equal(t, proc.Handle(2), list.Out(2))
	assert.Equal(t, []proc.Handle{1}, list.Waiters(7))
	assert.False(t, pool.Get(2).Blocked())

	assert.Equal(t, proc.None, list.Out(2))
	assert.Equal(t, proc.Handle(3), list.Out(3))
	assert.Equal(t, []int{7}, list.Addresses())
	assert.Equal(t, 2, list.Available())
}
