package proc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocAll(t *testing.T, pool *Pool) []Handle {
	var ret []Handle
	for pool.Available() > 0 {
		h, err := pool.Alloc()
		require.NoError(t, err)
		ret = append(ret, h)
	}
	return ret
}

func TestPool_Queue(t *testing.T) {
	testCases := []struct {
		description string
		run         func(pool *Pool, q *Queue) Handle
		expectRet   Handle
		expect      []Handle
	}{
		{
			description: "fifo insert",
			run: func(pool *Pool, q *Queue) Handle {
				pool.Insert(q, 1)
				pool.Insert(q, 2)
				pool.Insert(q, 3)
				return pool.Head(q)
			},
			expectRet: 1,
			expect:    []Handle{1, 2, 3},
		},
		{
			description: "remove head",
			run: func(pool *Pool, q *Queue) Handle {
				pool.Insert(q, 1)
				pool.Insert(q, 2)
				return pool.Remove(q)
			},
			expectRet: 1,
			expect:    []Handle{2},
		},
		{
			description: "remove last member",
			run: func(pool *Pool, q *Queue) Handle {
				pool.Insert(q, 4)
				return pool.Remove(q)
			},
			expectRet: 4,
		},
		{
			description: "remove from empty",
			run: func(pool *Pool, q *Queue) Handle {
				return pool.Remove(q)
			},
			expectRet: None,
		},
		{
			description: "out from middle",
			run: func(pool *Pool, q *Queue) Handle {
				pool.Insert(q, 1)
				pool.Insert(q, 2)
				pool.Insert(q, 3)
				return pool.Out(q, 2)
			},
			expectRet: 2,
			expect:    []Handle{1, 3},
		},
		{
			description: "out tail",
			run: func(pool *Pool, q *Queue) Handle {
				pool.Insert(q, 1)
				pool.Insert(q, 2)
				pool.Insert(q, 3)
				pool.Out(q, 3)
				pool.Insert(q, 4)
				return q.Tail
			},
			expectRet: 4,
			expect:    []Handle{1, 2, 4},
		},
		{
			description: "out non member",
			run: func(pool *Pool, q *Queue) Handle {
				pool.Insert(q, 1)
				pool.Insert(q, 2)
				return pool.Out(q, 5)
			},
			expectRet: None,
			expect:    []Handle{1, 2},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			pool := NewPool(5)
			allocAll(t, pool)
			q := &Queue{}
			actual := testCase.run(pool, q)
			assert.Equal(t, testCase.expectRet, actual)
			assert.Equal(t, testCase.expect, pool.Members(q))
			assert.Equal(t, len(testCase.expect), pool.Len(q))
			assert.Equal(t, len(testCase.expect) == 0, q.Empty())
		})
	}
}

func TestPool_MultipleQueues(t *testing.T) {
	pool := NewPool(3)
	allocAll(t, pool)
	ready, blocked := &Queue{}, &Queue{}
	pool.Insert(ready, 1)
	pool.Insert(ready, 2)
	pool.Insert(blocked, 2)
	pool.Insert(blocked, 1)
	pool.Insert(blocked, 3)
	assert.Equal(t, 2, pool.Get(1).Queues())
	assert.Equal(t, 1, pool.Get(3).Queues())

	assert.Equal(t, Handle(1), pool.Remove(ready))
	assert.Equal(t, []Handle{2}, pool.Members(ready))
	assert.Equal(t, []Handle{2, 1, 3}, pool.Members(blocked))

	assert.Equal(t, Handle(2), pool.Out(blocked, 2))
	assert.Equal(t, []Handle{1, 3}, pool.Members(blocked))
	assert.Equal(t, []Handle{2}, pool.Members(ready))
	assert.True(t, pool.Contains(ready, 2))
	assert.False(t, pool.Contains(ready, 1))
	assert.Equal(t, 1, pool.Get(2).Queues())
	assert.Equal(t, 1, pool.Get(1).Queues())
}

func TestPool_Overflow(t *testing.T) {
	pool := NewPool(1)
	h, err := pool.Alloc()
	require.NoError(t, err)
	queues := make([]Queue, Links+1)
	for i := 0; i < Links; i++ {
		pool.Insert(&queues[i], h)
	}
	assert.Equal(t, Links, pool.Get(h).Queues())
	assert.PanicsWithError(t, (&OverflowError{Handle: h}).Error(), func() {
		pool.Insert(&queues[Links], h)
	})
}

func TestPool_RingIntegrity(t *testing.T) {
	const size = 12
	pool := NewPool(size)
	allocAll(t, pool)
	rnd := rand.New(rand.NewSource(7))
	q := &Queue{}
	var model []Handle
	member := map[Handle]bool{}
	for i := 0; i < 500; i++ {
		switch rnd.Intn(3) {
		case 0:
			h := Handle(rnd.Intn(size) + 1)
			if member[h] {
				continue
			}
			pool.Insert(q, h)
			model = append(model, h)
			member[h] = true
		case 1:
			removed := pool.Remove(q)
			if len(model) == 0 {
				assert.Equal(t, None, removed)
				continue
			}
			assert.Equal(t, model[0], removed)
			delete(member, model[0])
			model = model[1:]
		case 2:
			h := Handle(rnd.Intn(size) + 1)
			removed := pool.Out(q, h)
			if !member[h] {
				assert.Equal(t, None, removed)
				continue
			}
			assert.Equal(t, h, removed)
			delete(member, h)
			for j, candidate := range model {
				if candidate == h {
					model = append(model[:j:j], model[j+1:]...)
					break
				}
			}
		}
		require.Equal(t, len(model), pool.Len(q))
		if len(model) > 0 {
			require.Equal(t, model, pool.Members(q))
			require.Equal(t, model[len(model)-1], q.Tail)
		}
	}
}
