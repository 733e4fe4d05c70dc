package mailbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(m *Mailbox[int]) []int {
	var out []int
	for {
		v, ok := m.TryNext()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestFIFOOrder(t *testing.T) {
	m := New[int]()
	for i := 1; i <= 3; i++ {
		require.NoError(t, m.Post(i))
	}
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []int{1, 2, 3}, drain(m))
}

func TestPostFrontJumpsQueue(t *testing.T) {
	m := New[int]()
	require.NoError(t, m.Post(1))
	require.NoError(t, m.Post(2))
	require.NoError(t, m.PostFront(99))

	assert.Equal(t, []int{99, 1, 2}, drain(m))
}

func TestPostFrontAllKeepsRelativeOrder(t *testing.T) {
	m := New[int]()
	require.NoError(t, m.Post(10))
	require.NoError(t, m.PostFrontAll([]int{1, 2, 3}))
	require.NoError(t, m.PostFrontAll(nil))

	assert.Equal(t, []int{1, 2, 3, 10}, drain(m))
}

func TestNextBlocksUntilPost(t *testing.T) {
	m := New[int]()
	got := make(chan int, 1)

	go func() {
		v, err := m.Next(context.Background())
		if err == nil {
			got <- v
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, m.Post(7))

	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("consumer was not woken")
	}
}

func TestNextHonoursContext(t *testing.T) {
	m := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Next(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestCloseDeliversQueuedThenFails(t *testing.T) {
	m := New[int]()
	require.NoError(t, m.Post(1))
	m.Close()
	m.Close()

	assert.ErrorIs(t, m.Post(2), ErrClosed)
	assert.ErrorIs(t, m.PostFront(2), ErrClosed)

	v, err := m.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = m.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConcurrentProducers(t *testing.T) {
	m := New[int]()
	const producers, each = 8, 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				_ = m.Post(base*each + i)
			}
		}(p)
	}
	wg.Wait()

	got := drain(m)
	require.Len(t, got, producers*each)

	// Each producer's items stay in the order it posted them.
	last := make(map[int]int)
	for _, v := range got {
		p := v / each
		if prev, ok := last[p]; ok {
			assert.Less(t, prev, v)
		}
		last[p] = v
	}
}
