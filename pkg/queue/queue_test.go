package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	q := New()

	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Size())
}

func TestTaskQueue_TakeEmpty(t *testing.T) {
	q := New()

	task, ok := q.Take()
	assert.False(t, ok)
	assert.Nil(t, task)
}

func TestTaskQueue_FIFOOrder(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"single", 1},
		{"few", 5},
		{"crosses compaction threshold", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New()
			var order []int

			for i := 0; i < tt.count; i++ {
				i := i
				q.Add(func() { order = append(order, i) })
			}
			assert.Equal(t, tt.count, q.Size())

			for i := 0; i < tt.count; i++ {
				task, ok := q.Take()
				require.True(t, ok)
				task()
			}

			require.Len(t, order, tt.count)
			for i, v := range order {
				assert.Equal(t, i, v)
			}
			assert.True(t, q.Empty())
		})
	}
}

func TestTaskQueue_InterleavedAddTake(t *testing.T) {
	q := New()
	var order []int
	next := 0

	add := func() {
		v := next
		next++
		q.Add(func() { order = append(order, v) })
	}

	// keep the queue short while pushing far past the initial capacity
	for round := 0; round < 200; round++ {
		add()
		add()
		task, ok := q.Take()
		require.True(t, ok)
		task()
	}
	for !q.Empty() {
		task, _ := q.Take()
		task()
	}

	require.Len(t, order, next)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestTaskQueue_NoDuplicateSuppression(t *testing.T) {
	q := New()
	calls := 0
	task := func() { calls++ }

	q.Add(task)
	q.Add(task)
	assert.Equal(t, 2, q.Size())

	for !q.Empty() {
		fn, _ := q.Take()
		fn()
	}
	assert.Equal(t, 2, calls)
}

func TestTaskQueue_NilTask(t *testing.T) {
	q := New()
	q.Add(nil)

	task, ok := q.Take()
	assert.True(t, ok)
	assert.Nil(t, task)
	assert.True(t, q.Empty())
}

func TestTaskQueue_Clear(t *testing.T) {
	q := New()
	for i := 0; i < 10; i++ {
		q.Add(func() {})
	}

	assert.Equal(t, 10, q.Clear())
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Clear())

	q.Add(func() {})
	assert.Equal(t, 1, q.Size())
}

func BenchmarkTaskQueue_AddTake(b *testing.B) {
	q := New()
	task := func() {}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Add(task)
		q.Take()
	}
}
