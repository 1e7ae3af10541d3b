package traffic

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilledQueue(t *testing.T, capacity int, roads ...string) *Queue {
	t.Helper()
	q, err := NewQueue(capacity)
	require.NoError(t, err)
	for _, road := range roads {
		require.NoError(t, q.Add(road))
	}
	return q
}

func TestNewQueue_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		q, err := NewQueue(capacity)
		assert.Nil(t, q)
		assert.Equal(t, ErrCodeInvalidCapacity, GetErrorCode(err), "capacity %d", capacity)
	}
}

func TestQueue_AddUntilFull(t *testing.T) {
	for capacity := 1; capacity <= 6; capacity++ {
		t.Run(fmt.Sprintf("capacity=%d", capacity), func(t *testing.T) {
			q := newFilledQueue(t, capacity)
			for i := 0; i < capacity; i++ {
				require.NoError(t, q.Add(fmt.Sprintf("road-%d", i)))
			}
			before := q.Roads()
			openBefore, _ := q.OpenIndex()

			err := q.Add("overflow")
			require.Error(t, err)
			assert.True(t, IsQueueFullError(err))
			assert.Equal(t, before, q.Roads())
			openAfter, _ := q.OpenIndex()
			assert.Equal(t, openBefore, openAfter)
		})
	}
}

func TestQueue_FullCapacityTwo(t *testing.T) {
	q := newFilledQueue(t, 2, "A", "B")

	err := q.Add("C")

	assert.True(t, IsQueueFullError(err))
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []string{"A", "B"}, q.Roads())
}

func TestQueue_FirstAddOpensRoad(t *testing.T) {
	q := newFilledQueue(t, 3)

	_, ok := q.OpenRoad()
	assert.False(t, ok)

	require.NoError(t, q.Add("A"))
	open, ok := q.OpenRoad()
	require.True(t, ok)
	assert.Equal(t, "A", open)

	require.NoError(t, q.Add("B"))
	open, _ = q.OpenRoad()
	assert.Equal(t, "A", open, "later adds must not move the open road")
}

func TestQueue_DeleteEmpty(t *testing.T) {
	q := newFilledQueue(t, 2)

	name, err := q.Delete()

	assert.Empty(t, name)
	assert.True(t, IsQueueEmptyError(err))
	assert.True(t, q.IsEmpty())
}

func TestQueue_DeleteOpenRoadOpensNext(t *testing.T) {
	q := newFilledQueue(t, 3, "A", "B", "C")

	name, err := q.Delete()

	require.NoError(t, err)
	assert.Equal(t, "A", name)
	assert.Equal(t, []string{"B", "C"}, q.Roads())
	open, ok := q.OpenRoad()
	require.True(t, ok)
	assert.Equal(t, "B", open)
}

func TestQueue_DeleteKeepsOpenRoadWhenNotFront(t *testing.T) {
	q := newFilledQueue(t, 3, "A", "B", "C")
	require.True(t, q.RotateIfDue(1))
	require.True(t, q.RotateIfDue(1))

	name, err := q.Delete()

	require.NoError(t, err)
	assert.Equal(t, "A", name)
	open, _ := q.OpenRoad()
	assert.Equal(t, "C", open)
	idx, _ := q.OpenIndex()
	assert.Equal(t, 1, idx)
}

func TestQueue_DeleteLastRoad(t *testing.T) {
	q := newFilledQueue(t, 1, "A")

	name, err := q.Delete()

	require.NoError(t, err)
	assert.Equal(t, "A", name)
	_, ok := q.OpenIndex()
	assert.False(t, ok)
	assert.True(t, q.IsEmpty())
}

func TestQueue_DeleteWithDuplicateNames(t *testing.T) {
	q := newFilledQueue(t, 3, "X", "X", "Y")
	require.True(t, q.RotateIfDue(1))

	_, err := q.Delete()

	require.NoError(t, err)
	idx, _ := q.OpenIndex()
	assert.Equal(t, 0, idx, "the second X stays open after the first X leaves")
}

func TestQueue_RotateIfDue(t *testing.T) {
	q := newFilledQueue(t, 3, "A", "B", "C")

	expected := []string{"B", "C", "A", "B"}
	for _, want := range expected {
		require.True(t, q.RotateIfDue(1))
		open, _ := q.OpenRoad()
		assert.Equal(t, want, open)
	}
}

func TestQueue_RotateIfDueIgnoresOtherValues(t *testing.T) {
	q := newFilledQueue(t, 4, "A", "B", "C", "D")
	require.True(t, q.RotateIfDue(1))

	for i := 0; i < 50; i++ {
		for _, remaining := range []int{0, 2, 3, 5, 60, -1} {
			assert.False(t, q.RotateIfDue(remaining))
		}
	}

	idx, _ := q.OpenIndex()
	assert.Equal(t, 1, idx)
}

func TestQueue_RotateIfDueEmpty(t *testing.T) {
	q := newFilledQueue(t, 2)

	assert.False(t, q.RotateIfDue(1))
	_, ok := q.OpenIndex()
	assert.False(t, ok)
}

func TestQueue_RotateSingleRoad(t *testing.T) {
	q := newFilledQueue(t, 1, "A")

	assert.True(t, q.RotateIfDue(1))
	open, _ := q.OpenRoad()
	assert.Equal(t, "A", open)
}

func TestQueue_ClosedTimeFor(t *testing.T) {
	const interval = 7
	for length := 2; length <= 5; length++ {
		roads := make([]string, length)
		for i := range roads {
			roads[i] = fmt.Sprintf("r%d", i)
		}
		q := newFilledQueue(t, length, roads...)

		for openIdx := 0; openIdx < length; openIdx++ {
			for remaining := 1; remaining <= interval; remaining++ {
				for k := 1; k < length; k++ {
					idx := (openIdx + k) % length
					got, ok := q.ClosedTimeFor(idx, interval, remaining)
					require.True(t, ok)
					assert.Equal(t, (k-1)*interval+remaining, got,
						"len=%d open=%d offset=%d remaining=%d", length, openIdx, k, remaining)
				}
			}
			q.RotateIfDue(1)
		}
	}
}

func TestQueue_ClosedTimeForOpenOrInvalid(t *testing.T) {
	q := newFilledQueue(t, 3, "A", "B")

	_, ok := q.ClosedTimeFor(0, 5, 3)
	assert.False(t, ok, "open road has no closed time")

	_, ok = q.ClosedTimeFor(2, 5, 3)
	assert.False(t, ok)

	_, ok = q.ClosedTimeFor(-1, 5, 3)
	assert.False(t, ok)

	empty := newFilledQueue(t, 1)
	_, ok = empty.ClosedTimeFor(0, 5, 3)
	assert.False(t, ok)
}

func TestGetErrorCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("adding road: %w", NewQueueFullError(2))

	assert.True(t, IsQueueFullError(err))
	assert.False(t, IsQueueEmptyError(err))
	assert.Equal(t, ErrCodeNone, GetErrorCode(fmt.Errorf("plain")))
	assert.Equal(t, "queue_full", ErrCodeQueueFull.String())
}

func TestQueue_HugeCapacity(t *testing.T) {
	q := newFilledQueue(t, math.MaxInt, "A")

	assert.False(t, q.IsFull())
	require.NoError(t, q.Add("B"))
	removed, err := q.Delete()
	require.NoError(t, err)
	assert.Equal(t, "A", removed)
	assert.Equal(t, []string{"B"}, q.Roads())
	assert.Equal(t, math.MaxInt, q.Capacity())
}
