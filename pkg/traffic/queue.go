// Package traffic holds the road queue, the road clock and the guarded
// junction state shared by the operator loop and the timer engine.
package traffic

// noRoad marks the open pointer of an empty queue
const noRoad = -1

// preallocRoads bounds the initial backing array; capacity is operator input
const preallocRoads = 16

// Queue is a bounded, insertion-ordered collection of roads with a single
// open road. Queue is not safe for concurrent use; Junction guards it.
type Queue struct {
	capacity int
	roads    []string
	open     int
}

// NewQueue creates an empty queue holding at most capacity roads
func NewQueue(capacity int) (*Queue, error) {
	if capacity <= 0 {
		return nil, NewInvalidCapacityError(capacity)
	}
	return &Queue{
		capacity: capacity,
		roads:    make([]string, 0, min(capacity, preallocRoads)),
		open:     noRoad,
	}, nil
}

// Capacity returns the maximum number of roads
func (q *Queue) Capacity() int {
	return q.capacity
}

// Len returns the number of roads in the queue
func (q *Queue) Len() int {
	return len(q.roads)
}

// IsEmpty reports whether the queue holds no roads
func (q *Queue) IsEmpty() bool {
	return len(q.roads) == 0
}

// IsFull reports whether the queue is at capacity
func (q *Queue) IsFull() bool {
	return len(q.roads) >= q.capacity
}

// Roads returns a copy of the roads in rotation order
func (q *Queue) Roads() []string {
	result := make([]string, len(q.roads))
	copy(result, q.roads)
	return result
}

// OpenIndex returns the index of the open road, or false if the queue is empty
func (q *Queue) OpenIndex() (int, bool) {
	if q.open == noRoad {
		return 0, false
	}
	return q.open, true
}

// OpenRoad returns the name of the open road, or false if the queue is empty
func (q *Queue) OpenRoad() (string, bool) {
	if q.open == noRoad {
		return "", false
	}
	return q.roads[q.open], true
}

// Add appends a road. The first road added to an empty queue becomes open.
func (q *Queue) Add(name string) error {
	if q.IsFull() {
		return NewQueueFullError(q.capacity)
	}

	q.roads = append(q.roads, name)
	if len(q.roads) == 1 {
		q.open = 0
	}
	return nil
}

// Delete removes the oldest road. When the removed road was open, the road
// that now occupies its index opens immediately.
func (q *Queue) Delete() (string, error) {
	if q.IsEmpty() {
		return "", NewQueueEmptyError()
	}

	removed := q.roads[0]
	q.roads = q.roads[1:]

	switch {
	case len(q.roads) == 0:
		q.open = noRoad
	case q.open > 0:
		// the open road shifted one position towards the front
		q.open--
	}
	return removed, nil
}

// RotateIfDue advances the open road by one position when exactly one
// second remains on the current interval. It reports whether it rotated.
func (q *Queue) RotateIfDue(remaining int) bool {
	if remaining != 1 || q.IsEmpty() {
		return false
	}
	q.open = (q.open + 1) % len(q.roads)
	return true
}

// ClosedTimeFor returns the number of seconds until the road at index opens.
// It returns false for the open road, an empty queue or an index out of range.
func (q *Queue) ClosedTimeFor(index, interval, remaining int) (int, bool) {
	if q.open == noRoad || index < 0 || index >= len(q.roads) || index == q.open {
		return 0, false
	}
	n := len(q.roads)
	factor := ((index-q.open-1)%n + n) % n
	return factor*interval + remaining, true
}
