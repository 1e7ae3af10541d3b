package traffic

import "sync"

// TimerState is the road clock. RoadTime is never reset on rotation; the
// remaining open time is derived from it modulo Interval.
type TimerState struct {
	Elapsed  int
	RoadTime int
	Interval int
}

// Remaining returns the seconds left for the open road
func (t TimerState) Remaining() int {
	return t.Interval - t.RoadTime%t.Interval
}

// RoadStatus describes one road in a snapshot
type RoadStatus struct {
	Name    string
	Open    bool
	Seconds int
}

// Snapshot is a read-only view of the junction
type Snapshot struct {
	Elapsed   int
	Capacity  int
	Interval  int
	Remaining int
	Roads     []RoadStatus
}

// OpenRoad returns the open road of the snapshot, if any
func (s Snapshot) OpenRoad() (RoadStatus, bool) {
	for _, road := range s.Roads {
		if road.Open {
			return road, true
		}
	}
	return RoadStatus{}, false
}

// Option configures a Junction
type Option func(*Junction)

// WithObserver attaches an observer to the junction
func WithObserver(observer Observer) Option {
	return func(j *Junction) {
		j.observers = append(j.observers, observer)
	}
}

// Junction is the state shared by the operator and the timer engine. Every
// queue mutation and clock change happens under a single lock.
type Junction struct {
	mutex     sync.Mutex
	queue     *Queue
	timer     TimerState
	observers []Observer
}

// NewJunction creates a junction for capacity roads that stay open for
// interval seconds each
func NewJunction(capacity, interval int, opts ...Option) (*Junction, error) {
	if interval <= 0 {
		return nil, NewInvalidIntervalError(interval)
	}
	queue, err := NewQueue(capacity)
	if err != nil {
		return nil, err
	}

	j := &Junction{
		queue: queue,
		timer: TimerState{Interval: interval},
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// AddObserver attaches an observer after construction
func (j *Junction) AddObserver(observer Observer) {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	j.observers = append(j.observers, observer)
}

// AddRoad appends a road. Adding to an empty queue restarts the road clock.
func (j *Junction) AddRoad(name string) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	wasEmpty := j.queue.IsEmpty()
	if err := j.queue.Add(name); err != nil {
		j.notifyQueueError(err)
		return err
	}
	if wasEmpty {
		j.timer.RoadTime = 0
	}

	for _, o := range j.observers {
		o.OnRoadAdded(name, j.queue.Len())
	}
	return nil
}

// DeleteRoad removes the oldest road and returns its name
func (j *Junction) DeleteRoad() (string, error) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	name, err := j.queue.Delete()
	if err != nil {
		j.notifyQueueError(err)
		return "", err
	}

	for _, o := range j.observers {
		o.OnRoadDeleted(name, j.queue.Len())
	}
	return name, nil
}

// Tick runs one second of the road clock: it captures the snapshot for the
// current second, rotates the open road if its interval is due and advances
// the counters. The returned snapshot precedes the rotation.
func (j *Junction) Tick() Snapshot {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	// recomputed on every tick, including ticks the menu does not render
	remaining := j.timer.Remaining()
	snapshot := j.snapshotLocked(remaining)

	from, _ := j.queue.OpenRoad()
	if j.queue.RotateIfDue(remaining) {
		to, _ := j.queue.OpenRoad()
		for _, o := range j.observers {
			o.OnRotation(from, to)
		}
	}

	j.timer.Elapsed++
	j.timer.RoadTime++

	for _, o := range j.observers {
		o.OnTick(j.timer.Elapsed)
	}
	return snapshot
}

// Snapshot returns the current view without advancing the clock
func (j *Junction) Snapshot() Snapshot {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.snapshotLocked(j.timer.Remaining())
}

// Timer returns a copy of the road clock
func (j *Junction) Timer() TimerState {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.timer
}

func (j *Junction) snapshotLocked(remaining int) Snapshot {
	roads := j.queue.Roads()
	open, _ := j.queue.OpenIndex()

	statuses := make([]RoadStatus, len(roads))
	for i, name := range roads {
		if i == open {
			statuses[i] = RoadStatus{Name: name, Open: true, Seconds: remaining}
			continue
		}
		closed, _ := j.queue.ClosedTimeFor(i, j.timer.Interval, remaining)
		statuses[i] = RoadStatus{Name: name, Seconds: closed}
	}

	return Snapshot{
		Elapsed:   j.timer.Elapsed,
		Capacity:  j.queue.Capacity(),
		Interval:  j.timer.Interval,
		Remaining: remaining,
		Roads:     statuses,
	}
}

func (j *Junction) notifyQueueError(err error) {
	for _, o := range j.observers {
		o.OnQueueError(err)
	}
}
