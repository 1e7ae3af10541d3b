package traffic

// Observer receives notifications about junction activity.
// Observers are called while the junction lock is held and must not call
// back into the junction.
type Observer interface {
	// OnRoadAdded is called after a road joined the queue
	OnRoadAdded(name string, queueLen int)

	// OnRoadDeleted is called after the front road left the queue
	OnRoadDeleted(name string, queueLen int)

	// OnRotation is called when the open road changes on interval expiry
	OnRotation(from string, to string)

	// OnTick is called after the road clock advanced one second
	OnTick(elapsed int)

	// OnQueueError is called when an add or delete was rejected
	OnQueueError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnRoadAdded implements Observer
func (o *BaseObserver) OnRoadAdded(name string, queueLen int) {}

// OnRoadDeleted implements Observer
func (o *BaseObserver) OnRoadDeleted(name string, queueLen int) {}

// OnRotation implements Observer
func (o *BaseObserver) OnRotation(from string, to string) {}

// OnTick implements Observer
func (o *BaseObserver) OnTick(elapsed int) {}

// OnQueueError implements Observer
func (o *BaseObserver) OnQueueError(err error) {}
