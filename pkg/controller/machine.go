package controller

import (
	"github.com/anggasct/roadlight/pkg/session"
	"github.com/anggasct/roadlight/pkg/traffic"
)

// Definition builds the operator session machine. Road changes are self
// transitions on the menu whose actions mutate the junction; the road name
// travels as event data.
func (c *Controller) Definition() (*session.Definition, error) {
	return session.NewMachine().
		State(session.NotStarted).Initial().
		To(session.Menu).On(session.EventInitialize).
		State(session.Menu).
		ToSelf().On(session.EventAddRoad).Do(c.addRoad).
		ToSelf().On(session.EventDeleteRoad).Do(c.deleteRoad).
		To(session.SystemView).On(session.EventOpenSystem).Do(c.clearScreen).
		To(session.Quit).On(session.EventQuit).
		State(session.SystemView).
		To(session.Menu).On(session.EventContinue).Do(c.clearScreen).
		State(session.Quit).Final().OnEntry(c.sayBye).
		Build()
}

func (c *Controller) addRoad(event session.Event) error {
	name, _ := event.GetData().(string)
	if err := c.junction.AddRoad(name); err != nil {
		if traffic.IsQueueFullError(err) {
			c.display.Message("Queue is full")
			return nil
		}
		return err
	}
	c.display.Message("%s Added!", name)
	return nil
}

func (c *Controller) deleteRoad(event session.Event) error {
	name, err := c.junction.DeleteRoad()
	if err != nil {
		if traffic.IsQueueEmptyError(err) {
			c.display.Message("Queue is empty")
			return nil
		}
		return err
	}
	c.display.Message("%s deleted!", name)
	return nil
}

func (c *Controller) clearScreen(session.Event) error {
	c.display.Clear()
	return nil
}

func (c *Controller) sayBye(session.Event) error {
	c.display.Message("Bye")
	return nil
}
