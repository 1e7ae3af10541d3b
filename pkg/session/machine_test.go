package session

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMachine_Start(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)
	observer := NewTestObserver()
	machine.AddObserver(observer)

	if err := machine.Start(); err != nil {
		t.Fatalf("Expected no error starting machine, got: %v", err)
	}

	AssertState(t, machine, NotStarted)
	if len(observer.StateEnters) != 1 || observer.StateEnters[0] != NotStarted {
		t.Errorf("Expected entry into not_started, got %v", observer.StateEnters)
	}
}

func TestMachine_StartAlreadyStarted(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)

	_ = machine.Start()
	err := machine.Start()

	if err == nil {
		t.Error("Expected error when starting already started machine")
	}
	if GetErrorCode(err) != ErrCodeInvalidState {
		t.Errorf("Expected invalid state code, got %v", GetErrorCode(err))
	}
}

func TestMachine_EventBeforeStart(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)

	result := machine.HandleEvent(EventInitialize, nil)

	AssertEventProcessed(t, result, false)
	if GetErrorCode(result.Error) != ErrCodeMachineNotStarted {
		t.Errorf("Expected not started error, got %v", result.Error)
	}
	AssertState(t, machine, NotStarted)
}

func TestMachine_FullSessionLifecycle(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)
	observer := NewTestObserver()
	machine.AddObserver(observer)
	_ = machine.Start()

	steps := []struct {
		event string
		from  State
		to    State
	}{
		{EventInitialize, NotStarted, Menu},
		{EventOpenSystem, Menu, SystemView},
		{EventContinue, SystemView, Menu},
		{EventQuit, Menu, Quit},
	}

	for _, step := range steps {
		result := machine.HandleEvent(step.event, nil)
		AssertEventProcessed(t, result, true)
		AssertStateChanged(t, result, step.from, step.to)
	}

	AssertState(t, machine, Quit)
	select {
	case <-machine.Done():
	default:
		t.Error("Expected Done to be closed after entering the final state")
	}
	if observer.TransitionCount() != len(steps) {
		t.Errorf("Expected %d transitions, got %d", len(steps), observer.TransitionCount())
	}
}

func TestMachine_NoQuitFromSystemView(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)
	observer := NewTestObserver()
	machine.AddObserver(observer)
	_ = machine.Start()
	machine.HandleEvent(EventInitialize, nil)
	machine.HandleEvent(EventOpenSystem, nil)

	result := machine.HandleEvent(EventQuit, nil)

	AssertEventProcessed(t, result, false)
	AssertState(t, machine, SystemView)
	if !IsTransitionError(result.Error) {
		t.Errorf("Expected transition error, got %v", result.Error)
	}
	if GetErrorCode(result.Error) != ErrCodeTransitionNotAllowed {
		t.Errorf("Expected transition not allowed code, got %v", GetErrorCode(result.Error))
	}
	if len(observer.EventRejects) != 1 {
		t.Error("Expected event rejection notification")
	}
}

func TestMachine_SelfTransitionActionFailure(t *testing.T) {
	machine, roads := createSessionMachine(t, 1)
	_ = machine.Start()
	machine.HandleEvent(EventInitialize, nil)

	first := machine.HandleEvent(EventAddRoad, "A")
	AssertEventProcessed(t, first, true)
	if first.StateChanged {
		t.Error("Expected self transition to keep the state")
	}

	second := machine.HandleEvent(EventAddRoad, "B")
	AssertEventProcessed(t, second, false)
	if !IsActionError(second.Error) {
		t.Fatalf("Expected action error, got %v", second.Error)
	}
	if errors.Unwrap(second.Error) == nil {
		t.Error("Expected action error to wrap the original error")
	}

	AssertState(t, machine, Menu)
	if *roads != 1 {
		t.Errorf("Expected 1 road, got %d", *roads)
	}
}

func TestMachine_EmptyEventName(t *testing.T) {
	machine, _ := createSessionMachine(t, 1)
	_ = machine.Start()

	result := machine.HandleEvent("  ", nil)

	AssertEventProcessed(t, result, false)
	if result.Error == nil {
		t.Error("Expected error for empty event name")
	}
}

func TestMachine_EntryActions(t *testing.T) {
	entered := 0
	def, err := NewMachine().
		State("a").Initial().
		To("b").On("go").
		State("b").OnEntry(func(Event) error {
		entered++
		return nil
	}).
		Build()
	if err != nil {
		t.Fatalf("Expected no build error, got %v", err)
	}
	machine := def.CreateInstance()
	_ = machine.Start()

	result := machine.HandleEvent("stay", nil)
	AssertEventProcessed(t, result, false)
	if GetErrorCode(result.Error) != ErrCodeTransitionNotAllowed {
		t.Errorf("Expected no transition, got %v", result.Error)
	}

	result = machine.HandleEvent("go", nil)
	AssertEventProcessed(t, result, true)
	AssertState(t, machine, "b")
	if entered != 1 {
		t.Errorf("Expected entry action once, got %d", entered)
	}
}

func TestMachine_IfInState(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)
	_ = machine.Start()
	machine.HandleEvent(EventInitialize, nil)

	ran := false
	if machine.IfInState(SystemView, func() { ran = true }) || ran {
		t.Error("Expected fn not to run outside the state")
	}
	if !machine.IfInState(Menu, func() { ran = true }) || !ran {
		t.Error("Expected fn to run in the state")
	}
}

func TestMachine_IfInStateBlocksTransitions(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)
	_ = machine.Start()
	machine.HandleEvent(EventInitialize, nil)
	machine.HandleEvent(EventOpenSystem, nil)

	var mutex sync.Mutex
	var order []string
	record := func(entry string) {
		mutex.Lock()
		defer mutex.Unlock()
		order = append(order, entry)
	}

	continued := make(chan struct{})
	machine.IfInState(SystemView, func() {
		go func() {
			machine.HandleEvent(EventContinue, nil)
			record("continue")
			close(continued)
		}()
		time.Sleep(20 * time.Millisecond)
		record("fn")
	})
	<-continued

	if len(order) != 2 || order[0] != "fn" || order[1] != "continue" {
		t.Errorf("Expected fn to finish before continue, got %v", order)
	}
	AssertState(t, machine, Menu)
}

func TestMachine_ActionPanicRecovered(t *testing.T) {
	def, _ := NewMachine().
		State("a").Initial().
		To("b").On("go").Do(func(Event) error { panic("boom") }).
		State("b").
		Build()
	machine := def.CreateInstance()
	_ = machine.Start()

	result := machine.HandleEvent("go", nil)

	AssertEventProcessed(t, result, false)
	AssertState(t, machine, "a")
}

func TestMachine_ConcurrentReaders(t *testing.T) {
	machine, _ := createSessionMachine(t, 100)
	_ = machine.Start()
	machine.HandleEvent(EventInitialize, nil)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					state := machine.CurrentState()
					if state != Menu && state != SystemView {
						t.Errorf("Unexpected state %s", state)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		machine.HandleEvent(EventOpenSystem, nil)
		machine.HandleEvent(EventContinue, nil)
	}
	close(stop)
	wg.Wait()
	AssertState(t, machine, Menu)
}

func TestMachine_RemoveObserver(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)
	kept := NewTestObserver()
	removed := NewTestObserver()
	machine.AddObserver(kept)
	machine.AddObserver(removed)
	_ = machine.Start()

	machine.RemoveObserver(removed)
	machine.HandleEvent(EventInitialize, nil)

	if kept.TransitionCount() != 1 {
		t.Errorf("Expected 1 transition on kept observer, got %d", kept.TransitionCount())
	}
	if removed.TransitionCount() != 0 {
		t.Errorf("Expected no transitions on removed observer, got %d", removed.TransitionCount())
	}
}

func TestMachine_DoneClosesOnQuit(t *testing.T) {
	machine, _ := createSessionMachine(t, 2)
	_ = machine.Start()

	select {
	case <-machine.Done():
		t.Fatal("Expected Done to stay open before quit")
	default:
	}

	machine.HandleEvent(EventInitialize, nil)
	machine.HandleEvent(EventQuit, nil)

	select {
	case <-machine.Done():
	default:
		t.Error("Expected Done to be closed after quit")
	}
}
