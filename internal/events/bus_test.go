package events

import (
	"sync"
	"testing"
	"time"
)

// TestSubscribeReceivesMatchingEvents verifies typed subscriptions
func TestSubscribeReceivesMatchingEvents(t *testing.T) {
	bus := NewEventBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTradeCreated, func(e Event) {
		received <- e
	})

	bus.PublishTradeEvent(EventTradeCreated, "user-1", "trade-1", 100, "NY")

	select {
	case e := <-received:
		if e.UserID != "user-1" {
			t.Errorf("Expected user-1, got %s", e.UserID)
		}
		if e.Data["trade_id"] != "trade-1" {
			t.Errorf("Expected trade-1, got %v", e.Data["trade_id"])
		}
		if e.Timestamp.IsZero() {
			t.Error("Expected timestamp to be set")
		}
	case <-time.After(time.Second):
		t.Fatal("Subscriber did not receive the event")
	}
}

// TestSubscribeIgnoresOtherTypes verifies type filtering
func TestSubscribeIgnoresOtherTypes(t *testing.T) {
	bus := NewEventBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTradeDeleted, func(e Event) {
		received <- e
	})

	bus.PublishTradeEvent(EventTradeCreated, "user-1", "trade-1", 100, "NY")

	select {
	case <-received:
		t.Fatal("Subscriber received an event of the wrong type")
	case <-time.After(50 * time.Millisecond):
	}
}

// TestSubscribeAllReceivesEverything verifies the catch-all subscription
func TestSubscribeAllReceivesEverything(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	var types []EventType
	done := make(chan struct{}, 3)

	bus.SubscribeAll(func(e Event) {
		mu.Lock()
		types = append(types, e.Type)
		mu.Unlock()
		done <- struct{}{}
	})

	bus.PublishTradeEvent(EventTradeCreated, "user-1", "trade-1", 100, "NY")
	bus.PublishPlanEvent(EventPlanUpdated, "user-1")
	bus.PublishStateChanged("user-1", "CONFIDENT", 85)

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Catch-all subscriber missed events")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(types) != 3 {
		t.Errorf("Expected 3 events, got %d", len(types))
	}
}
