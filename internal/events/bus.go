package events

import (
	"sync"
	"time"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTradeCreated EventType = "TRADE_CREATED"
	EventTradeUpdated EventType = "TRADE_UPDATED"
	EventTradeDeleted EventType = "TRADE_DELETED"
	EventPlanUpdated  EventType = "PLAN_UPDATED"
	EventPlanDeleted  EventType = "PLAN_DELETED"
	EventStateChanged EventType = "STATE_CHANGED"
	EventError        EventType = "ERROR"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	UserID    string                 `json:"user_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Subscriber is a function that handles events
type Subscriber func(Event)

// EventBus manages event publishing and subscriptions
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Subscriber
	allSubs     []Subscriber // Subscribers to all events
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType][]Subscriber),
		allSubs:     make([]Subscriber, 0),
	}
}

// Subscribe registers a subscriber for a specific event type
func (eb *EventBus) Subscribe(eventType EventType, subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscriber)
}

// SubscribeAll registers a subscriber for all events
func (eb *EventBus) SubscribeAll(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.allSubs = append(eb.allSubs, subscriber)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if subs, ok := eb.subscribers[event.Type]; ok {
		for _, sub := range subs {
			go sub(event) // Run in goroutine to avoid blocking
		}
	}

	for _, sub := range eb.allSubs {
		go sub(event)
	}
}

// PublishTradeEvent publishes a trade lifecycle event for a user
func (eb *EventBus) PublishTradeEvent(eventType EventType, userID, tradeID string, profitLoss float64, session string) {
	eb.Publish(Event{
		Type:   eventType,
		UserID: userID,
		Data: map[string]interface{}{
			"trade_id":    tradeID,
			"profit_loss": profitLoss,
			"session":     session,
		},
	})
}

// PublishPlanEvent publishes a trading plan change event for a user
func (eb *EventBus) PublishPlanEvent(eventType EventType, userID string) {
	eb.Publish(Event{
		Type:   eventType,
		UserID: userID,
		Data:   map[string]interface{}{},
	})
}

// PublishStateChanged publishes a psychological state transition for a user
func (eb *EventBus) PublishStateChanged(userID, state string, confidence float64) {
	eb.Publish(Event{
		Type:   EventStateChanged,
		UserID: userID,
		Data: map[string]interface{}{
			"state":      state,
			"confidence": confidence,
		},
	})
}

// PublishError publishes an error event
func (eb *EventBus) PublishError(source, message string, err error) {
	data := map[string]interface{}{
		"source":  source,
		"message": message,
	}
	if err != nil {
		data["error"] = err.Error()
	}
	eb.Publish(Event{
		Type: EventError,
		Data: data,
	})
}
