package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTableBuilt  EventType = "table_built"
	EventSelect      EventType = "select"
	EventCombination EventType = "combination"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TableEvent is emitted once a transition table has been built.
type TableEvent struct {
	EventBase
	Draws           int  `json:"draws"`
	Skipped         int  `json:"skipped,omitempty"`
	DirectKeys      int  `json:"direct_keys"`
	PositionKeys    int  `json:"position_keys"`
	CombinationKeys int  `json:"combination_keys"`
	Empty           bool `json:"empty,omitempty"`
}

// SelectionEvent is emitted for every number appended during generation.
type SelectionEvent struct {
	EventBase
	Step     int     `json:"step"`
	Number   int     `json:"number"`
	Score    float64 `json:"score"`
	Fallback bool    `json:"fallback,omitempty"`
}

// CombinationEvent is emitted when a combination reaches its target size.
type CombinationEvent struct {
	EventBase
	Numbers   []int `json:"numbers"`
	Seed      []int `json:"seed"`
	Fallbacks int   `json:"fallbacks"`
}

// LifecycleHooks defines callbacks for model observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnTableBuilt  func(context.Context, *TableEvent)
	OnSelect      func(context.Context, *SelectionEvent)
	OnCombination func(context.Context, *CombinationEvent)
}

// NewEventBase stamps an event with the current time.
func NewEventBase(t EventType) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t}
}
