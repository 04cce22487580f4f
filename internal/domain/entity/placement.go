package entity

import (
	"errors"
	"time"
)

// PlacementOutcome is what happened to a created tab.
type PlacementOutcome string

const (
	PlacementMoved   PlacementOutcome = "moved"
	PlacementSkipped PlacementOutcome = "skipped"
	PlacementFailed  PlacementOutcome = "failed"
)

// ErrInvalidPlacement is returned when a journal entry fails validation.
var ErrInvalidPlacement = errors.New("invalid placement")

// Placement is one journal entry recorded after a created tab was evaluated.
type Placement struct {
	ID        int64
	TabID     TabID
	WindowID  WindowID
	FromIndex int
	// ToIndex is the requested target; -1 when the tab was skipped.
	ToIndex int
	Outcome PlacementOutcome
	Error   string
	URL     string
	At      time.Time
}

// Validate checks the entry before it is persisted.
func (p *Placement) Validate() error {
	switch p.Outcome {
	case PlacementMoved, PlacementSkipped, PlacementFailed:
	default:
		return ErrInvalidPlacement
	}
	if p.FromIndex < 0 || p.At.IsZero() {
		return ErrInvalidPlacement
	}
	return nil
}
