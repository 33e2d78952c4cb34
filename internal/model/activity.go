package model

import "time"

// Activity is one audit entry recorded by a caller after a successful mutation.
type Activity struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Author   string    `json:"author,omitempty"`
	Summary  string    `json:"summary"`
	Payload  any       `json:"payload,omitempty"`
}
