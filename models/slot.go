package models

import "time"

// Slot is a derived, bookable interval. It is recomputed per request and
// never persisted.
type Slot struct {
	StartUTC   time.Time `json:"startUtc"`
	EndUTC     time.Time `json:"endUtc"`
	LocalLabel string    `json:"localLabel"` // e.g. "9:00 AM - 9:30 AM", display only
}
