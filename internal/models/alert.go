package models

import "time"

// AlertReport is a single alert event, either received from a tablet or
// synthesized by the health monitor. Resolved starts false and is only
// cleared by an operator action outside this core.
type AlertReport struct {
	TabletID  string    `json:"tablet_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Resolved  bool      `json:"resolved"`
}
