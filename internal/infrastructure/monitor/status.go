package monitor

import "time"

// Status is a snapshot of the backing store's health.
type Status struct {
	Driver    string    `json:"driver"`
	Store     bool      `json:"store"`
	LastCheck time.Time `json:"last_check"`
}
