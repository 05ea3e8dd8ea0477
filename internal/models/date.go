package models

import "time"

// TrackedDate is a calendar date on which a group meets.
type TrackedDate struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	// Date is the ISO calendar date (YYYY-MM-DD), unique within the group.
	Date string `json:"date"`

	// CreatedAt is when the date was added.
	CreatedAt time.Time `json:"createdAt"`
}
