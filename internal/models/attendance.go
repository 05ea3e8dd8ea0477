package models

import "time"

// AttendanceEntry is the presence of one person on one date.
//
// Name, Age, Phone and AddedAt are copied from the roster when the entry is
// created and are not updated afterwards.
type AttendanceEntry struct {
	PersonID string    `json:"id"`
	Name     string    `json:"name"`
	Age      *int      `json:"age"`
	Phone    string    `json:"phone"`
	AddedAt  time.Time `json:"addedAt"`
	Present  bool      `json:"present"`
}

// Filter selects roster rows by presence.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterPresent Filter = "present"
	FilterAbsent  Filter = "absent"
)

// ParseFilter converts a request value to a Filter. Empty means FilterAll.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, true
	case FilterPresent, FilterAbsent:
		return Filter(s), true
	default:
		return "", false
	}
}
