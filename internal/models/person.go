package models

import "time"

// Person is one member of a group roster.
type Person struct {
	// ID is the unique identifier within the group (UUID format).
	ID string `json:"id"`

	// Name is the full name, unique within the group ignoring case.
	Name string `json:"name"`

	// Age is optional; when set it is between 1 and 120.
	Age *int `json:"age"`

	// Phone is an optional contact number.
	Phone string `json:"phone"`

	// Note is free text kept by the coordinator.
	Note string `json:"note"`

	// TimedResults maps a distance in metres ("25", "50", ...) to a recorded time.
	TimedResults map[string]string `json:"timedResults"`

	// AddedAt is when the person joined the roster.
	AddedAt time.Time `json:"addedAt"`
}

// Clone returns a deep copy of the person.
func (p Person) Clone() Person {
	out := p
	out.Age = cloneAge(p.Age)
	out.TimedResults = make(map[string]string, len(p.TimedResults))
	for k, v := range p.TimedResults {
		out.TimedResults[k] = v
	}
	return out
}

func cloneAge(age *int) *int {
	if age == nil {
		return nil
	}
	v := *age
	return &v
}
