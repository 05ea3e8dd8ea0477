package models

import "time"

// GroupRecord is the full persisted state of one class group.
// Exactly one record exists per group name; saving replaces it.
type GroupRecord struct {
	// GroupName is one of the configured group names (e.g. "NAUKA 1 PON/ŚR 15:45").
	GroupName string `json:"group_name"`

	// People is the roster in insertion order.
	People []Person `json:"people"`

	// Dates are the tracked calendar dates, sorted ascending.
	Dates []TrackedDate `json:"dates"`

	// Attendance maps an ISO calendar date to the attendance record for that date.
	// A key exists only once the date has been activated at least once.
	Attendance map[string][]AttendanceEntry `json:"attendance_data"`

	// UpdatedAt is the time of the last save.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGroupRecord returns an empty record for the given group.
func NewGroupRecord(name string) *GroupRecord {
	return &GroupRecord{
		GroupName:  name,
		People:     []Person{},
		Dates:      []TrackedDate{},
		Attendance: map[string][]AttendanceEntry{},
	}
}

// Clone returns a deep copy of the record.
func (g *GroupRecord) Clone() *GroupRecord {
	if g == nil {
		return nil
	}
	out := &GroupRecord{
		GroupName:  g.GroupName,
		People:     make([]Person, len(g.People)),
		Dates:      make([]TrackedDate, len(g.Dates)),
		Attendance: make(map[string][]AttendanceEntry, len(g.Attendance)),
		UpdatedAt:  g.UpdatedAt,
	}
	for i, p := range g.People {
		out.People[i] = p.Clone()
	}
	copy(out.Dates, g.Dates)
	for date, entries := range g.Attendance {
		cp := make([]AttendanceEntry, len(entries))
		for i, e := range entries {
			cp[i] = e
			cp[i].Age = cloneAge(e.Age)
		}
		out.Attendance[date] = cp
	}
	return out
}

// Normalize replaces nil collections with empty ones so that records decoded
// from partial payloads behave like freshly created ones.
func (g *GroupRecord) Normalize() {
	if g.People == nil {
		g.People = []Person{}
	}
	if g.Dates == nil {
		g.Dates = []TrackedDate{}
	}
	if g.Attendance == nil {
		g.Attendance = map[string][]AttendanceEntry{}
	}
	for i := range g.People {
		if g.People[i].TimedResults == nil {
			g.People[i].TimedResults = map[string]string{}
		}
	}
}
