package roster

import (
	"fmt"

	"github.com/mmynk/attendance/internal/models"
)

// Activate selects a date and makes sure its attendance record matches the
// current roster.
//
// The first activation materializes the record: one absent entry per person,
// carrying a snapshot of the person's name, age, phone and join time. Later
// activations reconcile it: people added to the roster since are appended as
// absent, entries of people no longer on the roster are dropped, and the
// order of the remaining entries is kept.
func (s *State) Activate(dateID string) ([]models.AttendanceEntry, error) {
	idx := s.dateIndex(dateID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: date %s", ErrNotFound, dateID)
	}
	date := s.Group.Dates[idx]

	if s.Group.Attendance == nil {
		s.Group.Attendance = map[string][]models.AttendanceEntry{}
	}

	record, materialized := s.Group.Attendance[date.Date]
	if materialized {
		record = reconcile(record, s.Group.People)
	} else {
		record = make([]models.AttendanceEntry, 0, len(s.Group.People))
		for _, person := range s.Group.People {
			record = append(record, snapshot(person))
		}
	}

	s.Group.Attendance[date.Date] = record
	s.ActiveDateID = dateID
	return record, nil
}

// Deactivate clears the active date. Views fall back to the plain roster
// with presence unknown.
func (s *State) Deactivate() {
	s.ActiveDateID = ""
}

// Toggle flips the presence of one person on the active date.
func (s *State) Toggle(personID string) (models.AttendanceEntry, error) {
	record, err := s.activeRecord()
	if err != nil {
		return models.AttendanceEntry{}, err
	}
	for i := range record {
		if record[i].PersonID == personID {
			record[i].Present = !record[i].Present
			return record[i], nil
		}
	}
	return models.AttendanceEntry{}, fmt.Errorf("%w: person %s has no entry for this date", ErrNotFound, personID)
}

// SetAll marks everyone on the active date present or absent and returns the
// number of entries touched. An empty record is left as is.
func (s *State) SetAll(present bool) (int, error) {
	record, err := s.activeRecord()
	if err != nil {
		return 0, err
	}
	for i := range record {
		record[i].Present = present
	}
	return len(record), nil
}

// ActiveRecord returns the attendance record of the active date.
func (s *State) ActiveRecord() ([]models.AttendanceEntry, bool) {
	record, err := s.activeRecord()
	if err != nil {
		return nil, false
	}
	return record, true
}

func (s *State) activeRecord() ([]models.AttendanceEntry, error) {
	date, ok := s.ActiveDate()
	if !ok {
		return nil, ErrNoActiveDate
	}
	record, materialized := s.Group.Attendance[date.Date]
	if !materialized {
		return nil, fmt.Errorf("%w: date %s has no attendance record", ErrNoActiveDate, date.Date)
	}
	return record, nil
}

// reconcile makes the record's person ids equal to the roster's: entries are
// kept in their order when the person is still on the roster (duplicates are
// dropped), and people missing from the record are appended as absent.
func reconcile(record []models.AttendanceEntry, people []models.Person) []models.AttendanceEntry {
	onRoster := make(map[string]bool, len(people))
	for _, p := range people {
		onRoster[p.ID] = true
	}

	seen := make(map[string]bool, len(people))
	out := make([]models.AttendanceEntry, 0, len(people))
	for _, entry := range record {
		if !onRoster[entry.PersonID] || seen[entry.PersonID] {
			continue
		}
		seen[entry.PersonID] = true
		out = append(out, entry)
	}
	for _, person := range people {
		if seen[person.ID] {
			continue
		}
		seen[person.ID] = true
		out = append(out, snapshot(person))
	}
	return out
}

func snapshot(p models.Person) models.AttendanceEntry {
	return models.AttendanceEntry{
		PersonID: p.ID,
		Name:     p.Name,
		Age:      copyInt(p.Age),
		Phone:    p.Phone,
		AddedAt:  p.AddedAt,
		Present:  false,
	}
}
