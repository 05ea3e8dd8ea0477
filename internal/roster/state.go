// Package roster implements the group roster, the date registry and the
// per-date attendance snapshots on top of a models.GroupRecord.
package roster

import (
	"time"

	"github.com/mmynk/attendance/internal/models"
)

// Features switches the optional parts of the roster on or off.
type Features struct {
	Notes          bool
	TimedResults   bool
	RecurringDates bool
}

// AllFeatures enables every optional feature.
var AllFeatures = Features{Notes: true, TimedResults: true, RecurringDates: true}

// State is the operator's working view of one group: the record itself plus
// the id of the active date, if any. All operations mutate Group in place.
type State struct {
	Group        *models.GroupRecord
	ActiveDateID string
	Features     Features

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Location is used to decide what "today" is. Defaults to time.Local.
	Location *time.Location
}

// NewState wraps a group record with all features enabled and no active date.
func NewState(group *models.GroupRecord) *State {
	group.Normalize()
	return &State{Group: group, Features: AllFeatures}
}

func (s *State) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *State) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

// startOfToday returns midnight of the current day in the state's location.
func (s *State) startOfToday() time.Time {
	now := s.now().In(s.location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location())
}

// ActiveDate returns the active tracked date, if one is selected and still exists.
func (s *State) ActiveDate() (models.TrackedDate, bool) {
	if s.ActiveDateID == "" {
		return models.TrackedDate{}, false
	}
	if i := s.dateIndex(s.ActiveDateID); i >= 0 {
		return s.Group.Dates[i], true
	}
	return models.TrackedDate{}, false
}

func (s *State) personIndex(id string) int {
	for i := range s.Group.People {
		if s.Group.People[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) dateIndex(id string) int {
	for i := range s.Group.Dates {
		if s.Group.Dates[i].ID == id {
			return i
		}
	}
	return -1
}
