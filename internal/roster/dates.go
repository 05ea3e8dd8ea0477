package roster

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/mmynk/attendance/internal/models"
)

// DateLayout is the ISO calendar date format used for tracked dates.
const DateLayout = "2006-01-02"

// maxRecurringDates caps how many dates one recurrence rule may add.
const maxRecurringDates = 120

var (
	polishWeekdays = [...]string{"niedziela", "poniedziałek", "wtorek", "środa", "czwartek", "piątek", "sobota"}
	polishMonths   = [...]string{"stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
		"lipca", "sierpnia", "września", "października", "listopada", "grudnia"}
)

// AddDate starts tracking a calendar date (YYYY-MM-DD). Dates before today
// are rejected.
func (s *State) AddDate(calendarDate string) (*models.TrackedDate, error) {
	calendarDate = strings.TrimSpace(calendarDate)
	day, err := time.ParseInLocation(DateLayout, calendarDate, s.location())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, calendarDate)
	}
	if day.Before(s.startOfToday()) {
		return nil, fmt.Errorf("%w: cannot add a past date %s", ErrValidation, calendarDate)
	}
	if s.hasDate(calendarDate) {
		return nil, fmt.Errorf("%w: date %s is already tracked", ErrDuplicate, calendarDate)
	}

	date := s.appendDate(calendarDate)
	s.sortDates()
	return &date, nil
}

// AddRecurringDates adds every occurrence of an RFC 5545 recurrence rule
// (e.g. "FREQ=WEEKLY;BYDAY=MO,WE") from today until the given day inclusive.
// Dates already tracked are skipped. It returns the dates that were added.
func (s *State) AddRecurringDates(rule string, until time.Time) ([]models.TrackedDate, error) {
	if !s.Features.RecurringDates {
		return nil, fmt.Errorf("%w: recurring dates", ErrFeatureDisabled)
	}

	start := s.startOfToday()
	end := time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, 0, s.location())
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date must not be in the past", ErrValidation)
	}

	r, err := rrule.StrToRRule(strings.TrimSpace(rule))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recurrence rule: %v", ErrValidation, err)
	}
	r.DTStart(start)

	var occurrences []time.Time
	next := r.Iterator()
	for {
		occ, ok := next()
		if !ok || occ.After(end) {
			break
		}
		if len(occurrences) == maxRecurringDates {
			return nil, fmt.Errorf("%w: rule yields more than %d dates", ErrValidation, maxRecurringDates)
		}
		occurrences = append(occurrences, occ)
	}

	added := make([]models.TrackedDate, 0, len(occurrences))
	for _, occ := range occurrences {
		calendarDate := occ.In(s.location()).Format(DateLayout)
		if s.hasDate(calendarDate) {
			continue
		}
		added = append(added, s.appendDate(calendarDate))
	}
	s.sortDates()
	return added, nil
}

// RemoveDate stops tracking a date and drops its attendance record.
// If it was the active date, the selection is cleared.
func (s *State) RemoveDate(id string) (*models.TrackedDate, error) {
	idx := s.dateIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: date %s", ErrNotFound, id)
	}
	removed := s.Group.Dates[idx]
	s.Group.Dates = append(s.Group.Dates[:idx], s.Group.Dates[idx+1:]...)
	delete(s.Group.Attendance, removed.Date)
	if s.ActiveDateID == id {
		s.ActiveDateID = ""
	}
	return &removed, nil
}

// DisplayDate formats an ISO date in Polish long form, e.g. "środa, 1 stycznia 2099".
// Unparseable input is returned unchanged.
func DisplayDate(calendarDate string) string {
	day, err := time.Parse(DateLayout, calendarDate)
	if err != nil {
		return calendarDate
	}
	return fmt.Sprintf("%s, %d %s %d",
		polishWeekdays[day.Weekday()], day.Day(), polishMonths[day.Month()-1], day.Year())
}

func (s *State) hasDate(calendarDate string) bool {
	for _, d := range s.Group.Dates {
		if d.Date == calendarDate {
			return true
		}
	}
	return false
}

func (s *State) appendDate(calendarDate string) models.TrackedDate {
	date := models.TrackedDate{
		ID:        uuid.New().String(),
		Date:      calendarDate,
		CreatedAt: s.now(),
	}
	s.Group.Dates = append(s.Group.Dates, date)
	return date
}

func (s *State) sortDates() {
	slices.SortStableFunc(s.Group.Dates, func(a, b models.TrackedDate) int {
		return strings.Compare(a.Date, b.Date)
	})
}
