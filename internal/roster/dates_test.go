package roster

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestAddDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{"future date", "2099-01-01", nil},
		{"today", "2026-10-18", nil},
		{"yesterday", "2026-10-17", ErrValidation},
		{"far past", "2000-01-01", ErrValidation},
		{"malformed", "01.01.2099", ErrValidation},
		{"impossible day", "2099-02-30", ErrValidation},
		{"empty", "", ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			date, err := s.AddDate(tt.date)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddDate(%q) error = %v, want %v", tt.date, err, tt.wantErr)
				}
				if len(s.Group.Dates) != 0 {
					t.Error("dates changed on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("AddDate(%q) failed: %v", tt.date, err)
			}
			if date.ID == "" || date.Date != tt.date {
				t.Errorf("unexpected date: %+v", date)
			}
		})
	}
}

func TestAddDate_DuplicateAndOrdering(t *testing.T) {
	s := newTestState()
	for _, d := range []string{"2099-03-01", "2099-01-01", "2099-02-01"} {
		if _, err := s.AddDate(d); err != nil {
			t.Fatalf("AddDate(%s) failed: %v", d, err)
		}
	}
	if _, err := s.AddDate("2099-01-01"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate date error = %v, want ErrDuplicate", err)
	}

	want := []string{"2099-01-01", "2099-02-01", "2099-03-01"}
	for i, d := range s.Group.Dates {
		if d.Date != want[i] {
			t.Errorf("Dates[%d] = %s, want %s", i, d.Date, want[i])
		}
	}
}

func TestAddDate_PastBeatsDuplicate(t *testing.T) {
	s := newTestState()
	s.appendDate("2020-05-05")
	if _, err := s.AddDate("2020-05-05"); !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation for a past date", err)
	}
}

func TestRemoveDate(t *testing.T) {
	s := newTestState()
	s.AddPerson("Jan Kowalski", nil, "")
	first, _ := s.AddDate("2099-01-01")
	second, _ := s.AddDate("2099-01-08")
	s.Activate(first.ID)

	if _, err := s.RemoveDate(second.ID); err != nil {
		t.Fatalf("RemoveDate failed: %v", err)
	}
	if s.ActiveDateID != first.ID {
		t.Error("removing another date must keep the selection")
	}

	if _, err := s.RemoveDate(first.ID); err != nil {
		t.Fatalf("RemoveDate failed: %v", err)
	}
	if s.ActiveDateID != "" {
		t.Error("removing the active date must clear the selection")
	}
	if _, ok := s.Group.Attendance["2099-01-01"]; ok {
		t.Error("attendance record of a removed date must be dropped")
	}
	if _, err := s.RemoveDate(first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second removal error = %v, want ErrNotFound", err)
	}
}

func TestAddRecurringDates(t *testing.T) {
	s := newTestState()
	// 2026-10-18 is a Sunday; Mondays and Wednesdays until 2026-11-01.
	until := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	s.AddDate("2026-10-21")

	added, err := s.AddRecurringDates("FREQ=WEEKLY;BYDAY=MO,WE", until)
	if err != nil {
		t.Fatalf("AddRecurringDates failed: %v", err)
	}

	want := []string{"2026-10-19", "2026-10-26", "2026-10-28"}
	if len(added) != len(want) {
		t.Fatalf("added %d dates, want %d: %+v", len(added), len(want), added)
	}
	for i, d := range added {
		if d.Date != want[i] {
			t.Errorf("added[%d] = %s, want %s", i, d.Date, want[i])
		}
	}
	if len(s.Group.Dates) != 4 || s.Group.Dates[0].Date != "2026-10-19" || s.Group.Dates[1].Date != "2026-10-21" {
		t.Errorf("dates not sorted: %+v", s.Group.Dates)
	}

	if _, err := s.AddRecurringDates("FREQ=NOPE", until); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid rule error = %v", err)
	}
	if _, err := s.AddRecurringDates("FREQ=DAILY", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, ErrValidation) {
		t.Errorf("past end date error = %v", err)
	}
	if _, err := s.AddRecurringDates("FREQ=DAILY", time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)); !errors.Is(err, ErrValidation) {
		t.Errorf("too many occurrences error = %v", err)
	}
}

func TestAddRecurringDates_StopsAtLimit(t *testing.T) {
	s := newTestState()
	until := time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

	start := time.Now()
	_, err := s.AddRecurringDates("FREQ=SECONDLY", until)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("high-frequency rule error = %v, want ErrValidation", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expansion took %v, want it to stop at the limit", elapsed)
	}
	if len(s.Group.Dates) != 0 {
		t.Errorf("rejected rule added %d dates", len(s.Group.Dates))
	}

	// Exactly the limit is accepted.
	added, err := s.AddRecurringDates(fmt.Sprintf("FREQ=DAILY;COUNT=%d", maxRecurringDates), until)
	if err != nil {
		t.Fatalf("AddRecurringDates at the limit failed: %v", err)
	}
	if len(added) != maxRecurringDates {
		t.Errorf("added %d dates, want %d", len(added), maxRecurringDates)
	}
}

func TestDisplayDate(t *testing.T) {
	tests := map[string]string{
		"2099-01-01": "czwartek, 1 stycznia 2099",
		"2026-10-21": "środa, 21 października 2026",
		"garbage":    "garbage",
	}
	for in, want := range tests {
		if got := DisplayDate(in); got != want {
			t.Errorf("DisplayDate(%q) = %q, want %q", in, got, want)
		}
	}
}
