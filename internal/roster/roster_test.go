package roster

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/attendance/internal/models"
)

var fixedNow = time.Date(2026, time.October, 18, 12, 30, 0, 0, time.UTC)

func newTestState() *State {
	s := NewState(models.NewGroupRecord("A"))
	s.Now = func() time.Time { return fixedNow }
	s.Location = time.UTC
	return s
}

func intPtr(v int) *int { return &v }

func TestAddPerson(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		age     *int
		phone   string
		wantErr error
	}{
		{name: "full person", input: "Jan Kowalski", age: intPtr(10), phone: "123456789"},
		{name: "age and phone optional", input: "Anna Nowak"},
		{name: "name is trimmed", input: "  Ola Zielińska  ", age: intPtr(7)},
		{name: "empty name", input: "   ", wantErr: ErrValidation},
		{name: "age too low", input: "Piotr", age: intPtr(0), wantErr: ErrValidation},
		{name: "age too high", input: "Piotr", age: intPtr(121), wantErr: ErrValidation},
		{name: "name too long", input: "Jan " + strings.Repeat("ż", 50), wantErr: ErrValidation},
		{name: "phone too long", input: "Piotr", phone: "+48 123 456 789 000", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			person, err := s.AddPerson(tt.input, tt.age, tt.phone)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddPerson() error = %v, want %v", err, tt.wantErr)
				}
				if len(s.Group.People) != 0 {
					t.Errorf("roster changed on failure: %d people", len(s.Group.People))
				}
				return
			}
			if err != nil {
				t.Fatalf("AddPerson() unexpected error: %v", err)
			}
			if person.ID == "" {
				t.Error("expected generated ID")
			}
			if !person.AddedAt.Equal(fixedNow) {
				t.Errorf("AddedAt = %v, want %v", person.AddedAt, fixedNow)
			}

			found := s.FindPerson(tt.input)
			if found == nil {
				t.Fatal("FindPerson returned nil after AddPerson")
			}
			if found.Phone != tt.phone {
				t.Errorf("Phone = %q, want %q", found.Phone, tt.phone)
			}
			if (found.Age == nil) != (tt.age == nil) || (found.Age != nil && *found.Age != *tt.age) {
				t.Errorf("Age = %v, want %v", found.Age, tt.age)
			}
			if _, active := s.ActiveRecord(); active {
				t.Error("no attendance record expected before a date is activated")
			}
		})
	}
}

func TestAddPerson_DuplicateIgnoresCase(t *testing.T) {
	s := newTestState()
	if _, err := s.AddPerson("Jan Kowalski", nil, ""); err != nil {
		t.Fatalf("AddPerson failed: %v", err)
	}

	for _, name := range []string{"Jan Kowalski", "jan kowalski", "JAN KOWALSKI", " Jan Kowalski "} {
		_, err := s.AddPerson(name, intPtr(9), "")
		if !errors.Is(err, ErrDuplicate) {
			t.Errorf("AddPerson(%q) error = %v, want ErrDuplicate", name, err)
		}
	}
	if len(s.Group.People) != 1 {
		t.Errorf("expected roster of 1, got %d", len(s.Group.People))
	}
}

func TestEditPerson(t *testing.T) {
	s := newTestState()
	jan, _ := s.AddPerson("Jan Kowalski", intPtr(10), "111")
	anna, _ := s.AddPerson("Anna Nowak", nil, "")

	t.Run("updates fields", func(t *testing.T) {
		edited, err := s.EditPerson(jan.ID, "Jan Kowalski-Nowy", intPtr(11), "222")
		if err != nil {
			t.Fatalf("EditPerson failed: %v", err)
		}
		if edited.Name != "Jan Kowalski-Nowy" || *edited.Age != 11 || edited.Phone != "222" {
			t.Errorf("unexpected person after edit: %+v", edited)
		}
	})

	t.Run("same name different case is allowed for the same person", func(t *testing.T) {
		if _, err := s.EditPerson(anna.ID, "ANNA NOWAK", nil, ""); err != nil {
			t.Errorf("EditPerson failed: %v", err)
		}
	})

	t.Run("collision with another person", func(t *testing.T) {
		_, err := s.EditPerson(anna.ID, "jan kowalski-nowy", nil, "")
		if !errors.Is(err, ErrConflict) {
			t.Errorf("error = %v, want ErrConflict", err)
		}
	})

	t.Run("invalid age", func(t *testing.T) {
		_, err := s.EditPerson(anna.ID, "Anna Nowak", intPtr(200), "")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.EditPerson("missing", "Kto", nil, "")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestSetNoteAndTimedResults(t *testing.T) {
	s := newTestState()
	jan, _ := s.AddPerson("Jan Kowalski", nil, "")

	person, err := s.SetNote(jan.ID, "  boi się wody  ")
	if err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}
	if person.Note != "boi się wody" {
		t.Errorf("Note = %q", person.Note)
	}

	person, err = s.SetTimedResults(jan.ID, map[string]string{"25": "00:21.40", "50": " ", "100": "01:45.00"})
	if err != nil {
		t.Fatalf("SetTimedResults failed: %v", err)
	}
	if len(person.TimedResults) != 2 || person.TimedResults["100"] != "01:45.00" {
		t.Errorf("TimedResults = %v", person.TimedResults)
	}

	for _, distance := range []string{"30", "0", "525", "abc"} {
		_, err := s.SetTimedResults(jan.ID, map[string]string{distance: "00:10.00"})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("distance %q: error = %v, want ErrValidation", distance, err)
		}
	}

	s.Features = Features{}
	if _, err := s.SetNote(jan.ID, "x"); !errors.Is(err, ErrFeatureDisabled) {
		t.Errorf("SetNote with notes disabled: error = %v", err)
	}
	if _, err := s.SetTimedResults(jan.ID, nil); !errors.Is(err, ErrFeatureDisabled) {
		t.Errorf("SetTimedResults with times disabled: error = %v", err)
	}
}

func TestClearGroup(t *testing.T) {
	s := newTestState()
	if _, err := s.ClearGroup(); !errors.Is(err, ErrValidation) {
		t.Errorf("ClearGroup on empty roster: error = %v", err)
	}

	s.AddPerson("Jan Kowalski", nil, "")
	s.AddPerson("Anna Nowak", nil, "")
	date, _ := s.AddDate("2099-01-01")
	s.Activate(date.ID)

	removed, err := s.ClearGroup()
	if err != nil {
		t.Fatalf("ClearGroup failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(s.Group.People) != 0 || len(s.Group.Dates) != 0 || len(s.Group.Attendance) != 0 {
		t.Errorf("group not cleared: %+v", s.Group)
	}
	if s.ActiveDateID != "" {
		t.Error("active date not cleared")
	}
}

func TestSortedDistances(t *testing.T) {
	got := SortedDistances(map[string]string{"100": "", "25": "", "500": "", "50": ""})
	want := []string{"25", "50", "100", "500"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedDistances = %v, want %v", got, want)
		}
	}
}
