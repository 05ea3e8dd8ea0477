package roster

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/attendance/internal/models"
)

// Timed results are recorded for distances 25m..500m in 25m steps.
const (
	minDistance  = 25
	maxDistance  = 500
	distanceStep = 25
)

// AddPerson appends a new person to the roster.
// Age is optional (nil), phone may be empty.
func (s *State) AddPerson(name string, age *int, phone string) (*models.Person, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if err := validateInput(personInput{Name: name, Age: age, Phone: phone}); err != nil {
		return nil, err
	}
	if existing := s.FindPerson(name); existing != nil {
		return nil, fmt.Errorf("%w: person %q is already on the list", ErrDuplicate, name)
	}

	person := models.Person{
		ID:           uuid.New().String(),
		Name:         name,
		Age:          copyInt(age),
		Phone:        phone,
		TimedResults: map[string]string{},
		AddedAt:      s.now(),
	}
	s.Group.People = append(s.Group.People, person)

	out := person.Clone()
	return &out, nil
}

// EditPerson replaces the name, age and phone of an existing person.
func (s *State) EditPerson(id, name string, age *int, phone string) (*models.Person, error) {
	idx := s.personIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: person %s", ErrNotFound, id)
	}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if err := validateInput(personInput{Name: name, Age: age, Phone: phone}); err != nil {
		return nil, err
	}
	for i, other := range s.Group.People {
		if i != idx && strings.EqualFold(other.Name, name) {
			return nil, fmt.Errorf("%w: %q is already used by another person", ErrConflict, name)
		}
	}

	person := &s.Group.People[idx]
	person.Name = name
	person.Age = copyInt(age)
	person.Phone = phone

	out := person.Clone()
	return &out, nil
}

// RemovePerson drops a person from the roster. Attendance records keep the
// entry until the next time their date is activated.
func (s *State) RemovePerson(id string) (*models.Person, error) {
	idx := s.personIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: person %s", ErrNotFound, id)
	}
	removed := s.Group.People[idx]
	s.Group.People = append(s.Group.People[:idx], s.Group.People[idx+1:]...)
	return &removed, nil
}

// SetNote stores a trimmed free-text note on a person. An empty note clears it.
func (s *State) SetNote(id, note string) (*models.Person, error) {
	if !s.Features.Notes {
		return nil, fmt.Errorf("%w: notes", ErrFeatureDisabled)
	}
	idx := s.personIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: person %s", ErrNotFound, id)
	}
	note = strings.TrimSpace(note)
	if err := validateInput(noteInput{Note: note}); err != nil {
		return nil, err
	}

	s.Group.People[idx].Note = note
	out := s.Group.People[idx].Clone()
	return &out, nil
}

// SetTimedResults replaces all timed results of a person.
// Keys are distances in metres; blank times are dropped.
func (s *State) SetTimedResults(id string, results map[string]string) (*models.Person, error) {
	if !s.Features.TimedResults {
		return nil, fmt.Errorf("%w: timed results", ErrFeatureDisabled)
	}
	idx := s.personIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: person %s", ErrNotFound, id)
	}

	cleaned := make(map[string]string, len(results))
	for distance, value := range results {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		metres, err := strconv.Atoi(strings.TrimSpace(distance))
		if err != nil || metres < minDistance || metres > maxDistance || metres%distanceStep != 0 {
			return nil, fmt.Errorf("%w: unsupported distance %q", ErrValidation, distance)
		}
		cleaned[strconv.Itoa(metres)] = value
	}

	s.Group.People[idx].TimedResults = cleaned
	out := s.Group.People[idx].Clone()
	return &out, nil
}

// ClearGroup removes every person, date and attendance record of the group
// and clears the active date. It returns the number of people removed.
func (s *State) ClearGroup() (int, error) {
	count := len(s.Group.People)
	if count == 0 {
		return 0, fmt.Errorf("%w: the list is already empty", ErrValidation)
	}
	s.Group.People = []models.Person{}
	s.Group.Dates = []models.TrackedDate{}
	s.Group.Attendance = map[string][]models.AttendanceEntry{}
	s.ActiveDateID = ""
	return count, nil
}

// FindPerson looks a person up by name, ignoring case and surrounding spaces.
func (s *State) FindPerson(name string) *models.Person {
	name = strings.TrimSpace(name)
	for i := range s.Group.People {
		if strings.EqualFold(s.Group.People[i].Name, name) {
			return &s.Group.People[i]
		}
	}
	return nil
}

// SortedDistances returns the keys of a timed-results map in ascending numeric order.
func SortedDistances(results map[string]string) []string {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
