package roster

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmynk/attendance/internal/calculator"
	"github.com/mmynk/attendance/internal/models"
)

// Row is one line of the roster as shown to the operator.
type Row struct {
	PersonID     string
	Name         string
	Age          *int
	Phone        string
	Note         string
	TimedResults map[string]string
	AddedAt      time.Time

	// Present is nil when no date is active.
	Present *bool
}

// Stats summarizes the current view. Present and Absent are only meaningful
// when DateActive is true.
type Stats struct {
	Total      int
	Present    int
	Absent     int
	DateActive bool
	Percentage float64
}

// View returns the rows for the current selection: the active attendance
// record when a date is active, otherwise the roster with unknown presence.
// Note and timed results always come from the roster.
func (s *State) View() []Row {
	record, ok := s.ActiveRecord()
	if !ok {
		return s.rosterRows()
	}

	rows := make([]Row, 0, len(record))
	for _, entry := range record {
		present := entry.Present
		row := Row{
			PersonID: entry.PersonID,
			Name:     entry.Name,
			Age:      copyInt(entry.Age),
			Phone:    entry.Phone,
			AddedAt:  entry.AddedAt,
			Present:  &present,
		}
		if idx := s.personIndex(entry.PersonID); idx >= 0 {
			row.Note = s.Group.People[idx].Note
			row.TimedResults = s.Group.People[idx].Clone().TimedResults
		}
		rows = append(rows, row)
	}
	return rows
}

// List returns the current view filtered and sorted for display.
func (s *State) List(filter models.Filter) []Row {
	return ListFiltered(s.View(), filter)
}

// Stats counts the rows of the current view.
func (s *State) Stats() Stats {
	rows := s.View()
	stats := Stats{Total: len(rows)}
	if _, ok := s.ActiveRecord(); !ok {
		return stats
	}
	stats.DateActive = true
	for _, row := range rows {
		if row.Present != nil && *row.Present {
			stats.Present++
		}
	}
	stats.Absent = stats.Total - stats.Present
	stats.Percentage = calculator.Percentage(stats.Present, stats.Total)
	return stats
}

// ListFiltered returns the rows matching the filter, sorted by surname (the
// last word of the name) with Polish collation. Rows with unknown presence
// are never filtered out. Equal surnames keep their original order.
func ListFiltered(rows []Row, filter models.Filter) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Present != nil {
			if filter == models.FilterPresent && !*row.Present {
				continue
			}
			if filter == models.FilterAbsent && *row.Present {
				continue
			}
		}
		out = append(out, row)
	}

	col := collate.New(language.Polish)
	slices.SortStableFunc(out, func(a, b Row) int {
		return col.CompareString(surname(a.Name), surname(b.Name))
	})
	return out
}

func surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

func personRow(p models.Person) Row {
	return Row{
		PersonID:     p.ID,
		Name:         p.Name,
		Age:          copyInt(p.Age),
		Phone:        p.Phone,
		Note:         p.Note,
		TimedResults: p.Clone().TimedResults,
		AddedAt:      p.AddedAt,
	}
}
