package roster

import (
	"github.com/mmynk/attendance/internal/calculator"
	"github.com/mmynk/attendance/internal/models"
)

// PersonAttendance pairs a roster member with their attendance history.
type PersonAttendance struct {
	Name string
	calculator.PersonSummary
}

// Summary aggregates attendance of the current roster across every
// materialized record of tracked dates. The result is sorted like the roster view.
func (s *State) Summary() []PersonAttendance {
	ids := make([]string, 0, len(s.Group.People))
	for _, p := range s.Group.People {
		ids = append(ids, p.ID)
	}

	sessions := make([]calculator.Session, 0, len(s.Group.Dates))
	for _, date := range s.Group.Dates {
		record, ok := s.Group.Attendance[date.Date]
		if !ok {
			continue
		}
		marks := make([]calculator.Mark, 0, len(record))
		for _, entry := range record {
			marks = append(marks, calculator.Mark{PersonID: entry.PersonID, Present: entry.Present})
		}
		sessions = append(sessions, calculator.Session{Date: date.Date, Marks: marks})
	}

	byID := make(map[string]calculator.PersonSummary, len(ids))
	for _, summary := range calculator.SummarizeAttendance(ids, sessions) {
		byID[summary.PersonID] = summary
	}

	rows := ListFiltered(s.rosterRows(), models.FilterAll)
	out := make([]PersonAttendance, 0, len(rows))
	for _, row := range rows {
		out = append(out, PersonAttendance{
			Name:          row.Name,
			PersonSummary: byID[row.PersonID],
		})
	}
	return out
}

func (s *State) rosterRows() []Row {
	rows := make([]Row, 0, len(s.Group.People))
	for _, p := range s.Group.People {
		rows = append(rows, personRow(p))
	}
	return rows
}
