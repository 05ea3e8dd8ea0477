package calculator

import "sort"

// Mark is one person's presence on one session.
type Mark struct {
	PersonID string
	Present  bool
}

// Session is the attendance taken on one date.
type Session struct {
	Date  string
	Marks []Mark
}

// PersonSummary aggregates one person's attendance across sessions.
type PersonSummary struct {
	PersonID string
	Present  int     // Sessions marked present
	Recorded int     // Sessions on which the person had an entry
	Rate     float64 // Present / Recorded as a percentage, 0 when nothing was recorded
	LastSeen string  // Latest date the person was present, empty if never
}

// Percentage returns present/total as a percentage.
// A zero total yields 0 rather than NaN.
func Percentage(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(present) / float64(total) * 100
}

// SummarizeAttendance computes per-person totals across all sessions.
// The result follows the order of personIDs; marks for people not listed are ignored.
//
// Algorithm:
// - Sessions are visited in ascending date order
// - Every mark counts toward Recorded; present marks also count toward Present
// - LastSeen is the date of the latest present mark
func SummarizeAttendance(personIDs []string, sessions []Session) []PersonSummary {
	summaries := make(map[string]*PersonSummary, len(personIDs))
	for _, id := range personIDs {
		summaries[id] = &PersonSummary{PersonID: id}
	}

	ordered := make([]Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	for _, session := range ordered {
		for _, mark := range session.Marks {
			summary, exists := summaries[mark.PersonID]
			if !exists {
				continue
			}
			summary.Recorded++
			if mark.Present {
				summary.Present++
				summary.LastSeen = session.Date
			}
		}
	}

	result := make([]PersonSummary, 0, len(personIDs))
	for _, id := range personIDs {
		summary := summaries[id]
		summary.Rate = Percentage(summary.Present, summary.Recorded)
		result = append(result, *summary)
	}
	return result
}
