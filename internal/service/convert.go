package service

import (
	"github.com/mmynk/attendance/internal/app"
	"github.com/mmynk/attendance/internal/calculator"
	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/roster"
	"github.com/mmynk/attendance/pkg/api"
)

func toAPIPerson(p *models.Person) api.Person {
	if p == nil {
		return api.Person{}
	}
	return api.Person{
		ID:           p.ID,
		Name:         p.Name,
		Age:          p.Age,
		Phone:        p.Phone,
		Note:         p.Note,
		TimedResults: p.TimedResults,
		AddedAt:      p.AddedAt,
	}
}

func toAPIDate(d models.TrackedDate, activeID string, recorded bool) api.TrackedDate {
	return api.TrackedDate{
		ID:        d.ID,
		Date:      d.Date,
		Display:   roster.DisplayDate(d.Date),
		CreatedAt: d.CreatedAt,
		Active:    d.ID == activeID && activeID != "",
		Recorded:  recorded,
	}
}

func toAPIStats(s roster.Stats) api.Stats {
	out := api.Stats{Total: s.Total}
	if s.DateActive {
		present, absent, pct := s.Present, s.Absent, s.Percentage
		out.Present = &present
		out.Absent = &absent
		out.Percentage = &pct
	}
	return out
}

func toAPIFeatures(f roster.Features) api.Features {
	return api.Features{Notes: f.Notes, TimedResults: f.TimedResults, RecurringDates: f.RecurringDates}
}

func toAPIRoster(v *app.RosterView) api.Roster {
	rows := make([]api.Row, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, api.Row{
			PersonID:     r.PersonID,
			Name:         r.Name,
			Age:          r.Age,
			Phone:        r.Phone,
			Note:         r.Note,
			TimedResults: r.TimedResults,
			AddedAt:      r.AddedAt,
			Present:      r.Present,
		})
	}

	dates := make([]api.TrackedDate, 0, len(v.Dates))
	for _, d := range v.Dates {
		dates = append(dates, toAPIDate(d, v.ActiveDateID, v.Recorded[d.Date]))
	}

	return api.Roster{
		Group:        v.Group,
		Rows:         rows,
		Dates:        dates,
		ActiveDateID: v.ActiveDateID,
		Filter:       string(v.Filter),
		Stats:        toAPIStats(v.Stats),
		Features:     toAPIFeatures(v.Features),
	}
}

func toAPISummary(people []roster.PersonAttendance) []api.PersonSummary {
	out := make([]api.PersonSummary, 0, len(people))
	for _, p := range people {
		out = append(out, api.PersonSummary{
			PersonID: p.PersonID,
			Name:     p.Name,
			Present:  p.Present,
			Recorded: p.Recorded,
			Rate:     roundRate(p.PersonSummary),
			LastSeen: p.LastSeen,
		})
	}
	return out
}

// roundRate keeps one decimal, matching the CSV export.
func roundRate(s calculator.PersonSummary) float64 {
	return float64(int(s.Rate*10+0.5)) / 10
}

func toAPIExport(e *roster.Export) *api.ExportResponse {
	return &api.ExportResponse{
		Filename:    e.Filename,
		ContentType: e.ContentType,
		Content:     e.Content,
	}
}
