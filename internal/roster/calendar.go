package roster

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ExportCalendar renders the tracked dates of the group as an iCalendar feed
// with one all-day event per date.
func (s *State) ExportCalendar() (*Export, error) {
	if len(s.Group.Dates) == 0 {
		return nil, fmt.Errorf("%w: no dates to export", ErrValidation)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//mmynk//attendance roster//PL")

	stamp := s.now().UTC()
	for _, date := range s.Group.Dates {
		day, err := time.Parse(DateLayout, date.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tracked date %q: %w", date.Date, err)
		}
		event := cal.AddEvent(date.ID + "@attendance")
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(date.CreatedAt.UTC())
		event.SetSummary(s.Group.GroupName)
		event.SetDescription("Zajęcia: " + DisplayDate(date.Date))
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
	}

	return &Export{
		Filename:    calendarFilename(s.Group.GroupName),
		ContentType: "text/calendar; charset=utf-8",
		Content:     []byte(cal.Serialize()),
	}, nil
}

func calendarFilename(group string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, group)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "grupa"
	}
	return "kalendarz-" + slug + ".ics"
}
