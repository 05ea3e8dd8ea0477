package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/roster"
)

// GroupInfo summarizes one selectable group.
type GroupInfo struct {
	Name     string
	People   int
	Dates    int
	Selected bool
}

// RosterView is everything an operator sees for the selected group.
type RosterView struct {
	Group        string
	Rows         []roster.Row
	Dates        []models.TrackedDate
	Recorded     map[string]bool // calendar dates with a materialized record
	ActiveDateID string
	Filter       models.Filter
	Stats        roster.Stats
	Features     roster.Features
}

// ListGroups returns the configured groups with their sizes.
func (a *App) ListGroups(sessionID string) []GroupInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	selected := a.session(sessionID).Group
	out := make([]GroupInfo, 0, len(a.opts.Groups))
	for _, name := range a.opts.Groups {
		info := GroupInfo{Name: name, Selected: name == selected}
		if g, ok := a.groups[name]; ok {
			info.People = len(g.People)
			info.Dates = len(g.Dates)
		}
		out = append(out, info)
	}
	return out
}

// SelectGroup makes name the session's group and clears the active date.
// A configured group without a stored record is created empty and saved.
func (a *App) SelectGroup(ctx context.Context, sessionID, name string) (*RosterView, string, error) {
	if !slices.Contains(a.opts.Groups, name) {
		a.metrics.Operation("SelectGroup", roster.ErrNoGroup)
		return nil, "", fmt.Errorf("%w: unknown group %q", roster.ErrNoGroup, name)
	}

	a.mu.Lock()
	session := a.session(sessionID)
	session.Group = name
	session.ActiveDateID = ""

	var created *models.GroupRecord
	if _, ok := a.groups[name]; !ok {
		group := models.NewGroupRecord(name)
		group.UpdatedAt = a.opts.Now().UTC()
		a.groups[name] = group
		a.metrics.SetGroups(len(a.groups))
		created = group.Clone()
		a.saveMirrorLocked()
		slog.Info("Group created", "group", name)
	}
	view := a.viewLocked(session, models.FilterAll)
	a.mu.Unlock()

	a.metrics.Operation("SelectGroup", nil)
	var warning string
	if created != nil {
		warning = a.push(ctx, created)
	}
	return view, warning, nil
}

// Roster returns the current view of the session's group.
func (a *App) Roster(sessionID string, filter models.Filter) (*RosterView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	session := a.session(sessionID)
	view := a.viewLocked(session, filter)
	if view == nil {
		return nil, roster.ErrNoGroup
	}
	return view, nil
}

// viewLocked builds the view of a session. Callers hold mu.
func (a *App) viewLocked(session *Session, filter models.Filter) *RosterView {
	st := a.stateFor(session)
	if st == nil {
		return nil
	}

	// A date removed by another session no longer counts as active.
	if _, ok := st.ActiveDate(); !ok {
		st.ActiveDateID = ""
		session.ActiveDateID = ""
	}

	recorded := make(map[string]bool, len(st.Group.Attendance))
	for date := range st.Group.Attendance {
		recorded[date] = true
	}

	return &RosterView{
		Group:        st.Group.GroupName,
		Rows:         st.List(filter),
		Dates:        slices.Clone(st.Group.Dates),
		Recorded:     recorded,
		ActiveDateID: st.ActiveDateID,
		Filter:       filter,
		Stats:        st.Stats(),
		Features:     st.Features,
	}
}

// AddPerson adds a person to the session's group.
func (a *App) AddPerson(ctx context.Context, sessionID, name string, age *int, phone string) (*models.Person, string, error) {
	var person *models.Person
	warning, err := a.mutate(ctx, sessionID, "AddPerson", func(st *roster.State) error {
		var err error
		person, err = st.AddPerson(name, age, phone)
		return err
	})
	return person, warning, err
}

// EditPerson changes a person's name, age and phone.
func (a *App) EditPerson(ctx context.Context, sessionID, id, name string, age *int, phone string) (*models.Person, string, error) {
	var person *models.Person
	warning, err := a.mutate(ctx, sessionID, "EditPerson", func(st *roster.State) error {
		var err error
		person, err = st.EditPerson(id, name, age, phone)
		return err
	})
	return person, warning, err
}

// RemovePerson removes a person from the roster.
func (a *App) RemovePerson(ctx context.Context, sessionID, id string) (*models.Person, string, error) {
	var person *models.Person
	warning, err := a.mutate(ctx, sessionID, "RemovePerson", func(st *roster.State) error {
		var err error
		person, err = st.RemovePerson(id)
		return err
	})
	return person, warning, err
}

// SetNote stores a note on a person.
func (a *App) SetNote(ctx context.Context, sessionID, id, note string) (*models.Person, string, error) {
	var person *models.Person
	warning, err := a.mutate(ctx, sessionID, "SetNote", func(st *roster.State) error {
		var err error
		person, err = st.SetNote(id, note)
		return err
	})
	return person, warning, err
}

// SetTimedResults replaces a person's timed results.
func (a *App) SetTimedResults(ctx context.Context, sessionID, id string, results map[string]string) (*models.Person, string, error) {
	var person *models.Person
	warning, err := a.mutate(ctx, sessionID, "SetTimedResults", func(st *roster.State) error {
		var err error
		person, err = st.SetTimedResults(id, results)
		return err
	})
	return person, warning, err
}

// ClearGroup empties the session's group.
func (a *App) ClearGroup(ctx context.Context, sessionID string) (int, string, error) {
	var removed int
	warning, err := a.mutate(ctx, sessionID, "ClearGroup", func(st *roster.State) error {
		var err error
		removed, err = st.ClearGroup()
		return err
	})
	return removed, warning, err
}

// AddDate starts tracking a calendar date.
func (a *App) AddDate(ctx context.Context, sessionID, date string) (*models.TrackedDate, string, error) {
	var tracked *models.TrackedDate
	warning, err := a.mutate(ctx, sessionID, "AddDate", func(st *roster.State) error {
		var err error
		tracked, err = st.AddDate(date)
		return err
	})
	return tracked, warning, err
}

// AddRecurringDates adds every occurrence of rule up to until.
func (a *App) AddRecurringDates(ctx context.Context, sessionID, rule string, until time.Time) ([]models.TrackedDate, string, error) {
	var added []models.TrackedDate
	warning, err := a.mutate(ctx, sessionID, "AddRecurringDates", func(st *roster.State) error {
		var err error
		added, err = st.AddRecurringDates(rule, until)
		return err
	})
	return added, warning, err
}

// RemoveDate stops tracking a date.
func (a *App) RemoveDate(ctx context.Context, sessionID, id string) (*models.TrackedDate, string, error) {
	var removed *models.TrackedDate
	warning, err := a.mutate(ctx, sessionID, "RemoveDate", func(st *roster.State) error {
		var err error
		removed, err = st.RemoveDate(id)
		return err
	})
	return removed, warning, err
}

// ActivateDate selects a date, materializing or reconciling its record.
func (a *App) ActivateDate(ctx context.Context, sessionID, id string) (*RosterView, string, error) {
	warning, err := a.mutate(ctx, sessionID, "ActivateDate", func(st *roster.State) error {
		_, err := st.Activate(id)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	view, err := a.Roster(sessionID, models.FilterAll)
	return view, warning, err
}

// DeactivateDate clears the session's active date. Nothing is saved.
func (a *App) DeactivateDate(sessionID string) (*RosterView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	session := a.session(sessionID)
	session.ActiveDateID = ""
	view := a.viewLocked(session, models.FilterAll)
	if view == nil {
		return nil, roster.ErrNoGroup
	}
	a.metrics.Operation("DeactivateDate", nil)
	return view, nil
}

// Toggle flips a person's presence on the active date.
func (a *App) Toggle(ctx context.Context, sessionID, personID string) (models.AttendanceEntry, roster.Stats, string, error) {
	var (
		entry models.AttendanceEntry
		stats roster.Stats
	)
	warning, err := a.mutate(ctx, sessionID, "ToggleAttendance", func(st *roster.State) error {
		var err error
		entry, err = st.Toggle(personID)
		stats = st.Stats()
		return err
	})
	return entry, stats, warning, err
}

// SetAll marks everyone on the active date present or absent.
func (a *App) SetAll(ctx context.Context, sessionID string, present bool) (int, roster.Stats, string, error) {
	var (
		updated int
		stats   roster.Stats
	)
	warning, err := a.mutate(ctx, sessionID, "SetAllAttendance", func(st *roster.State) error {
		var err error
		updated, err = st.SetAll(present)
		stats = st.Stats()
		return err
	})
	return updated, stats, warning, err
}

// ExportCSV renders the session's current view as CSV.
func (a *App) ExportCSV(sessionID string) (*roster.Export, error) {
	var out *roster.Export
	err := a.inspect(sessionID, func(st *roster.State) error {
		var err error
		out, err = st.ExportCSV()
		return err
	})
	a.metrics.Operation("ExportCSV", err)
	return out, err
}

// ExportCalendar renders the session's tracked dates as iCalendar.
func (a *App) ExportCalendar(sessionID string) (*roster.Export, error) {
	var out *roster.Export
	err := a.inspect(sessionID, func(st *roster.State) error {
		var err error
		out, err = st.ExportCalendar()
		return err
	})
	a.metrics.Operation("ExportCalendar", err)
	return out, err
}

// Summary returns per-person attendance across recorded dates.
func (a *App) Summary(sessionID string) ([]roster.PersonAttendance, error) {
	var out []roster.PersonAttendance
	err := a.inspect(sessionID, func(st *roster.State) error {
		out = st.Summary()
		return nil
	})
	return out, err
}
