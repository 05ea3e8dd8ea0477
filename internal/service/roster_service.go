package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/attendance/internal/app"
	"github.com/mmynk/attendance/internal/middleware"
	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/roster"
	"github.com/mmynk/attendance/pkg/api"
)

// Ensure RosterService implements api.RosterServiceHandler
var _ api.RosterServiceHandler = (*RosterService)(nil)

// RosterService implements the Connect RosterService on top of the
// application state. Every call acts on the caller's session.
type RosterService struct {
	app *app.App
}

// NewRosterService creates a new RosterService.
func NewRosterService(a *app.App) *RosterService {
	return &RosterService{app: a}
}

// ListGroups returns the selectable groups.
func (s *RosterService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	infos := s.app.ListGroups(middleware.GetSessionID(ctx))

	groups := make([]api.GroupInfo, 0, len(infos))
	for _, info := range infos {
		groups = append(groups, api.GroupInfo{
			Name:     info.Name,
			People:   info.People,
			Dates:    info.Dates,
			Selected: info.Selected,
		})
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: groups}), nil
}

// SelectGroup switches the session to a group.
func (s *RosterService) SelectGroup(ctx context.Context, req *connect.Request[api.SelectGroupRequest]) (*connect.Response[api.RosterResponse], error) {
	slog.Info("SelectGroup request received", "group", req.Msg.Group)

	view, warning, err := s.app.SelectGroup(ctx, middleware.GetSessionID(ctx), req.Msg.Group)
	if err != nil {
		slog.Error("SelectGroup failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RosterResponse{Roster: toAPIRoster(view), Warning: warning}), nil
}

// GetRoster returns the filtered view of the selected group.
func (s *RosterService) GetRoster(ctx context.Context, req *connect.Request[api.GetRosterRequest]) (*connect.Response[api.RosterResponse], error) {
	filter, ok := models.ParseFilter(req.Msg.Filter)
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("%w: unknown filter %q", roster.ErrValidation, req.Msg.Filter))
	}

	view, err := s.app.Roster(middleware.GetSessionID(ctx), filter)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RosterResponse{Roster: toAPIRoster(view)}), nil
}

// AddPerson adds a person to the selected group.
func (s *RosterService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.PersonResponse], error) {
	slog.Info("AddPerson request received", "name", req.Msg.Name)

	person, warning, err := s.app.AddPerson(ctx, middleware.GetSessionID(ctx), req.Msg.Name, req.Msg.Age, req.Msg.Phone)
	if err != nil {
		slog.Error("AddPerson failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Person added", "person_id", person.ID)
	return connect.NewResponse(&api.PersonResponse{Person: toAPIPerson(person), Warning: warning}), nil
}

// EditPerson updates a person's name, age and phone.
func (s *RosterService) EditPerson(ctx context.Context, req *connect.Request[api.EditPersonRequest]) (*connect.Response[api.PersonResponse], error) {
	slog.Info("EditPerson request received", "person_id", req.Msg.ID)

	person, warning, err := s.app.EditPerson(ctx, middleware.GetSessionID(ctx), req.Msg.ID, req.Msg.Name, req.Msg.Age, req.Msg.Phone)
	if err != nil {
		slog.Error("EditPerson failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.PersonResponse{Person: toAPIPerson(person), Warning: warning}), nil
}

// RemovePerson removes a person from the roster.
func (s *RosterService) RemovePerson(ctx context.Context, req *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.PersonResponse], error) {
	slog.Info("RemovePerson request received", "person_id", req.Msg.ID)

	person, warning, err := s.app.RemovePerson(ctx, middleware.GetSessionID(ctx), req.Msg.ID)
	if err != nil {
		slog.Error("RemovePerson failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.PersonResponse{Person: toAPIPerson(person), Warning: warning}), nil
}

// SetNote stores a note on a person.
func (s *RosterService) SetNote(ctx context.Context, req *connect.Request[api.SetNoteRequest]) (*connect.Response[api.PersonResponse], error) {
	slog.Info("SetNote request received", "person_id", req.Msg.ID)

	person, warning, err := s.app.SetNote(ctx, middleware.GetSessionID(ctx), req.Msg.ID, req.Msg.Note)
	if err != nil {
		slog.Error("SetNote failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.PersonResponse{Person: toAPIPerson(person), Warning: warning}), nil
}

// SetTimedResults replaces a person's timed results.
func (s *RosterService) SetTimedResults(ctx context.Context, req *connect.Request[api.SetTimedResultsRequest]) (*connect.Response[api.PersonResponse], error) {
	slog.Info("SetTimedResults request received", "person_id", req.Msg.ID, "distances", len(req.Msg.Results))

	person, warning, err := s.app.SetTimedResults(ctx, middleware.GetSessionID(ctx), req.Msg.ID, req.Msg.Results)
	if err != nil {
		slog.Error("SetTimedResults failed", "person_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.PersonResponse{Person: toAPIPerson(person), Warning: warning}), nil
}

// ClearGroup removes everyone and every date from the selected group.
func (s *RosterService) ClearGroup(ctx context.Context, req *connect.Request[api.ClearGroupRequest]) (*connect.Response[api.ClearGroupResponse], error) {
	slog.Info("ClearGroup request received")

	removed, warning, err := s.app.ClearGroup(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		slog.Error("ClearGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group cleared", "removed", removed)
	return connect.NewResponse(&api.ClearGroupResponse{Removed: removed, Warning: warning}), nil
}

// AddDate starts tracking a date.
func (s *RosterService) AddDate(ctx context.Context, req *connect.Request[api.AddDateRequest]) (*connect.Response[api.DateResponse], error) {
	slog.Info("AddDate request received", "date", req.Msg.Date)

	date, warning, err := s.app.AddDate(ctx, middleware.GetSessionID(ctx), req.Msg.Date)
	if err != nil {
		slog.Error("AddDate failed", "date", req.Msg.Date, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DateResponse{Date: toAPIDate(*date, "", false), Warning: warning}), nil
}

// AddRecurringDates adds the occurrences of a recurrence rule.
func (s *RosterService) AddRecurringDates(ctx context.Context, req *connect.Request[api.AddRecurringDatesRequest]) (*connect.Response[api.AddRecurringDatesResponse], error) {
	slog.Info("AddRecurringDates request received", "rule", req.Msg.Rule, "until", req.Msg.Until)

	until, err := time.Parse(roster.DateLayout, req.Msg.Until)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("%w: invalid end date %q, expected YYYY-MM-DD", roster.ErrValidation, req.Msg.Until))
	}

	added, warning, err := s.app.AddRecurringDates(ctx, middleware.GetSessionID(ctx), req.Msg.Rule, until)
	if err != nil {
		slog.Error("AddRecurringDates failed", "rule", req.Msg.Rule, "error", err)
		return nil, toConnectError(err)
	}

	dates := make([]api.TrackedDate, 0, len(added))
	for _, d := range added {
		dates = append(dates, toAPIDate(d, "", false))
	}
	slog.Info("Recurring dates added", "count", len(dates))
	return connect.NewResponse(&api.AddRecurringDatesResponse{Dates: dates, Warning: warning}), nil
}

// RemoveDate stops tracking a date.
func (s *RosterService) RemoveDate(ctx context.Context, req *connect.Request[api.RemoveDateRequest]) (*connect.Response[api.DateResponse], error) {
	slog.Info("RemoveDate request received", "date_id", req.Msg.ID)

	date, warning, err := s.app.RemoveDate(ctx, middleware.GetSessionID(ctx), req.Msg.ID)
	if err != nil {
		slog.Error("RemoveDate failed", "date_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DateResponse{Date: toAPIDate(*date, "", false), Warning: warning}), nil
}

// ActivateDate selects a date and returns its attendance view.
func (s *RosterService) ActivateDate(ctx context.Context, req *connect.Request[api.ActivateDateRequest]) (*connect.Response[api.RosterResponse], error) {
	slog.Info("ActivateDate request received", "date_id", req.Msg.ID)

	view, warning, err := s.app.ActivateDate(ctx, middleware.GetSessionID(ctx), req.Msg.ID)
	if err != nil {
		slog.Error("ActivateDate failed", "date_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RosterResponse{Roster: toAPIRoster(view), Warning: warning}), nil
}

// DeactivateDate returns to the plain roster view.
func (s *RosterService) DeactivateDate(ctx context.Context, req *connect.Request[api.DeactivateDateRequest]) (*connect.Response[api.RosterResponse], error) {
	view, err := s.app.DeactivateDate(middleware.GetSessionID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RosterResponse{Roster: toAPIRoster(view)}), nil
}

// ToggleAttendance flips one person's presence on the active date.
func (s *RosterService) ToggleAttendance(ctx context.Context, req *connect.Request[api.ToggleAttendanceRequest]) (*connect.Response[api.ToggleAttendanceResponse], error) {
	entry, stats, warning, err := s.app.Toggle(ctx, middleware.GetSessionID(ctx), req.Msg.PersonID)
	if err != nil {
		slog.Error("ToggleAttendance failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Debug("Attendance toggled", "person_id", entry.PersonID, "present", entry.Present)
	return connect.NewResponse(&api.ToggleAttendanceResponse{
		PersonID: entry.PersonID,
		Present:  entry.Present,
		Stats:    toAPIStats(stats),
		Warning:  warning,
	}), nil
}

// SetAllAttendance marks everyone present or absent on the active date.
func (s *RosterService) SetAllAttendance(ctx context.Context, req *connect.Request[api.SetAllAttendanceRequest]) (*connect.Response[api.SetAllAttendanceResponse], error) {
	slog.Info("SetAllAttendance request received", "present", req.Msg.Present)

	updated, stats, warning, err := s.app.SetAll(ctx, middleware.GetSessionID(ctx), req.Msg.Present)
	if err != nil {
		slog.Error("SetAllAttendance failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SetAllAttendanceResponse{
		Updated: updated,
		Stats:   toAPIStats(stats),
		Warning: warning,
	}), nil
}

// ExportCSV renders the current view as a CSV attendance list.
func (s *RosterService) ExportCSV(ctx context.Context, req *connect.Request[api.ExportCSVRequest]) (*connect.Response[api.ExportResponse], error) {
	slog.Info("ExportCSV request received")

	out, err := s.app.ExportCSV(middleware.GetSessionID(ctx))
	if err != nil {
		slog.Error("ExportCSV failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toAPIExport(out)), nil
}

// ExportCalendar renders the tracked dates as an iCalendar file.
func (s *RosterService) ExportCalendar(ctx context.Context, req *connect.Request[api.ExportCalendarRequest]) (*connect.Response[api.ExportResponse], error) {
	slog.Info("ExportCalendar request received")

	out, err := s.app.ExportCalendar(middleware.GetSessionID(ctx))
	if err != nil {
		slog.Error("ExportCalendar failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toAPIExport(out)), nil
}

// GetAttendanceSummary returns per-person attendance rates.
func (s *RosterService) GetAttendanceSummary(ctx context.Context, req *connect.Request[api.GetAttendanceSummaryRequest]) (*connect.Response[api.GetAttendanceSummaryResponse], error) {
	people, err := s.app.Summary(middleware.GetSessionID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetAttendanceSummaryResponse{People: toAPISummary(people)}), nil
}
