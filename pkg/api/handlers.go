package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// RosterServiceHandler is implemented by the operator facing roster service.
type RosterServiceHandler interface {
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	SelectGroup(context.Context, *connect.Request[SelectGroupRequest]) (*connect.Response[RosterResponse], error)
	GetRoster(context.Context, *connect.Request[GetRosterRequest]) (*connect.Response[RosterResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[PersonResponse], error)
	EditPerson(context.Context, *connect.Request[EditPersonRequest]) (*connect.Response[PersonResponse], error)
	RemovePerson(context.Context, *connect.Request[RemovePersonRequest]) (*connect.Response[PersonResponse], error)
	SetNote(context.Context, *connect.Request[SetNoteRequest]) (*connect.Response[PersonResponse], error)
	SetTimedResults(context.Context, *connect.Request[SetTimedResultsRequest]) (*connect.Response[PersonResponse], error)
	ClearGroup(context.Context, *connect.Request[ClearGroupRequest]) (*connect.Response[ClearGroupResponse], error)
	AddDate(context.Context, *connect.Request[AddDateRequest]) (*connect.Response[DateResponse], error)
	AddRecurringDates(context.Context, *connect.Request[AddRecurringDatesRequest]) (*connect.Response[AddRecurringDatesResponse], error)
	RemoveDate(context.Context, *connect.Request[RemoveDateRequest]) (*connect.Response[DateResponse], error)
	ActivateDate(context.Context, *connect.Request[ActivateDateRequest]) (*connect.Response[RosterResponse], error)
	DeactivateDate(context.Context, *connect.Request[DeactivateDateRequest]) (*connect.Response[RosterResponse], error)
	ToggleAttendance(context.Context, *connect.Request[ToggleAttendanceRequest]) (*connect.Response[ToggleAttendanceResponse], error)
	SetAllAttendance(context.Context, *connect.Request[SetAllAttendanceRequest]) (*connect.Response[SetAllAttendanceResponse], error)
	ExportCSV(context.Context, *connect.Request[ExportCSVRequest]) (*connect.Response[ExportResponse], error)
	ExportCalendar(context.Context, *connect.Request[ExportCalendarRequest]) (*connect.Response[ExportResponse], error)
	GetAttendanceSummary(context.Context, *connect.Request[GetAttendanceSummaryRequest]) (*connect.Response[GetAttendanceSummaryResponse], error)
}

// AuthServiceHandler is implemented by the login service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	Logout(context.Context, *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error)
}

// GroupStoreServiceHandler is implemented by the hosted group store.
type GroupStoreServiceHandler interface {
	Pull(context.Context, *connect.Request[PullRequest]) (*connect.Response[PullResponse], error)
	Replace(context.Context, *connect.Request[ReplaceRequest]) (*connect.Response[ReplaceResponse], error)
}

// NewRosterServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRosterServiceHandler(svc RosterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(RosterServiceListGroupsProcedure, connect.NewUnaryHandler(RosterServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(RosterServiceSelectGroupProcedure, connect.NewUnaryHandler(RosterServiceSelectGroupProcedure, svc.SelectGroup, opts...))
	mux.Handle(RosterServiceGetRosterProcedure, connect.NewUnaryHandler(RosterServiceGetRosterProcedure, svc.GetRoster, opts...))
	mux.Handle(RosterServiceAddPersonProcedure, connect.NewUnaryHandler(RosterServiceAddPersonProcedure, svc.AddPerson, opts...))
	mux.Handle(RosterServiceEditPersonProcedure, connect.NewUnaryHandler(RosterServiceEditPersonProcedure, svc.EditPerson, opts...))
	mux.Handle(RosterServiceRemovePersonProcedure, connect.NewUnaryHandler(RosterServiceRemovePersonProcedure, svc.RemovePerson, opts...))
	mux.Handle(RosterServiceSetNoteProcedure, connect.NewUnaryHandler(RosterServiceSetNoteProcedure, svc.SetNote, opts...))
	mux.Handle(RosterServiceSetTimedResultsProcedure, connect.NewUnaryHandler(RosterServiceSetTimedResultsProcedure, svc.SetTimedResults, opts...))
	mux.Handle(RosterServiceClearGroupProcedure, connect.NewUnaryHandler(RosterServiceClearGroupProcedure, svc.ClearGroup, opts...))
	mux.Handle(RosterServiceAddDateProcedure, connect.NewUnaryHandler(RosterServiceAddDateProcedure, svc.AddDate, opts...))
	mux.Handle(RosterServiceAddRecurringDatesProcedure, connect.NewUnaryHandler(RosterServiceAddRecurringDatesProcedure, svc.AddRecurringDates, opts...))
	mux.Handle(RosterServiceRemoveDateProcedure, connect.NewUnaryHandler(RosterServiceRemoveDateProcedure, svc.RemoveDate, opts...))
	mux.Handle(RosterServiceActivateDateProcedure, connect.NewUnaryHandler(RosterServiceActivateDateProcedure, svc.ActivateDate, opts...))
	mux.Handle(RosterServiceDeactivateDateProcedure, connect.NewUnaryHandler(RosterServiceDeactivateDateProcedure, svc.DeactivateDate, opts...))
	mux.Handle(RosterServiceToggleAttendanceProcedure, connect.NewUnaryHandler(RosterServiceToggleAttendanceProcedure, svc.ToggleAttendance, opts...))
	mux.Handle(RosterServiceSetAllAttendanceProcedure, connect.NewUnaryHandler(RosterServiceSetAllAttendanceProcedure, svc.SetAllAttendance, opts...))
	mux.Handle(RosterServiceExportCSVProcedure, connect.NewUnaryHandler(RosterServiceExportCSVProcedure, svc.ExportCSV, opts...))
	mux.Handle(RosterServiceExportCalendarProcedure, connect.NewUnaryHandler(RosterServiceExportCalendarProcedure, svc.ExportCalendar, opts...))
	mux.Handle(RosterServiceGetAttendanceSummaryProcedure, connect.NewUnaryHandler(RosterServiceGetAttendanceSummaryProcedure, svc.GetAttendanceSummary, opts...))
	return "/" + RosterServiceName + "/", mux
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceLogoutProcedure, connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...))
	mux.Handle(AuthServiceGetSessionProcedure, connect.NewUnaryHandler(AuthServiceGetSessionProcedure, svc.GetSession, opts...))
	return "/" + AuthServiceName + "/", mux
}

// NewGroupStoreServiceHandler builds an HTTP handler from the service implementation.
func NewGroupStoreServiceHandler(svc GroupStoreServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupStoreServicePullProcedure, connect.NewUnaryHandler(GroupStoreServicePullProcedure, svc.Pull, opts...))
	mux.Handle(GroupStoreServiceReplaceProcedure, connect.NewUnaryHandler(GroupStoreServiceReplaceProcedure, svc.Replace, opts...))
	return "/" + GroupStoreServiceName + "/", mux
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithCodec()}, opts...)
}
