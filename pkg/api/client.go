package api

import (
	"context"

	"connectrpc.com/connect"
)

// RosterServiceClient calls RosterService on a remote server.
type RosterServiceClient struct {
	listGroups           *connect.Client[ListGroupsRequest, ListGroupsResponse]
	selectGroup          *connect.Client[SelectGroupRequest, RosterResponse]
	getRoster            *connect.Client[GetRosterRequest, RosterResponse]
	addPerson            *connect.Client[AddPersonRequest, PersonResponse]
	editPerson           *connect.Client[EditPersonRequest, PersonResponse]
	removePerson         *connect.Client[RemovePersonRequest, PersonResponse]
	setNote              *connect.Client[SetNoteRequest, PersonResponse]
	setTimedResults      *connect.Client[SetTimedResultsRequest, PersonResponse]
	clearGroup           *connect.Client[ClearGroupRequest, ClearGroupResponse]
	addDate              *connect.Client[AddDateRequest, DateResponse]
	addRecurringDates    *connect.Client[AddRecurringDatesRequest, AddRecurringDatesResponse]
	removeDate           *connect.Client[RemoveDateRequest, DateResponse]
	activateDate         *connect.Client[ActivateDateRequest, RosterResponse]
	deactivateDate       *connect.Client[DeactivateDateRequest, RosterResponse]
	toggleAttendance     *connect.Client[ToggleAttendanceRequest, ToggleAttendanceResponse]
	setAllAttendance     *connect.Client[SetAllAttendanceRequest, SetAllAttendanceResponse]
	exportCSV            *connect.Client[ExportCSVRequest, ExportResponse]
	exportCalendar       *connect.Client[ExportCalendarRequest, ExportResponse]
	getAttendanceSummary *connect.Client[GetAttendanceSummaryRequest, GetAttendanceSummaryResponse]
}

// NewRosterServiceClient constructs a client for the server at baseURL
// (e.g. "http://localhost:8080").
func NewRosterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RosterServiceClient {
	opts = withClientCodec(opts)
	return &RosterServiceClient{
		listGroups:           connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+RosterServiceListGroupsProcedure, opts...),
		selectGroup:          connect.NewClient[SelectGroupRequest, RosterResponse](httpClient, baseURL+RosterServiceSelectGroupProcedure, opts...),
		getRoster:            connect.NewClient[GetRosterRequest, RosterResponse](httpClient, baseURL+RosterServiceGetRosterProcedure, opts...),
		addPerson:            connect.NewClient[AddPersonRequest, PersonResponse](httpClient, baseURL+RosterServiceAddPersonProcedure, opts...),
		editPerson:           connect.NewClient[EditPersonRequest, PersonResponse](httpClient, baseURL+RosterServiceEditPersonProcedure, opts...),
		removePerson:         connect.NewClient[RemovePersonRequest, PersonResponse](httpClient, baseURL+RosterServiceRemovePersonProcedure, opts...),
		setNote:              connect.NewClient[SetNoteRequest, PersonResponse](httpClient, baseURL+RosterServiceSetNoteProcedure, opts...),
		setTimedResults:      connect.NewClient[SetTimedResultsRequest, PersonResponse](httpClient, baseURL+RosterServiceSetTimedResultsProcedure, opts...),
		clearGroup:           connect.NewClient[ClearGroupRequest, ClearGroupResponse](httpClient, baseURL+RosterServiceClearGroupProcedure, opts...),
		addDate:              connect.NewClient[AddDateRequest, DateResponse](httpClient, baseURL+RosterServiceAddDateProcedure, opts...),
		addRecurringDates:    connect.NewClient[AddRecurringDatesRequest, AddRecurringDatesResponse](httpClient, baseURL+RosterServiceAddRecurringDatesProcedure, opts...),
		removeDate:           connect.NewClient[RemoveDateRequest, DateResponse](httpClient, baseURL+RosterServiceRemoveDateProcedure, opts...),
		activateDate:         connect.NewClient[ActivateDateRequest, RosterResponse](httpClient, baseURL+RosterServiceActivateDateProcedure, opts...),
		deactivateDate:       connect.NewClient[DeactivateDateRequest, RosterResponse](httpClient, baseURL+RosterServiceDeactivateDateProcedure, opts...),
		toggleAttendance:     connect.NewClient[ToggleAttendanceRequest, ToggleAttendanceResponse](httpClient, baseURL+RosterServiceToggleAttendanceProcedure, opts...),
		setAllAttendance:     connect.NewClient[SetAllAttendanceRequest, SetAllAttendanceResponse](httpClient, baseURL+RosterServiceSetAllAttendanceProcedure, opts...),
		exportCSV:            connect.NewClient[ExportCSVRequest, ExportResponse](httpClient, baseURL+RosterServiceExportCSVProcedure, opts...),
		exportCalendar:       connect.NewClient[ExportCalendarRequest, ExportResponse](httpClient, baseURL+RosterServiceExportCalendarProcedure, opts...),
		getAttendanceSummary: connect.NewClient[GetAttendanceSummaryRequest, GetAttendanceSummaryResponse](httpClient, baseURL+RosterServiceGetAttendanceSummaryProcedure, opts...),
	}
}

func (c *RosterServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *RosterServiceClient) SelectGroup(ctx context.Context, req *connect.Request[SelectGroupRequest]) (*connect.Response[RosterResponse], error) {
	return c.selectGroup.CallUnary(ctx, req)
}

func (c *RosterServiceClient) GetRoster(ctx context.Context, req *connect.Request[GetRosterRequest]) (*connect.Response[RosterResponse], error) {
	return c.getRoster.CallUnary(ctx, req)
}

func (c *RosterServiceClient) AddPerson(ctx context.Context, req *connect.Request[AddPersonRequest]) (*connect.Response[PersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *RosterServiceClient) EditPerson(ctx context.Context, req *connect.Request[EditPersonRequest]) (*connect.Response[PersonResponse], error) {
	return c.editPerson.CallUnary(ctx, req)
}

func (c *RosterServiceClient) RemovePerson(ctx context.Context, req *connect.Request[RemovePersonRequest]) (*connect.Response[PersonResponse], error) {
	return c.removePerson.CallUnary(ctx, req)
}

func (c *RosterServiceClient) SetNote(ctx context.Context, req *connect.Request[SetNoteRequest]) (*connect.Response[PersonResponse], error) {
	return c.setNote.CallUnary(ctx, req)
}

func (c *RosterServiceClient) SetTimedResults(ctx context.Context, req *connect.Request[SetTimedResultsRequest]) (*connect.Response[PersonResponse], error) {
	return c.setTimedResults.CallUnary(ctx, req)
}

func (c *RosterServiceClient) ClearGroup(ctx context.Context, req *connect.Request[ClearGroupRequest]) (*connect.Response[ClearGroupResponse], error) {
	return c.clearGroup.CallUnary(ctx, req)
}

func (c *RosterServiceClient) AddDate(ctx context.Context, req *connect.Request[AddDateRequest]) (*connect.Response[DateResponse], error) {
	return c.addDate.CallUnary(ctx, req)
}

func (c *RosterServiceClient) AddRecurringDates(ctx context.Context, req *connect.Request[AddRecurringDatesRequest]) (*connect.Response[AddRecurringDatesResponse], error) {
	return c.addRecurringDates.CallUnary(ctx, req)
}

func (c *RosterServiceClient) RemoveDate(ctx context.Context, req *connect.Request[RemoveDateRequest]) (*connect.Response[DateResponse], error) {
	return c.removeDate.CallUnary(ctx, req)
}

func (c *RosterServiceClient) ActivateDate(ctx context.Context, req *connect.Request[ActivateDateRequest]) (*connect.Response[RosterResponse], error) {
	return c.activateDate.CallUnary(ctx, req)
}

func (c *RosterServiceClient) DeactivateDate(ctx context.Context, req *connect.Request[DeactivateDateRequest]) (*connect.Response[RosterResponse], error) {
	return c.deactivateDate.CallUnary(ctx, req)
}

func (c *RosterServiceClient) ToggleAttendance(ctx context.Context, req *connect.Request[ToggleAttendanceRequest]) (*connect.Response[ToggleAttendanceResponse], error) {
	return c.toggleAttendance.CallUnary(ctx, req)
}

func (c *RosterServiceClient) SetAllAttendance(ctx context.Context, req *connect.Request[SetAllAttendanceRequest]) (*connect.Response[SetAllAttendanceResponse], error) {
	return c.setAllAttendance.CallUnary(ctx, req)
}

func (c *RosterServiceClient) ExportCSV(ctx context.Context, req *connect.Request[ExportCSVRequest]) (*connect.Response[ExportResponse], error) {
	return c.exportCSV.CallUnary(ctx, req)
}

func (c *RosterServiceClient) ExportCalendar(ctx context.Context, req *connect.Request[ExportCalendarRequest]) (*connect.Response[ExportResponse], error) {
	return c.exportCalendar.CallUnary(ctx, req)
}

func (c *RosterServiceClient) GetAttendanceSummary(ctx context.Context, req *connect.Request[GetAttendanceSummaryRequest]) (*connect.Response[GetAttendanceSummaryResponse], error) {
	return c.getAttendanceSummary.CallUnary(ctx, req)
}

// AuthServiceClient calls AuthService on a remote server.
type AuthServiceClient struct {
	login      *connect.Client[LoginRequest, LoginResponse]
	logout     *connect.Client[LogoutRequest, LogoutResponse]
	getSession *connect.Client[GetSessionRequest, GetSessionResponse]
}

// NewAuthServiceClient constructs a client for the server at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = withClientCodec(opts)
	return &AuthServiceClient{
		login:      connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		logout:     connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
		getSession: connect.NewClient[GetSessionRequest, GetSessionResponse](httpClient, baseURL+AuthServiceGetSessionProcedure, opts...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

// GroupStoreServiceClient calls GroupStoreService on a remote server.
type GroupStoreServiceClient struct {
	pull    *connect.Client[PullRequest, PullResponse]
	replace *connect.Client[ReplaceRequest, ReplaceResponse]
}

// NewGroupStoreServiceClient constructs a client for the server at baseURL.
func NewGroupStoreServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupStoreServiceClient {
	opts = withClientCodec(opts)
	return &GroupStoreServiceClient{
		pull:    connect.NewClient[PullRequest, PullResponse](httpClient, baseURL+GroupStoreServicePullProcedure, opts...),
		replace: connect.NewClient[ReplaceRequest, ReplaceResponse](httpClient, baseURL+GroupStoreServiceReplaceProcedure, opts...),
	}
}

func (c *GroupStoreServiceClient) Pull(ctx context.Context, req *connect.Request[PullRequest]) (*connect.Response[PullResponse], error) {
	return c.pull.CallUnary(ctx, req)
}

func (c *GroupStoreServiceClient) Replace(ctx context.Context, req *connect.Request[ReplaceRequest]) (*connect.Response[ReplaceResponse], error) {
	return c.replace.CallUnary(ctx, req)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithCodec()}, opts...)
}
