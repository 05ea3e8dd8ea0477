// Package api defines the Connect RPC surface of the attendance server: the
// operator facing RosterService and AuthService, and the GroupStoreService
// that other servers pull from and replace into.
//
// Messages are plain structs serialized with the JSON codec in this package.
package api

import (
	"encoding/json"
	"time"
)

// Fully qualified service names.
const (
	RosterServiceName     = "attendance.v1.RosterService"
	AuthServiceName       = "attendance.v1.AuthService"
	GroupStoreServiceName = "attendance.v1.GroupStoreService"
)

// Procedure paths of RosterService.
const (
	RosterServiceListGroupsProcedure           = "/attendance.v1.RosterService/ListGroups"
	RosterServiceSelectGroupProcedure          = "/attendance.v1.RosterService/SelectGroup"
	RosterServiceGetRosterProcedure            = "/attendance.v1.RosterService/GetRoster"
	RosterServiceAddPersonProcedure            = "/attendance.v1.RosterService/AddPerson"
	RosterServiceEditPersonProcedure           = "/attendance.v1.RosterService/EditPerson"
	RosterServiceRemovePersonProcedure         = "/attendance.v1.RosterService/RemovePerson"
	RosterServiceSetNoteProcedure              = "/attendance.v1.RosterService/SetNote"
	RosterServiceSetTimedResultsProcedure      = "/attendance.v1.RosterService/SetTimedResults"
	RosterServiceClearGroupProcedure           = "/attendance.v1.RosterService/ClearGroup"
	RosterServiceAddDateProcedure              = "/attendance.v1.RosterService/AddDate"
	RosterServiceAddRecurringDatesProcedure    = "/attendance.v1.RosterService/AddRecurringDates"
	RosterServiceRemoveDateProcedure           = "/attendance.v1.RosterService/RemoveDate"
	RosterServiceActivateDateProcedure         = "/attendance.v1.RosterService/ActivateDate"
	RosterServiceDeactivateDateProcedure       = "/attendance.v1.RosterService/DeactivateDate"
	RosterServiceToggleAttendanceProcedure     = "/attendance.v1.RosterService/ToggleAttendance"
	RosterServiceSetAllAttendanceProcedure     = "/attendance.v1.RosterService/SetAllAttendance"
	RosterServiceExportCSVProcedure            = "/attendance.v1.RosterService/ExportCSV"
	RosterServiceExportCalendarProcedure       = "/attendance.v1.RosterService/ExportCalendar"
	RosterServiceGetAttendanceSummaryProcedure = "/attendance.v1.RosterService/GetAttendanceSummary"
)

// Procedure paths of AuthService.
const (
	AuthServiceLoginProcedure      = "/attendance.v1.AuthService/Login"
	AuthServiceLogoutProcedure     = "/attendance.v1.AuthService/Logout"
	AuthServiceGetSessionProcedure = "/attendance.v1.AuthService/GetSession"
)

// Procedure paths of GroupStoreService.
const (
	GroupStoreServicePullProcedure    = "/attendance.v1.GroupStoreService/Pull"
	GroupStoreServiceReplaceProcedure = "/attendance.v1.GroupStoreService/Replace"
)

// Person is a roster member.
type Person struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Age          *int              `json:"age,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Note         string            `json:"note,omitempty"`
	TimedResults map[string]string `json:"timedResults,omitempty"`
	AddedAt      time.Time         `json:"addedAt"`
}

// Row is one displayed roster line. Present is omitted when no date is active.
type Row struct {
	PersonID     string            `json:"personId"`
	Name         string            `json:"name"`
	Age          *int              `json:"age,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Note         string            `json:"note,omitempty"`
	TimedResults map[string]string `json:"timedResults,omitempty"`
	AddedAt      time.Time         `json:"addedAt"`
	Present      *bool             `json:"present,omitempty"`
}

// TrackedDate is a calendar date of the group.
type TrackedDate struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Display   string    `json:"display"`
	CreatedAt time.Time `json:"createdAt"`
	Active    bool      `json:"active"`
	Recorded  bool      `json:"recorded"`
}

// Stats summarizes the current view. Present, Absent and Percentage are
// omitted when no date is active.
type Stats struct {
	Total      int      `json:"total"`
	Present    *int     `json:"present,omitempty"`
	Absent     *int     `json:"absent,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// Features reports which optional features the server has enabled.
type Features struct {
	Notes          bool `json:"notes"`
	TimedResults   bool `json:"timedResults"`
	RecurringDates bool `json:"recurringDates"`
}

// Roster is the full view of the selected group for one session.
type Roster struct {
	Group        string        `json:"group"`
	Rows         []Row         `json:"rows"`
	Dates        []TrackedDate `json:"dates"`
	ActiveDateID string        `json:"activeDateId,omitempty"`
	Filter       string        `json:"filter"`
	Stats        Stats         `json:"stats"`
	Features     Features      `json:"features"`
}

// GroupInfo is one entry of the group picker.
type GroupInfo struct {
	Name     string `json:"name"`
	People   int    `json:"people"`
	Dates    int    `json:"dates"`
	Selected bool   `json:"selected"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []GroupInfo `json:"groups"`
}

type SelectGroupRequest struct {
	Group string `json:"group"`
}

type GetRosterRequest struct {
	// Filter is one of "all", "present", "absent". Empty means "all".
	Filter string `json:"filter"`
}

// RosterResponse returns the refreshed view. Warning is set when the change
// was applied locally but could not be sent to the remote store.
type RosterResponse struct {
	Roster  Roster `json:"roster"`
	Warning string `json:"warning,omitempty"`
}

type AddPersonRequest struct {
	Name  string `json:"name"`
	Age   *int   `json:"age,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type EditPersonRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Age   *int   `json:"age,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type RemovePersonRequest struct {
	ID string `json:"id"`
}

type SetNoteRequest struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

type SetTimedResultsRequest struct {
	ID      string            `json:"id"`
	Results map[string]string `json:"results"`
}

type PersonResponse struct {
	Person  Person `json:"person"`
	Warning string `json:"warning,omitempty"`
}

type ClearGroupRequest struct{}

type ClearGroupResponse struct {
	Removed int    `json:"removed"`
	Warning string `json:"warning,omitempty"`
}

type AddDateRequest struct {
	// Date is an ISO calendar date (YYYY-MM-DD).
	Date string `json:"date"`
}

type AddRecurringDatesRequest struct {
	// Rule is an RFC 5545 recurrence rule such as "FREQ=WEEKLY;BYDAY=MO,WE".
	Rule string `json:"rule"`
	// Until is the last ISO calendar date to consider.
	Until string `json:"until"`
}

type AddRecurringDatesResponse struct {
	Dates   []TrackedDate `json:"dates"`
	Warning string        `json:"warning,omitempty"`
}

type RemoveDateRequest struct {
	ID string `json:"id"`
}

type DateResponse struct {
	Date    TrackedDate `json:"date"`
	Warning string      `json:"warning,omitempty"`
}

type ActivateDateRequest struct {
	ID string `json:"id"`
}

type DeactivateDateRequest struct{}

type ToggleAttendanceRequest struct {
	PersonID string `json:"personId"`
}

type ToggleAttendanceResponse struct {
	PersonID string `json:"personId"`
	Present  bool   `json:"present"`
	Stats    Stats  `json:"stats"`
	Warning  string `json:"warning,omitempty"`
}

type SetAllAttendanceRequest struct {
	Present bool `json:"present"`
}

type SetAllAttendanceResponse struct {
	Updated int    `json:"updated"`
	Stats   Stats  `json:"stats"`
	Warning string `json:"warning,omitempty"`
}

type ExportCSVRequest struct{}

type ExportCalendarRequest struct{}

// ExportResponse carries a rendered file. Content is base64 in JSON.
type ExportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}

type GetAttendanceSummaryRequest struct{}

// PersonSummary is one person's attendance across recorded dates.
type PersonSummary struct {
	PersonID string  `json:"personId"`
	Name     string  `json:"name"`
	Present  int     `json:"present"`
	Recorded int     `json:"recorded"`
	Rate     float64 `json:"rate"`
	LastSeen string  `json:"lastSeen,omitempty"`
}

type GetAttendanceSummaryResponse struct {
	People []PersonSummary `json:"people"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetSessionRequest struct{}

type GetSessionResponse struct {
	Username     string    `json:"username"`
	Group        string    `json:"group,omitempty"`
	ActiveDateID string    `json:"activeDateId,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type PullRequest struct{}

// PullResponse holds every stored group record keyed by group name, each in
// the persisted record JSON shape.
type PullResponse struct {
	Groups map[string]json.RawMessage `json:"groups"`
}

type ReplaceRequest struct {
	Group  string          `json:"group"`
	Record json.RawMessage `json:"record"`
}

type ReplaceResponse struct {
	UpdatedAt time.Time `json:"updatedAt"`
}
