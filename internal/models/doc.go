// Package models defines the core domain models for the attendance roster.
//
// # Models
//
//   - GroupRecord: one class group with its roster, tracked dates and attendance.
//     It is the unit of remote persistence: a group is always written as a whole.
//   - Person: one roster member of a group.
//   - TrackedDate: a calendar date on which the group meets.
//   - AttendanceEntry: presence of one person on one date, with a snapshot of the
//     person's identity taken when the entry was created.
//
// # Design Principles
//
// 1. **Roster owns identity**: name, age and phone live on Person; attendance
// entries only keep a snapshot for the historical record.
// 2. **IDs over pointers**: relationships use ID strings, never pointers.
// 3. **Stable wire shape**: JSON tags match the persisted record shape, so the same
// types are stored in the database, the local mirror and the sync payloads.
package models
