// Package app holds the application state of the attendance server: the
// cached group records, the per-session group and date selection, and the
// save pipeline that writes the local mirror and the remote store after
// every change.
package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mmynk/attendance/internal/metrics"
	"github.com/mmynk/attendance/internal/mirror"
	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/remote"
	"github.com/mmynk/attendance/internal/roster"
)

// Options configures an App.
type Options struct {
	// Groups are the group names an operator may select, in display order.
	Groups   []string
	Features roster.Features
	// Location decides what "today" is for date validation.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session is the selection of one logged-in operator.
type Session struct {
	Group        string
	ActiveDateID string
}

// App is the application state shared by all request handlers.
//
// All reads and writes of groups and sessions happen under mu. The remote
// Replace call of a save runs after mu is released on a cloned record.
type App struct {
	remote  remote.Remote
	mirror  *mirror.Mirror
	metrics *metrics.Metrics
	opts    Options

	mu       sync.Mutex
	groups   map[string]*models.GroupRecord
	sessions map[string]*Session
}

// New creates the application state. mirror and m may be nil.
func New(r remote.Remote, m *mirror.Mirror, met *metrics.Metrics, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &App{
		remote:   r,
		mirror:   m,
		metrics:  met,
		opts:     opts,
		groups:   map[string]*models.GroupRecord{},
		sessions: map[string]*Session{},
	}
}

// Bootstrap loads the initial state from the remote store. If the pull
// fails, the local mirror is used instead; it fails only if both do.
func (a *App) Bootstrap(ctx context.Context) error {
	groups, err := a.remote.Pull(ctx)
	a.metrics.Pull(err)
	if err != nil {
		slog.Warn("Initial pull failed, loading local mirror", "error", err)
		groups, err = a.mirror.Load()
		if err != nil {
			return fmt.Errorf("failed to load state from remote and mirror: %w", err)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.groups = groups
	a.metrics.SetGroups(len(a.groups))
	slog.Info("State loaded", "groups", len(groups))
	return nil
}

// Merge applies pulled groups to the cache one group at a time and clears
// active dates that no longer exist. A pulled group is skipped when the local
// record was saved after it. Groups that exist only locally are kept. It
// reports whether anything changed.
func (a *App) Merge(pulled map[string]*models.GroupRecord) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	changed := false
	for name, g := range pulled {
		if local, ok := a.groups[name]; ok {
			if local.UpdatedAt.After(g.UpdatedAt) {
				slog.Debug("Keeping newer local save", "group", name,
					"local", local.UpdatedAt, "remote", g.UpdatedAt)
				continue
			}
			same, err := sameContent(name, local, g)
			if err != nil {
				slog.Error("Failed to compare pulled group", "group", name, "error", err)
				continue
			}
			if same {
				continue
			}
		}
		a.groups[name] = g.Clone()
		changed = true
	}
	if !changed {
		return false
	}

	for id, session := range a.sessions {
		if session.ActiveDateID == "" {
			continue
		}
		st := a.stateFor(session)
		if st == nil {
			session.ActiveDateID = ""
			continue
		}
		if _, ok := st.ActiveDate(); !ok {
			slog.Info("Active date removed remotely, clearing selection", "session", id, "group", session.Group)
			session.ActiveDateID = ""
		}
	}
	a.metrics.SetGroups(len(a.groups))
	return true
}

// sameContent compares the persisted shape of two records of one group.
func sameContent(name string, a, b *models.GroupRecord) (bool, error) {
	x, err := mirror.Encode(map[string]*models.GroupRecord{name: a})
	if err != nil {
		return false, err
	}
	y, err := mirror.Encode(map[string]*models.GroupRecord{name: b})
	if err != nil {
		return false, err
	}
	return bytes.Equal(x, y), nil
}

// GroupNames returns the selectable group names.
func (a *App) GroupNames() []string {
	return slices.Clone(a.opts.Groups)
}

// Features returns the enabled optional features.
func (a *App) Features() roster.Features {
	return a.opts.Features
}

// Session returns a copy of the session's selection.
func (a *App) Session(sessionID string) Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.sessions[sessionID]; ok {
		return *s
	}
	return Session{}
}

// EndSession forgets a session's selection.
func (a *App) EndSession(sessionID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, sessionID)
}

// session returns the session, creating it. Callers hold mu.
func (a *App) session(sessionID string) *Session {
	s, ok := a.sessions[sessionID]
	if !ok {
		s = &Session{}
		a.sessions[sessionID] = s
	}
	return s
}

// stateFor wraps the session's group in a roster.State. Callers hold mu.
// Returns nil if the session has no group or the group is not loaded.
func (a *App) stateFor(session *Session) *roster.State {
	if session.Group == "" {
		return nil
	}
	group, ok := a.groups[session.Group]
	if !ok {
		return nil
	}
	st := roster.NewState(group)
	st.ActiveDateID = session.ActiveDateID
	st.Features = a.opts.Features
	st.Now = a.opts.Now
	st.Location = a.opts.Location
	return st
}

// inspect runs a read-only fn against the session's state.
func (a *App) inspect(sessionID string, fn func(*roster.State) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := a.stateFor(a.session(sessionID))
	if st == nil {
		return roster.ErrNoGroup
	}
	return fn(st)
}

// mutate runs fn against the session's state and, if it succeeds, saves the
// group: the mirror is written under the lock, then the record is sent to
// the remote store. A failed remote save is reported as a warning; the
// local change is kept.
func (a *App) mutate(ctx context.Context, sessionID, op string, fn func(*roster.State) error) (string, error) {
	a.mu.Lock()
	session := a.session(sessionID)
	st := a.stateFor(session)
	if st == nil {
		a.mu.Unlock()
		a.metrics.Operation(op, roster.ErrNoGroup)
		return "", roster.ErrNoGroup
	}

	if err := fn(st); err != nil {
		a.mu.Unlock()
		a.metrics.Operation(op, err)
		return "", err
	}
	session.ActiveDateID = st.ActiveDateID
	st.Group.UpdatedAt = a.opts.Now().UTC()

	record := st.Group.Clone()
	a.saveMirrorLocked()
	a.mu.Unlock()

	a.metrics.Operation(op, nil)
	return a.push(ctx, record), nil
}

// saveMirrorLocked writes all groups to the mirror. Callers hold mu.
func (a *App) saveMirrorLocked() {
	if err := a.mirror.Save(a.groups); err != nil {
		slog.Error("Failed to write local mirror", "error", err)
	}
}

// push sends one record to the remote store and returns a warning on failure.
func (a *App) push(ctx context.Context, record *models.GroupRecord) string {
	started := time.Now()
	err := a.remote.Replace(ctx, record.GroupName, record)
	a.metrics.Replace(started, err)
	if err != nil {
		slog.Error("Failed to save group to remote store", "group", record.GroupName, "error", err)
		return fmt.Sprintf("zmiany zapisano lokalnie, ale nie na serwerze: %v", err)
	}
	return ""
}
