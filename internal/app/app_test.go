package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/attendance/internal/metrics"
	"github.com/mmynk/attendance/internal/mirror"
	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/remote"
	"github.com/mmynk/attendance/internal/roster"
)

var fixedNow = time.Date(2026, time.October, 18, 12, 30, 0, 0, time.UTC)

// memRemote is an in-memory remote.Remote.
type memRemote struct {
	mu       sync.Mutex
	groups   map[string]*models.GroupRecord
	fail     bool
	replaces int
}

func newMemRemote() *memRemote {
	return &memRemote{groups: map[string]*models.GroupRecord{}}
}

func (m *memRemote) Pull(ctx context.Context) (map[string]*models.GroupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, fmt.Errorf("%w: offline", remote.ErrTransport)
	}
	out := make(map[string]*models.GroupRecord, len(m.groups))
	for name, g := range m.groups {
		out[name] = g.Clone()
	}
	return out, nil
}

func (m *memRemote) Replace(ctx context.Context, group string, record *models.GroupRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("%w: offline", remote.ErrTransport)
	}
	m.replaces++
	m.groups[group] = record.Clone()
	return nil
}

func (m *memRemote) get(group string) *models.GroupRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groups[group]
}

func newTestApp(t *testing.T, r remote.Remote) (*App, *mirror.Mirror) {
	t.Helper()
	mr := mirror.New(filepath.Join(t.TempDir(), "mirror.json"))
	a := New(r, mr, metrics.New(), Options{
		Groups:   []string{"A", "B"},
		Features: roster.AllFeatures,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, a.Bootstrap(context.Background()))
	return a, mr
}

func TestSessionScenario(t *testing.T) {
	r := newMemRemote()
	a, mr := newTestApp(t, r)
	ctx := context.Background()
	const sid = "s1"

	view, warning, err := a.SelectGroup(ctx, sid, "A")
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, "A", view.Group)
	require.NotNil(t, r.get("A"), "selecting a new group saves it")

	date, _, err := a.AddDate(ctx, sid, "2099-01-01")
	require.NoError(t, err)

	view, _, err = a.ActivateDate(ctx, sid, date.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.True(t, view.Recorded["2099-01-01"])

	jan, _, err := a.AddPerson(ctx, sid, "Jan Kowalski", intPtr(10), "123456789")
	require.NoError(t, err)

	view, _, err = a.ActivateDate(ctx, sid, date.ID)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	require.NotNil(t, view.Rows[0].Present)
	assert.False(t, *view.Rows[0].Present)

	entry, stats, _, err := a.Toggle(ctx, sid, jan.ID)
	require.NoError(t, err)
	assert.True(t, entry.Present)
	assert.Equal(t, roster.Stats{Total: 1, Present: 1, Absent: 0, DateActive: true, Percentage: 100}, stats)

	out, err := a.ExportCSV(sid)
	require.NoError(t, err)
	assert.Contains(t, string(out.Content), `"Jan Kowalski","10","123456789","Obecny"`)
	assert.Contains(t, string(out.Content), "Procent obecnosci: 100.0%")

	stored := r.get("A")
	require.NotNil(t, stored)
	assert.True(t, stored.Attendance["2099-01-01"][0].Present)

	mirrored, err := mr.Load()
	require.NoError(t, err)
	assert.True(t, mirrored["A"].Attendance["2099-01-01"][0].Present)
}

func TestBootstrap_FallsBackToMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.json")
	saved := models.NewGroupRecord("A")
	saved.People = append(saved.People, models.Person{ID: "p1", Name: "Jan Kowalski"})
	require.NoError(t, mirror.New(path).Save(map[string]*models.GroupRecord{"A": saved}))

	r := newMemRemote()
	r.fail = true
	a := New(r, mirror.New(path), nil, Options{Groups: []string{"A"}, Features: roster.AllFeatures})
	require.NoError(t, a.Bootstrap(context.Background()))

	infos := a.ListGroups("s1")
	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].People)
}

func TestBootstrap_FailsWithoutRemoteAndMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	r := newMemRemote()
	r.fail = true
	a := New(r, mirror.New(path), nil, Options{Groups: []string{"A"}})
	assert.Error(t, a.Bootstrap(context.Background()))
}

func TestTransportFailureKeepsLocalChange(t *testing.T) {
	r := newMemRemote()
	a, _ := newTestApp(t, r)
	ctx := context.Background()

	_, _, err := a.SelectGroup(ctx, "s1", "A")
	require.NoError(t, err)

	r.mu.Lock()
	r.fail = true
	r.mu.Unlock()

	person, warning, err := a.AddPerson(ctx, "s1", "Anna Nowak", nil, "")
	require.NoError(t, err)
	assert.NotEmpty(t, warning)
	assert.Equal(t, "Anna Nowak", person.Name)

	view, err := a.Roster("s1", models.FilterAll)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Empty(t, r.get("A").People)
}

func TestNoGroup(t *testing.T) {
	a, _ := newTestApp(t, newMemRemote())
	ctx := context.Background()

	_, _, err := a.AddPerson(ctx, "s1", "Jan Kowalski", nil, "")
	assert.True(t, errors.Is(err, roster.ErrNoGroup))

	_, err = a.Roster("s1", models.FilterAll)
	assert.True(t, errors.Is(err, roster.ErrNoGroup))

	_, _, err = a.SelectGroup(ctx, "s1", "Z")
	assert.True(t, errors.Is(err, roster.ErrNoGroup))

	_, err = a.ExportCSV("s1")
	assert.True(t, errors.Is(err, roster.ErrNoGroup))
}

func TestSelectGroupClearsActiveDate(t *testing.T) {
	a, _ := newTestApp(t, newMemRemote())
	ctx := context.Background()

	a.SelectGroup(ctx, "s1", "A")
	date, _, err := a.AddDate(ctx, "s1", "2099-01-01")
	require.NoError(t, err)
	_, _, err = a.ActivateDate(ctx, "s1", date.ID)
	require.NoError(t, err)
	assert.Equal(t, date.ID, a.Session("s1").ActiveDateID)

	a.SelectGroup(ctx, "s1", "B")
	a.SelectGroup(ctx, "s1", "A")
	assert.Empty(t, a.Session("s1").ActiveDateID)

	_, _, _, err = a.Toggle(ctx, "s1", "anyone")
	assert.True(t, errors.Is(err, roster.ErrNoActiveDate))
}

func TestSessionsAreIndependent(t *testing.T) {
	a, _ := newTestApp(t, newMemRemote())
	ctx := context.Background()

	a.SelectGroup(ctx, "s1", "A")
	a.SelectGroup(ctx, "s2", "B")
	_, _, err := a.AddPerson(ctx, "s1", "Jan Kowalski", nil, "")
	require.NoError(t, err)

	v1, err := a.Roster("s1", models.FilterAll)
	require.NoError(t, err)
	v2, err := a.Roster("s2", models.FilterAll)
	require.NoError(t, err)
	assert.Len(t, v1.Rows, 1)
	assert.Empty(t, v2.Rows)

	a.EndSession("s1")
	assert.Equal(t, Session{}, a.Session("s1"))
}

func TestDeactivateDate(t *testing.T) {
	a, _ := newTestApp(t, newMemRemote())
	ctx := context.Background()

	a.SelectGroup(ctx, "s1", "A")
	a.AddPerson(ctx, "s1", "Jan Kowalski", nil, "")
	date, _, _ := a.AddDate(ctx, "s1", "2099-01-01")
	a.ActivateDate(ctx, "s1", date.ID)

	view, err := a.DeactivateDate("s1")
	require.NoError(t, err)
	assert.Empty(t, view.ActiveDateID)
	assert.False(t, view.Stats.DateActive)
	assert.Nil(t, view.Rows[0].Present)
}

func TestMerge(t *testing.T) {
	r := newMemRemote()
	a, _ := newTestApp(t, r)
	ctx := context.Background()

	a.SelectGroup(ctx, "s1", "A")
	date, _, err := a.AddDate(ctx, "s1", "2099-01-01")
	require.NoError(t, err)
	_, _, err = a.ActivateDate(ctx, "s1", date.ID)
	require.NoError(t, err)

	pulled, err := r.Pull(ctx)
	require.NoError(t, err)
	assert.False(t, a.Merge(pulled), "identical data must not count as a change")

	// Another server removes the date and adds a person.
	changed := pulled["A"].Clone()
	changed.Dates = []models.TrackedDate{}
	changed.Attendance = map[string][]models.AttendanceEntry{}
	changed.People = append(changed.People, models.Person{ID: "p9", Name: "Ewa Ślusarz", AddedAt: fixedNow})
	pulled["A"] = changed

	assert.True(t, a.Merge(pulled))
	assert.Empty(t, a.Session("s1").ActiveDateID)

	view, err := a.Roster("s1", models.FilterAll)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Ewa Ślusarz", view.Rows[0].Name)
}

// tickingClock returns a time one second later on every call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := fixedNow
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func TestMerge_KeepsNewerLocalSave(t *testing.T) {
	r := newMemRemote()
	a := New(r, nil, nil, Options{
		Groups:   []string{"A"},
		Features: roster.AllFeatures,
		Location: time.UTC,
		Now:      tickingClock(),
	})
	ctx := context.Background()
	require.NoError(t, a.Bootstrap(ctx))

	_, _, err := a.SelectGroup(ctx, "s1", "A")
	require.NoError(t, err)

	// A pull that started before the edit below returns after it.
	stale, err := r.Pull(ctx)
	require.NoError(t, err)

	_, _, err = a.AddPerson(ctx, "s1", "Jan Kowalski", nil, "")
	require.NoError(t, err)

	assert.False(t, a.Merge(stale), "an older pull must not replace a newer local save")

	view, err := a.Roster("s1", models.FilterAll)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Jan Kowalski", view.Rows[0].Name)

	_, _, err = a.AddPerson(ctx, "s1", "Anna Nowak", nil, "")
	require.NoError(t, err)
	assert.Len(t, r.get("A").People, 2)

	// A row saved later by another server still wins.
	newer := r.get("A").Clone()
	newer.People = newer.People[:1]
	newer.UpdatedAt = newer.UpdatedAt.Add(time.Minute)
	assert.True(t, a.Merge(map[string]*models.GroupRecord{"A": newer}))

	view, err = a.Roster("s1", models.FilterAll)
	require.NoError(t, err)
	assert.Len(t, view.Rows, 1)
}

func TestMerge_KeepsLocalOnlyGroups(t *testing.T) {
	r := newMemRemote()
	a, _ := newTestApp(t, r)
	ctx := context.Background()

	r.mu.Lock()
	r.fail = true
	r.mu.Unlock()

	_, warning, err := a.SelectGroup(ctx, "s1", "A")
	require.NoError(t, err)
	assert.NotEmpty(t, warning, "the new group never reached the remote store")

	assert.False(t, a.Merge(map[string]*models.GroupRecord{}))

	_, _, err = a.AddPerson(ctx, "s1", "Jan Kowalski", nil, "")
	require.NoError(t, err)

	pulled := map[string]*models.GroupRecord{"B": models.NewGroupRecord("B")}
	assert.True(t, a.Merge(pulled))

	view, err := a.Roster("s1", models.FilterAll)
	require.NoError(t, err)
	assert.Len(t, view.Rows, 1)
}

func TestConcurrentMutations(t *testing.T) {
	r := newMemRemote()
	a, _ := newTestApp(t, r)
	ctx := context.Background()
	a.SelectGroup(ctx, "s1", "A")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := a.AddPerson(ctx, "s1", fmt.Sprintf("Osoba Numer%d", i), nil, "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	view, err := a.Roster("s1", models.FilterAll)
	require.NoError(t, err)
	assert.Len(t, view.Rows, 20)
	for _, row := range view.Rows {
		assert.True(t, strings.HasPrefix(row.Name, "Osoba"))
	}
}

func intPtr(v int) *int { return &v }
