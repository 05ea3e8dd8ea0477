package mirror

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/attendance/internal/models"
)

func sampleGroups() map[string]*models.GroupRecord {
	a := models.NewGroupRecord("A")
	a.People = append(a.People, models.Person{ID: "p1", Name: "Jan Kowalski"})
	a.Dates = append(a.Dates, models.TrackedDate{ID: "d1", Date: "2099-01-01"})
	a.Attendance["2099-01-01"] = []models.AttendanceEntry{{PersonID: "p1", Name: "Jan Kowalski", Present: true}}
	return map[string]*models.GroupRecord{"A": a, "B": models.NewGroupRecord("B")}
}

func TestEncode_Shape(t *testing.T) {
	data, err := Encode(sampleGroups())
	require.NoError(t, err)

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "A")
	assert.Contains(t, raw["A"], "people")
	assert.Contains(t, raw["A"], "dates")
	assert.Contains(t, raw["A"], "attendanceData")
	assert.Len(t, raw["A"], 3)
}

func TestEncode_Deterministic(t *testing.T) {
	first, err := Encode(sampleGroups())
	require.NoError(t, err)
	second, err := Encode(sampleGroups())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "mirror.json")
	m := New(path)

	require.NoError(t, m.Save(sampleGroups()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	groups, err := m.Load()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups["A"].GroupName)
	assert.Equal(t, "Jan Kowalski", groups["A"].People[0].Name)
	assert.True(t, groups["A"].Attendance["2099-01-01"][0].Present)
	assert.NotNil(t, groups["B"].Attendance)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLoad_Missing(t *testing.T) {
	groups, err := New(filepath.Join(t.TempDir(), "none.json")).Load()
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := New(path).Load()
	assert.Error(t, err)
}
