// Package mirror keeps a local JSON copy of every group record. The copy is
// written on each save and read at startup when the remote store cannot be reached.
package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmynk/attendance/internal/models"
)

// entry is the mirrored shape of one group.
type entry struct {
	People         []models.Person                     `json:"people"`
	Dates          []models.TrackedDate                `json:"dates"`
	AttendanceData map[string][]models.AttendanceEntry `json:"attendanceData"`
}

// Mirror reads and writes the mirror file at Path.
type Mirror struct {
	Path string
}

// New returns a mirror stored at path.
func New(path string) *Mirror {
	return &Mirror{Path: path}
}

// Encode renders groups in the mirror format. Output is deterministic, so two
// encodings can be compared to detect changes.
func Encode(groups map[string]*models.GroupRecord) ([]byte, error) {
	out := make(map[string]entry, len(groups))
	for name, g := range groups {
		g.Normalize()
		out[name] = entry{People: g.People, Dates: g.Dates, AttendanceData: g.Attendance}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mirror: %w", err)
	}
	return data, nil
}

// Decode parses mirror data into group records.
func Decode(data []byte) (map[string]*models.GroupRecord, error) {
	var in map[string]entry
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to decode mirror: %w", err)
	}

	groups := make(map[string]*models.GroupRecord, len(in))
	for name, e := range in {
		g := &models.GroupRecord{
			GroupName:  name,
			People:     e.People,
			Dates:      e.Dates,
			Attendance: e.AttendanceData,
		}
		g.Normalize()
		groups[name] = g
	}
	return groups, nil
}

// Save writes all groups to the mirror file.
func (m *Mirror) Save(groups map[string]*models.GroupRecord) error {
	if m == nil || m.Path == "" {
		return nil
	}
	data, err := Encode(groups)
	if err != nil {
		return err
	}
	return m.Write(data)
}

// Write atomically replaces the mirror file with data.
func (m *Mirror) Write(data []byte) error {
	if m == nil || m.Path == "" {
		return nil
	}

	dir := filepath.Dir(m.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create mirror directory: %w", err)
	}

	// Write to a temp file in the same directory then rename.
	tmp, err := os.CreateTemp(dir, ".attendance-mirror-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create mirror temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write mirror: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync mirror: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close mirror: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to chmod mirror: %w", err)
	}
	if err := os.Rename(tmpName, m.Path); err != nil {
		return fmt.Errorf("failed to replace mirror: %w", err)
	}
	return nil
}

// Load reads the mirror file. A missing file yields an empty map.
func (m *Mirror) Load() (map[string]*models.GroupRecord, error) {
	if m == nil || m.Path == "" {
		return map[string]*models.GroupRecord{}, nil
	}

	data, err := os.ReadFile(m.Path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*models.GroupRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mirror: %w", err)
	}
	return Decode(data)
}
