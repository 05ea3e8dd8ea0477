package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmynk/attendance/internal/models"
)

// Columns holds the JSON-encoded collections of a group row.
type Columns struct {
	People     string
	Dates      string
	Attendance string
}

// EncodeColumns serializes the collections of a record for storage.
func EncodeColumns(record *models.GroupRecord) (Columns, error) {
	record.Normalize()

	people, err := json.Marshal(record.People)
	if err != nil {
		return Columns{}, fmt.Errorf("failed to encode people: %w", err)
	}
	dates, err := json.Marshal(record.Dates)
	if err != nil {
		return Columns{}, fmt.Errorf("failed to encode dates: %w", err)
	}
	attendance, err := json.Marshal(record.Attendance)
	if err != nil {
		return Columns{}, fmt.Errorf("failed to encode attendance: %w", err)
	}

	return Columns{People: string(people), Dates: string(dates), Attendance: string(attendance)}, nil
}

// DecodeRecord rebuilds a record from a stored row. Empty or null columns
// decode to empty collections.
func DecodeRecord(name string, cols Columns, updatedAt time.Time) (*models.GroupRecord, error) {
	record := &models.GroupRecord{GroupName: name, UpdatedAt: updatedAt}

	if err := decodeColumn(cols.People, &record.People); err != nil {
		return nil, fmt.Errorf("failed to decode people of %q: %w", name, err)
	}
	if err := decodeColumn(cols.Dates, &record.Dates); err != nil {
		return nil, fmt.Errorf("failed to decode dates of %q: %w", name, err)
	}
	if err := decodeColumn(cols.Attendance, &record.Attendance); err != nil {
		return nil, fmt.Errorf("failed to decode attendance of %q: %w", name, err)
	}

	record.Normalize()
	return record, nil
}

func decodeColumn(raw string, dst any) error {
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
