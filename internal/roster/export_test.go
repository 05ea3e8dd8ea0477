package roster

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV_SessionScenario(t *testing.T) {
	s := newTestState()
	date, err := s.AddDate("2099-01-01")
	require.NoError(t, err)

	record, err := s.Activate(date.ID)
	require.NoError(t, err)
	assert.Empty(t, record)

	jan, err := s.AddPerson("Jan Kowalski", intPtr(10), "123456789")
	require.NoError(t, err)

	record, err = s.Activate(date.ID)
	require.NoError(t, err)
	require.Len(t, record, 1)
	assert.False(t, record[0].Present)

	entry, err := s.Toggle(jan.ID)
	require.NoError(t, err)
	assert.True(t, entry.Present)

	out, err := s.ExportCSV()
	require.NoError(t, err)
	assert.Equal(t, "lista-obecnosci-2099-01-01.csv", out.Filename)

	lines := strings.Split(string(out.Content), "\n")
	assert.Equal(t, "Lista Obecnosci - czwartek, 1 stycznia 2099 12:30:00", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, CSVHeader, lines[2])
	assert.Equal(t,
		`"Jan Kowalski","10","123456789","Obecny","Brak notatki","Brak czasów","18.10.2026"`,
		lines[3])

	content := string(out.Content)
	assert.Contains(t, content, "Wszystkich: 1\n")
	assert.Contains(t, content, "Obecnych: 1\n")
	assert.Contains(t, content, "Nieobecnych: 0\n")
	assert.True(t, strings.HasSuffix(content, "Procent obecnosci: 100.0%"))
}

func TestExportCSV_WithoutActiveDate(t *testing.T) {
	s := newTestState()
	p, err := s.AddPerson(`Ola "Rybka" Zielińska`, nil, "")
	require.NoError(t, err)
	_, err = s.SetNote(p.ID, "lubi grzbietowy")
	require.NoError(t, err)
	_, err = s.SetTimedResults(p.ID, map[string]string{"100": "1:40.2", "25": "0:19.8"})
	require.NoError(t, err)

	out, err := s.ExportCSV()
	require.NoError(t, err)
	assert.Equal(t, "lista-obecnosci-18-10-2026.csv", out.Filename)

	lines := strings.Split(string(out.Content), "\n")
	assert.Equal(t, "Lista Obecnosci - 18.10.2026 12:30:00", lines[0])
	assert.Equal(t,
		`"Ola ""Rybka"" Zielińska","Brak danych","Brak danych","Brak danych","lubi grzbietowy","25m: 0:19.8; 100m: 1:40.2","18.10.2026"`,
		lines[3])
	assert.Contains(t, string(out.Content), "Obecnych: -\nNieobecnych: -\nProcent obecnosci: -")
}

func TestExportCSV_EmptyList(t *testing.T) {
	s := newTestState()
	if _, err := s.ExportCSV(); !errors.Is(err, ErrValidation) {
		t.Errorf("ExportCSV on empty group error = %v, want ErrValidation", err)
	}
}

func TestExportCalendar(t *testing.T) {
	s := newTestState()
	s.Group.GroupName = "Poniedziałek 16:00 Sz.P."

	if _, err := s.ExportCalendar(); !errors.Is(err, ErrValidation) {
		t.Fatalf("ExportCalendar without dates error = %v", err)
	}

	first, err := s.AddDate("2099-01-01")
	require.NoError(t, err)
	_, err = s.AddDate("2099-01-08")
	require.NoError(t, err)

	out, err := s.ExportCalendar()
	require.NoError(t, err)
	assert.Equal(t, "kalendarz-poniedzia-ek-16-00-sz-p.ics", out.Filename)

	ics := string(out.Content)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, first.ID+"@attendance")
	assert.Contains(t, ics, "20990101")
	assert.Contains(t, ics, "20990109")
}

func TestSummary(t *testing.T) {
	s := newTestState()
	jan, _ := s.AddPerson("Jan Kowalski", nil, "")
	anna, _ := s.AddPerson("Anna Nowak", nil, "")
	d1, _ := s.AddDate("2099-01-01")
	d2, _ := s.AddDate("2099-01-08")
	s.AddDate("2099-01-15")

	s.Activate(d1.ID)
	s.SetAll(true)
	s.Activate(d2.ID)
	s.Toggle(jan.ID)

	summary := s.Summary()
	require.Len(t, summary, 2)

	// Sorted by surname: Kowalski before Nowak.
	assert.Equal(t, "Jan Kowalski", summary[0].Name)
	assert.Equal(t, jan.ID, summary[0].PersonID)
	assert.Equal(t, 2, summary[0].Present)
	assert.Equal(t, 2, summary[0].Recorded)
	assert.Equal(t, 100.0, summary[0].Rate)
	assert.Equal(t, "2099-01-08", summary[0].LastSeen)

	assert.Equal(t, anna.ID, summary[1].PersonID)
	assert.Equal(t, 1, summary[1].Present)
	assert.Equal(t, 2, summary[1].Recorded)
	assert.Equal(t, 50.0, summary[1].Rate)
	assert.Equal(t, "2099-01-01", summary[1].LastSeen)
}
