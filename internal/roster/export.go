package roster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/attendance/internal/models"
)

// CSVHeader is the header row of the attendance export.
const CSVHeader = "Imie,Wiek,Telefon,Status,Notatka,Czasy pływania,Data dodania"

const (
	noData  = "Brak danych"
	noNote  = "Brak notatki"
	noTimes = "Brak czasów"
)

// Export is a rendered file ready to be downloaded.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportCSV renders the current view (active date or plain roster) as a CSV
// attendance list with a title line and a summary block.
func (s *State) ExportCSV() (*Export, error) {
	rows := ListFiltered(s.View(), models.FilterAll)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: the list is empty", ErrValidation)
	}

	now := s.now().In(s.location())
	exportDate := now.Format("02.01.2006")
	filename := "lista-obecnosci-" + now.Format("02-01-2006")
	if date, ok := s.ActiveDate(); ok {
		exportDate = DisplayDate(date.Date)
		filename = "lista-obecnosci-" + date.Date
	}

	var b strings.Builder
	b.WriteString("Lista Obecnosci - " + exportDate + " " + now.Format("15:04:05") + "\n\n")
	b.WriteString(CSVHeader + "\n")

	for _, row := range rows {
		fields := []string{
			row.Name,
			ageCell(row.Age),
			orDefault(row.Phone, noData),
			statusCell(row.Present),
			orDefault(row.Note, noNote),
			timesCell(row.TimedResults),
			row.AddedAt.In(s.location()).Format("02.01.2006"),
		}
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(field))
		}
		b.WriteByte('\n')
	}

	stats := s.Stats()
	b.WriteString("\nStatystyki:\n")
	b.WriteString("Wszystkich: " + strconv.Itoa(stats.Total) + "\n")
	if stats.DateActive {
		b.WriteString("Obecnych: " + strconv.Itoa(stats.Present) + "\n")
		b.WriteString("Nieobecnych: " + strconv.Itoa(stats.Absent) + "\n")
		b.WriteString(fmt.Sprintf("Procent obecnosci: %.1f%%", stats.Percentage))
	} else {
		b.WriteString("Obecnych: -\n")
		b.WriteString("Nieobecnych: -\n")
		b.WriteString("Procent obecnosci: -")
	}

	return &Export{
		Filename:    filename + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Content:     []byte(b.String()),
	}, nil
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func ageCell(age *int) string {
	if age == nil {
		return noData
	}
	return strconv.Itoa(*age)
}

func statusCell(present *bool) string {
	switch {
	case present == nil:
		return noData
	case *present:
		return "Obecny"
	default:
		return "Nieobecny"
	}
}

func timesCell(results map[string]string) string {
	if len(results) == 0 {
		return noTimes
	}
	parts := make([]string, 0, len(results))
	for _, distance := range SortedDistances(results) {
		parts = append(parts, distance+"m: "+results[distance])
	}
	return strings.Join(parts, "; ")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
