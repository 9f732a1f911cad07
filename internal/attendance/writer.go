package attendance

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Header lists the report columns in output order.
var Header = []string{"Admission_No", "Name", "Section", "Status", "Photo", "Saved_At"}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("could not write report header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.AdmissionNo,
			rec.Name,
			rec.Section,
			string(rec.Status),
			rec.Photo,
			rec.SavedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename returns the report file name for the given moment,
// e.g. attendance_2026-08-30_14-05-09.csv. The timestamp keeps successive
// reports from clobbering each other.
func Filename(t time.Time) string {
	return fmt.Sprintf("attendance_%s.csv", t.Format("2006-01-02_15-04-05"))
}

// Save writes records to a timestamped CSV file in dir and returns the full
// path of the written file.
func Save(dir string, records []Record) (string, error) {
	path := filepath.Join(dir, Filename(time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create report file: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not close report file: %w", err)
	}
	return path, nil
}
