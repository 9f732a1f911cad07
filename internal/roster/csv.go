package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names expected in roster files. Matching is case-insensitive.
const (
	columnAdmissionNo = "Admission_No"
	columnName        = "Name"
	columnSection     = "Section"
)

// LoadCSV parses roster records from r and builds a new roster. The header
// row must contain Admission_No and Name columns; Section is optional and
// defaults to an empty string. Field values are trimmed of surrounding
// whitespace. The previous roster, if any, is simply replaced by the caller
// holding the returned value.
func LoadCSV(r io.Reader) (*Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrFormat)
	}

	admCol, nameCol, sectionCol := -1, -1, -1
	for i, col := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case strings.ToLower(columnAdmissionNo):
			admCol = i
		case strings.ToLower(columnName):
			nameCol = i
		case strings.ToLower(columnSection):
			sectionCol = i
		}
	}

	var missing []string
	if admCol < 0 {
		missing = append(missing, columnAdmissionNo)
	}
	if nameCol < 0 {
		missing = append(missing, columnName)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(missing, ", "))
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		entries = append(entries, Entry{
			AdmissionNo: field(row, admCol),
			Name:        field(row, nameCol),
			Section:     field(row, sectionCol),
		})
	}
	return New(entries), nil
}

// LoadFile reads a roster CSV from disk.
func LoadFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open roster file: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// field returns the trimmed cell at col, or an empty string when the row is
// short or the column is absent. Short rows happen in hand-edited CSVs.
func field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
