package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"camelia-boutique/models"
)

// ParseRows turns CSV bytes into a header list plus one RawRow per data
// row. Headers are trimmed; rows shorter than the header list are padded
// with empty cells so column lookup never goes out of range.
func ParseRows(data []byte) ([]string, []models.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet is empty")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]models.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := models.RawRow{}
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}
