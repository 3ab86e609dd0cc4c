package sheet

import (
	"context"
	"fmt"
	"log"
	"strings"

	"camelia-boutique/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// defaultReadRange covers the whole first worksheet
const defaultReadRange = "A:Z"

// SheetsService reads spreadsheet rows through the Sheets API instead of
// the public CSV export. Used when a Service Account credential is
// configured, which also works for non-published spreadsheets.
type SheetsService struct {
	client *sheets.Service
}

// NewSheetsService creates a SheetsService from a Service Account JSON file
func NewSheetsService(credentialsPath string) (*SheetsService, error) {
	ctx := context.Background()

	// option.WithCredentialsFile handles Service Account authentication
	sheetsService, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsService{
		client: sheetsService,
	}, nil
}

// ReadRows fetches all rows of the first worksheet and returns the header
// list plus one RawRow per data row, in the same shape ParseRows produces.
func (s *SheetsService) ReadRows(sheetID string) ([]string, []models.RawRow, error) {
	resp, err := s.client.Spreadsheets.Values.Get(sheetID, defaultReadRange).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read spreadsheet values: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet is empty")
	}

	headers := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		headers = append(headers, strings.TrimSpace(fmt.Sprint(cell)))
	}

	rows := make([]models.RawRow, 0, len(resp.Values)-1)
	for _, record := range resp.Values[1:] {
		row := models.RawRow{}
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = strings.TrimSpace(fmt.Sprint(record[i]))
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	log.Printf("✓ Read %d rows from Sheets API", len(rows))
	return headers, rows, nil
}
