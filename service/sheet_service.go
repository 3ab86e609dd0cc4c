package service

import (
	"fmt"
	"log"
	"os"

	"camelia-boutique/models"
	"camelia-boutique/sheet"
)

// FetchRows loads the spreadsheet rows for a sheet ID. When a Service
// Account credential is configured the Sheets API is used (works for
// non-published spreadsheets); otherwise the public CSV export is fetched
// over HTTP.
func FetchRows(sheetID string) ([]string, []models.RawRow, error) {
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		log.Printf("🔑 Using Sheets API with credentials from %s", credentialsPath)
		sheetsService, err := sheet.NewSheetsService(credentialsPath)
		if err != nil {
			return nil, nil, err
		}
		return sheetsService.ReadRows(sheetID)
	}

	data, err := sheet.FetchCSV(sheet.ExportURL(sheetID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download spreadsheet: %w", err)
	}
	return sheet.ParseRows(data)
}
