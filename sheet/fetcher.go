package sheet

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// maxRedirectHops bounds how many 3xx responses we follow before
	// giving up on the spreadsheet export URL
	maxRedirectHops = 5

	fetchTimeout = 30 * time.Second
)

// ExportURL builds the public CSV export URL for a published spreadsheet
func ExportURL(sheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", sheetID)
}

// FetchCSV downloads the spreadsheet CSV export, following redirects up to
// maxRedirectHops. Returns the raw CSV bytes.
func FetchCSV(url string) ([]byte, error) {
	client := &http.Client{
		Timeout: fetchTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirectHops {
				return fmt.Errorf("stopped after %d redirects", maxRedirectHops)
			}
			return nil
		},
	}

	log.Printf("📥 Fetching spreadsheet: %s", url)
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spreadsheet export returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet body: %w", err)
	}

	log.Printf("✓ Spreadsheet downloaded: %d bytes", len(data))
	return data, nil
}
