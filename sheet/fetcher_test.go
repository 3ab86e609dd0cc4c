package sheet

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCSVFollowsRedirects(t *testing.T) {
	csv := "id,nom\n1,Robe\n"

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/start":
			http.Redirect(w, r, server.URL+"/hop1", http.StatusFound)
		case "/hop1":
			http.Redirect(w, r, server.URL+"/final", http.StatusFound)
		case "/final":
			fmt.Fprint(w, csv)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	data, err := FetchCSV(server.URL + "/start")
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestFetchCSVStopsAfterRedirectLimit(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always redirect, never terminate
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	_, err := FetchCSV(server.URL + "/loop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect")
}

func TestFetchCSVNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := FetchCSV(server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestParseRows(t *testing.T) {
	data := []byte("id,nom,prix,stock_s,stock_m\n1,Robe,\"19,90\",2,0\n2,Blouse,15\n")

	headers, rows, err := ParseRows(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "nom", "prix", "stock_s", "stock_m"}, headers)
	require.Len(t, rows, 2)

	assert.Equal(t, "Robe", rows[0]["nom"])
	assert.Equal(t, "19,90", rows[0]["prix"])
	assert.Equal(t, "2", rows[0]["stock_s"])

	// Short row is padded with empty cells
	assert.Equal(t, "", rows[1]["stock_s"])
	assert.Equal(t, "", rows[1]["stock_m"])
}

func TestParseRowsEmptyInput(t *testing.T) {
	_, _, err := ParseRows([]byte(""))
	require.Error(t, err)
}

func TestExportURL(t *testing.T) {
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
		ExportURL("abc123"))
}
