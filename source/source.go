// Package source retrieves the account records to be migrated, either from a Google Apps
// Script endpoint that publishes a worksheet as JSON or directly from the worksheet via the
// Google Sheets API.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/context/ctxhttp"
	"google.golang.org/api/sheets/v4"

	"github.com/affiliate-dashboard/accounts-sync/records"
)

type Source interface {
	Name() string
	Fetch(ctx context.Context) (records.Records, error)
}

// Script fetches records with a single unauthenticated GET from an Apps Script web app.
type Script struct {
	URL    string
	Client *http.Client
}

func (s Script) Name() string {
	return "Google Sheets"
}

// Fetch does not check the HTTP status: a script error page is not a JSON array and is
// reported as records.ErrInvalidFormat.
func (s Script) Fetch(ctx context.Context) (records.Records, error) {
	if strings.TrimSpace(s.URL) == "" {
		return nil, fmt.Errorf("missing source URL")
	}

	response, err := ctxhttp.Get(ctx, s.Client, s.URL)
	if err != nil {
		return nil, fmt.Errorf("error fetching %v (%w)", s.URL, err)
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response from %v (%w)", s.URL, err)
	}

	return records.Parse(body)
}

// Sheet reads a worksheet range through the Google Sheets API. The first row of the range
// is the header.
type Sheet struct {
	Service     *sheets.Service
	Spreadsheet string
	Range       string
}

func (s Sheet) Name() string {
	return fmt.Sprintf("Google Sheets worksheet %v", s.Range)
}

func (s Sheet) Fetch(ctx context.Context) (records.Records, error) {
	response, err := s.Service.Spreadsheets.Values.Get(s.Spreadsheet, s.Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	if len(response.Values) == 0 {
		return nil, records.ErrInvalidFormat
	}

	return records.FromRows(response.Values)
}

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL.
func SpreadsheetID(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

// ValidRange checks that a range names a worksheet e.g. 'Accounts!A1:H'.
func ValidRange(area string) error {
	if match := regexp.MustCompile(`(.+?)!.*`).FindStringSubmatch(strings.TrimSpace(area)); len(match) < 2 {
		return fmt.Errorf("invalid range '%s' - expected something like 'Accounts!A1:H'", area)
	}

	return nil
}
