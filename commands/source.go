package commands

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/affiliate-dashboard/accounts-sync/source"
)

// sourceOptions selects where the records are read from. A worksheet URL and range read the
// worksheet through the Sheets API, otherwise the records are fetched from the script endpoint.
type sourceOptions struct {
	url         string
	sheet       string
	area        string
	credentials string
	tokens      string
}

func (s *sourceOptions) flags(flagset *flag.FlagSet) {
	flagset.StringVar(&s.url, "source-url", s.url, "Apps Script endpoint that returns the accounts as a JSON array")
	flagset.StringVar(&s.sheet, "url", s.sheet, "Spreadsheet URL, to read the worksheet directly instead of the script endpoint")
	flagset.StringVar(&s.area, "range", s.area, "Spreadsheet range e.g. 'Accounts!A1:H'")
	flagset.StringVar(&s.credentials, "credentials", s.credentials, "Path for the Google 'credentials.json' file")
	flagset.StringVar(&s.tokens, "tokens", s.tokens, "Directory for the Google OAuth2 tokens. Defaults to <workdir>/.google")
}

func (s *sourceOptions) source(ctx context.Context, v *viper.Viper, workdir string) (source.Source, error) {
	sheet := s.sheet
	if sheet == "" {
		sheet = v.GetString("google.sheet")
	}

	if strings.TrimSpace(sheet) == "" {
		url := s.url
		if url == "" {
			url = v.GetString("source.url")
		}

		if strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("--source-url is a required option (or set SOURCE_URL)")
		}

		return source.Script{URL: strings.TrimSpace(url)}, nil
	}

	area := s.area
	if area == "" {
		area = v.GetString("google.range")
	}

	credentials := s.credentials
	if credentials == "" {
		credentials = v.GetString("google.credentials")
	}

	if strings.TrimSpace(credentials) == "" {
		return nil, fmt.Errorf("--credentials is a required option for --url")
	}

	if strings.TrimSpace(area) == "" {
		return nil, fmt.Errorf("--range is a required option for --url")
	}

	spreadsheet, err := source.SpreadsheetID(sheet)
	if err != nil {
		return nil, err
	}

	if err := source.ValidRange(area); err != nil {
		return nil, err
	}

	tokens := s.tokens
	if tokens == "" {
		tokens = filepath.Join(workdir, ".google")
	}

	client, err := authorize(credentials, SHEETS, tokens)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%v)", err)
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	return source.Sheet{
		Service:     google,
		Spreadsheet: spreadsheet,
		Range:       strings.TrimSpace(area),
	}, nil
}
