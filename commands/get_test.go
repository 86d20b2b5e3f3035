package commands

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/affiliate-dashboard/accounts-sync/source"
)

func TestGetJSON(t *testing.T) {
	expected := `[
  {
    "id": "1",
    "username": "alpha.shop"
  },
  {
    "id": "2",
    "username": "beta.shop"
  }
]
`

	s := stub{payload: `[{"id":"1","username":"alpha.shop"},{"id":"2","username":"beta.shop"}]`}
	srv := s.serve()
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "backup", "accounts.json")

	var b bytes.Buffer
	cmd := Get{
		command: command{out: &b},
		file:    file,
	}

	if err := cmd.get(context.Background(), source.Script{URL: srv.URL + "/source"}, "json"); err != nil {
		t.Fatalf("Unexpected error retrieving accounts (%v)", err)
	}

	contents, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Error reading %v (%v)", file, err)
	}

	if string(contents) != expected {
		t.Errorf("Incorrect file contents\n   expected:%v\n   got:     %v", expected, string(contents))
	}
}

func TestGetTSV(t *testing.T) {
	expected := `id	username
1	alpha.shop
2	beta.shop
`

	s := stub{payload: `[{"id":"1","username":"alpha.shop"},{"id":"2","username":"beta.shop"}]`}
	srv := s.serve()
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "accounts.tsv")

	var b bytes.Buffer
	cmd := Get{
		command: command{out: &b},
		file:    file,
	}

	if err := cmd.get(context.Background(), source.Script{URL: srv.URL + "/source"}, "tsv"); err != nil {
		t.Fatalf("Unexpected error retrieving accounts (%v)", err)
	}

	contents, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Error reading %v (%v)", file, err)
	}

	if string(contents) != expected {
		t.Errorf("Incorrect file contents\n   expected:%v\n   got:     %v", expected, string(contents))
	}
}

func TestGetWithInvalidSource(t *testing.T) {
	s := stub{payload: `{"error":"Exception: Range not found"}`, status: http.StatusOK}
	srv := s.serve()
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "accounts.json")

	var b bytes.Buffer
	cmd := Get{
		command: command{out: &b},
		file:    file,
	}

	if err := cmd.get(context.Background(), source.Script{URL: srv.URL + "/source"}, "json"); err == nil {
		t.Fatalf("Expected error for invalid source payload, got %v", err)
	}

	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Errorf("Expected no file to be created, got %v", err)
	}
}

func TestGetFormat(t *testing.T) {
	tests := []struct {
		file     string
		format   string
		expected string
		invalid  bool
	}{
		{file: "accounts.json", expected: "json"},
		{file: "accounts.TSV", expected: "tsv"},
		{file: "accounts", expected: "json"},
		{file: "accounts.txt", format: "tsv", expected: "tsv"},
		{file: "accounts.txt", invalid: true},
		{file: "accounts.json", format: "csv", invalid: true},
	}

	for _, test := range tests {
		cmd := Get{file: test.file, format: test.format}

		format, err := cmd.resolveFormat()
		if test.invalid {
			if err == nil {
				t.Errorf("%v/%v: expected error, got %v", test.file, test.format, format)
			}
			continue
		}

		if err != nil {
			t.Errorf("%v/%v: unexpected error (%v)", test.file, test.format, err)
		} else if format != test.expected {
			t.Errorf("%v/%v: incorrect format - expected:%v, got:%v", test.file, test.format, test.expected, format)
		}
	}
}
