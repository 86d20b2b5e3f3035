package commands

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/affiliate-dashboard/accounts-sync/records"
	"github.com/affiliate-dashboard/accounts-sync/supabase"
)

func TestPut(t *testing.T) {
	s := stub{status: http.StatusCreated}
	srv := s.serve()
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "accounts.json")
	if err := os.WriteFile(file, []byte(accounts), 0600); err != nil {
		t.Fatalf("Error writing %v (%v)", file, err)
	}

	var b bytes.Buffer
	cmd := Put{
		command: command{out: &b},
		file:    file,
	}

	table := supabase.NewClient(srv.URL+"/rest/v1/shopee_accounts", "sb_publishable_test-key")

	if err := cmd.put(context.Background(), table); err != nil {
		t.Fatalf("Unexpected error uploading accounts (%v)", err)
	}

	if len(s.writes) != 1 || len(s.writes[0]) != 5 {
		t.Errorf("Expected one write request with 5 accounts, got %v", s.writes)
	}

	if !strings.Contains(b.String(), "Migration successful! Migrated 5 accounts.") {
		t.Errorf("Expected success message, got:\n%v", b.String())
	}
}

func TestPutWithInvalidFile(t *testing.T) {
	s := stub{status: http.StatusCreated}
	srv := s.serve()
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "accounts.json")
	if err := os.WriteFile(file, []byte(`{"id":"1"}`), 0600); err != nil {
		t.Fatalf("Error writing %v (%v)", file, err)
	}

	var b bytes.Buffer
	cmd := Put{
		command: command{out: &b},
		file:    file,
	}

	table := supabase.NewClient(srv.URL+"/rest/v1/shopee_accounts", "sb_publishable_test-key")

	if err := cmd.put(context.Background(), table); !errors.Is(err, records.ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}

	if len(s.writes) != 0 {
		t.Errorf("Expected no write requests, got %v", len(s.writes))
	}
}

func TestPutWithMissingFile(t *testing.T) {
	cmd := Put{
		file: filepath.Join(t.TempDir(), "missing.json"),
	}

	if err := cmd.put(context.Background(), nil); err == nil {
		t.Errorf("Expected error for missing file, got %v", err)
	}
}
