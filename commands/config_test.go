package commands

import (
	"os"
	"path/filepath"
	"testing"
)

const toml = `[supabase]
url   = "https://config.supabase.co"
key   = "sb_publishable_config-key"
table = "accounts"

[source]
url = "https://script.google.com/macros/s/config/exec"
`

const dotenv = `SUPABASE_URL=https://dotenv.supabase.co
SUPABASE_KEY=sb_publishable_dotenv-key
`

func TestConfigureDefaults(t *testing.T) {
	clearenv(t)

	cmd := command{}

	v, err := cmd.configure()
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if table := v.GetString("supabase.table"); table != DEFAULT_TABLE {
		t.Errorf("Incorrect default table - expected:%v, got:%v", DEFAULT_TABLE, table)
	}
}

func TestConfigureWithMissingFiles(t *testing.T) {
	clearenv(t)

	dir := t.TempDir()
	cmd := command{
		config: filepath.Join(dir, "accounts-sync.toml"),
		env:    filepath.Join(dir, ".env"),
	}

	if _, err := cmd.configure(); err != nil {
		t.Fatalf("Unexpected error for missing configuration files (%v)", err)
	}
}

func TestConfigureFromConfigFile(t *testing.T) {
	clearenv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "accounts-sync.toml")
	if err := os.WriteFile(file, []byte(toml), 0600); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	cmd := command{config: file}

	v, err := cmd.configure()
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	client, err := cmd.client(v)
	if err != nil {
		t.Fatalf("Unexpected error creating Supabase client (%v)", err)
	}

	if endpoint := client.Endpoint(); endpoint != "https://config.supabase.co/rest/v1/accounts" {
		t.Errorf("Incorrect endpoint - expected:%v, got:%v", "https://config.supabase.co/rest/v1/accounts", endpoint)
	}

	if url := v.GetString("source.url"); url != "https://script.google.com/macros/s/config/exec" {
		t.Errorf("Incorrect source URL - got:%v", url)
	}
}

func TestConfigureWithInvalidConfigFile(t *testing.T) {
	clearenv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "accounts-sync.toml")
	if err := os.WriteFile(file, []byte("[supabase\nurl = "), 0600); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	cmd := command{config: file}

	if _, err := cmd.configure(); err == nil {
		t.Errorf("Expected error for invalid configuration file, got %v", err)
	}
}

func TestConfigurePrecedence(t *testing.T) {
	clearenv(t)

	dir := t.TempDir()
	config := filepath.Join(dir, "accounts-sync.toml")
	env := filepath.Join(dir, ".env")

	if err := os.WriteFile(config, []byte(toml), 0600); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	if err := os.WriteFile(env, []byte(dotenv), 0600); err != nil {
		t.Fatalf("Error writing dotenv file (%v)", err)
	}

	// ... dotenv overrides configuration file
	cmd := command{config: config, env: env}

	v, err := cmd.configure()
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if key := v.GetString("supabase.key"); key != "sb_publishable_dotenv-key" {
		t.Errorf("Incorrect key - expected:%v, got:%v", "sb_publishable_dotenv-key", key)
	}

	if url := v.GetString("supabase.url"); url != "https://dotenv.supabase.co" {
		t.Errorf("Incorrect URL - expected:%v, got:%v", "https://dotenv.supabase.co", url)
	}

	if table := v.GetString("supabase.table"); table != "accounts" {
		t.Errorf("Incorrect table - expected:%v, got:%v", "accounts", table)
	}

	// ... environment overrides dotenv
	clearenv(t)
	t.Setenv("SUPABASE_KEY", "sb_publishable_env-key")

	if v, err = cmd.configure(); err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if key := v.GetString("supabase.key"); key != "sb_publishable_env-key" {
		t.Errorf("Incorrect key - expected:%v, got:%v", "sb_publishable_env-key", key)
	}

	// ... command line overrides everything
	cmd.supabase = "https://flag.supabase.co"
	cmd.table = "shopee_accounts"

	client, err := cmd.client(v)
	if err != nil {
		t.Fatalf("Unexpected error creating Supabase client (%v)", err)
	}

	if endpoint := client.Endpoint(); endpoint != "https://flag.supabase.co/rest/v1/shopee_accounts" {
		t.Errorf("Incorrect endpoint - expected:%v, got:%v", "https://flag.supabase.co/rest/v1/shopee_accounts", endpoint)
	}
}

func TestClientWithoutKey(t *testing.T) {
	clearenv(t)
	t.Setenv("SUPABASE_URL", "https://qpnparzjhrffzjxrejrn.supabase.co")

	cmd := command{}

	v, err := cmd.configure()
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if _, err := cmd.client(v); err == nil {
		t.Errorf("Expected error for missing Supabase key, got %v", err)
	}
}
