package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/affiliate-dashboard/accounts-sync/supabase"
)

// Environment variables bound to configuration keys. Variables set in the process
// environment take precedence over the dotenv file, which takes precedence over the
// configuration file.
var environment = map[string]string{
	"source.url":         "SOURCE_URL",
	"google.credentials": "GOOGLE_CREDENTIALS",
	"google.sheet":       "GOOGLE_SHEET",
	"google.range":       "GOOGLE_RANGE",
	"supabase.url":       "SUPABASE_URL",
	"supabase.key":       "SUPABASE_KEY",
	"supabase.table":     "SUPABASE_TABLE",
}

// configure loads the dotenv and configuration files. Neither file is required to exist.
func (c *command) configure() (*viper.Viper, error) {
	if env := strings.TrimSpace(c.env); env != "" {
		if err := godotenv.Load(env); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("invalid dotenv file %v (%w)", env, err)
		} else if err == nil {
			c.debugf("loaded environment from %v", env)
		}
	}

	v := viper.New()
	v.SetDefault("supabase.table", DEFAULT_TABLE)

	for key, env := range environment {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind environment variable %v (%w)", env, err)
		}
	}

	if file := strings.TrimSpace(c.config); file != "" {
		if _, err := os.Stat(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		} else if err == nil {
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("invalid configuration file %v (%w)", file, err)
			}

			c.debugf("using configuration file %v", v.ConfigFileUsed())
		}
	}

	return v, nil
}

// client returns a Supabase client for the table endpoint resolved from the command line
// and configuration.
func (c *command) client(v *viper.Viper) (*supabase.Client, error) {
	base := c.supabase
	if base == "" {
		base = v.GetString("supabase.url")
	}

	table := c.table
	if table == "" {
		table = v.GetString("supabase.table")
	}

	key := v.GetString("supabase.key")
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("missing Supabase API key - set SUPABASE_KEY in the environment, dotenv or configuration file")
	}

	endpoint, err := supabase.Endpoint(base, table)
	if err != nil {
		return nil, err
	}

	c.debugf("Supabase table endpoint %v", endpoint)

	return supabase.NewClient(endpoint, key, supabase.WithDebug(c.debug)), nil
}
