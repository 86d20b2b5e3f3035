package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/affiliate-dashboard/accounts-sync/records"
)

var PutCmd = Put{
	command: command{
		workdir: DEFAULT_WORKDIR,
		config:  DEFAULT_CONFIG,
		env:     DEFAULT_ENV,
	},

	file:       "",
	onConflict: "",
	batchSize:  0,
}

type Put struct {
	command
	file       string
	onConflict string
	batchSize  int
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Upserts the accounts in a local JSON file to the Supabase table"
}

func (cmd *Put) Usage() string {
	return "--file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Upserts the accounts in a JSON file (e.g. retrieved with 'get') to the Supabase table")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    accounts-sync put --supabase-url "https://qpnparzjhrffzjxrejrn.supabase.co" --file "accounts.json"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.file, "file", cmd.file, "JSON file with an array of accounts")
	flagset.StringVar(&cmd.onConflict, "on-conflict", cmd.onConflict, "Column(s) used to detect duplicate rows. Defaults to the table primary key")
	flagset.IntVar(&cmd.batchSize, "batch-size", cmd.batchSize, "Maximum number of accounts per request. Defaults to 0 (all accounts in one request)")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	ctx, options := unpack(args...)

	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	conf, err := cmd.configure()
	if err != nil {
		return err
	}

	table, err := cmd.client(conf)
	if err != nil {
		return err
	}

	return cmd.put(ctx, table)
}

func (cmd *Put) put(ctx context.Context, table upserter) error {
	b, err := os.ReadFile(cmd.file)
	if err != nil {
		return err
	}

	list, err := records.Parse(b)
	if errors.Is(err, records.ErrInvalidFormat) {
		cmd.println("No data found or invalid format.")
		return err
	} else if err != nil {
		return err
	}

	cmd.printf("Found %d accounts in %v. Migrating to Supabase...\n", len(list), cmd.file)

	return upsert(ctx, &cmd.command, table, list, cmd.onConflict, cmd.batchSize)
}
