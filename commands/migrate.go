package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/affiliate-dashboard/accounts-sync/records"
	"github.com/affiliate-dashboard/accounts-sync/source"
	"github.com/affiliate-dashboard/accounts-sync/supabase"
)

var ErrMigrationFailed = errors.New("migration failed")

var MigrateCmd = Migrate{
	command: command{
		workdir: DEFAULT_WORKDIR,
		config:  DEFAULT_CONFIG,
		env:     DEFAULT_ENV,
	},

	onConflict: "",
	batchSize:  0,
	dryrun:     false,
}

type Migrate struct {
	command
	sourceOptions

	onConflict string
	batchSize  int
	dryrun     bool
}

type upserter interface {
	Upsert(ctx context.Context, rs records.Records, onConflict string) (*supabase.Response, error)
}

func (cmd *Migrate) Name() string {
	return "migrate"
}

func (cmd *Migrate) Description() string {
	return "Copies the accounts from the Google Sheets endpoint to the Supabase table"
}

func (cmd *Migrate) Usage() string {
	return "--source-url <url> [--supabase-url <url>] [--table <table>]"
}

func (cmd *Migrate) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] migrate [options] --source-url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Fetches the accounts from a Google Apps Script endpoint (or directly from the worksheet) and")
	fmt.Println("  upserts them into a Supabase table. Existing rows with the same key are merged.")
	fmt.Println()
	fmt.Println("  The Supabase API key is read from SUPABASE_KEY in the environment, the dotenv file or the")
	fmt.Println("  configuration file and is never accepted on the command line.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    accounts-sync migrate --source-url "https://script.google.com/macros/s/AKfycbw.../exec" \`)
	fmt.Println(`                          --supabase-url "https://qpnparzjhrffzjxrejrn.supabase.co"`)
	fmt.Println()
	fmt.Println(`    accounts-sync --debug migrate --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                  --range "Accounts!A1:H" \`)
	fmt.Println(`                                  --credentials "credentials.json" \`)
	fmt.Println(`                                  --batch-size 500`)
	fmt.Println()
}

func (cmd *Migrate) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("migrate")

	cmd.sourceOptions.flags(flagset)

	flagset.StringVar(&cmd.onConflict, "on-conflict", cmd.onConflict, "Column(s) used to detect duplicate rows. Defaults to the table primary key")
	flagset.IntVar(&cmd.batchSize, "batch-size", cmd.batchSize, "Maximum number of accounts per request. Defaults to 0 (all accounts in one request)")
	flagset.BoolVar(&cmd.dryrun, "dry-run", cmd.dryrun, "Fetches and counts the accounts without writing to Supabase")

	return flagset
}

func (cmd *Migrate) Execute(args ...any) error {
	ctx, options := unpack(args...)

	cmd.debug = options.Debug

	conf, err := cmd.configure()
	if err != nil {
		return err
	}

	src, err := cmd.source(ctx, conf, cmd.workdir)
	if err != nil {
		return err
	}

	var table upserter
	if !cmd.dryrun {
		if table, err = cmd.client(conf); err != nil {
			return err
		}
	}

	return cmd.migrate(ctx, src, table)
}

func (cmd *Migrate) migrate(ctx context.Context, src source.Source, table upserter) error {
	cmd.printf("Fetching data from %v...\n", src.Name())

	list, err := src.Fetch(ctx)
	if errors.Is(err, records.ErrInvalidFormat) {
		cmd.println("No data found or invalid format.")
		return err
	} else if err != nil {
		return err
	}

	if cmd.dryrun {
		cmd.printf("Found %d accounts. Dry run, not migrating to Supabase.\n", len(list))
		return nil
	}

	cmd.printf("Found %d accounts. Migrating to Supabase...\n", len(list))

	return upsert(ctx, &cmd.command, table, list, cmd.onConflict, cmd.batchSize)
}

// upsert writes the records in one request per batch and stops at the first batch that is
// not acknowledged. Batches already written are not rolled back.
func upsert(ctx context.Context, cmd *command, table upserter, list records.Records, onConflict string, batchSize int) error {
	batches := list.Batches(batchSize)
	migrated := 0

	for i, batch := range batches {
		if len(batches) > 1 {
			cmd.debugf("batch %v of %v (%v accounts)", i+1, len(batches), len(batch))
		}

		rsp, err := table.Upsert(ctx, batch, onConflict)
		if err != nil {
			return err
		}

		if !rsp.Upserted() {
			cmd.printf("Migration failed: %d\n", rsp.StatusCode)
			cmd.println(string(rsp.Body))

			if migrated > 0 {
				warnf("%v of %v accounts were migrated before the failure", migrated, len(list))
			}

			return fmt.Errorf("%w (%v)", ErrMigrationFailed, rsp.StatusCode)
		}

		migrated += len(batch)
	}

	cmd.printf("Migration successful! Migrated %d accounts.\n", migrated)

	return nil
}
