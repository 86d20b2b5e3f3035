package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"

	"github.com/affiliate-dashboard/accounts-sync/records"
	"github.com/affiliate-dashboard/accounts-sync/supabase"
)

var ErrConnectionFailed = errors.New("connection failed")

var CheckCmd = Check{
	command: command{
		workdir: DEFAULT_WORKDIR,
		config:  DEFAULT_CONFIG,
		env:     DEFAULT_ENV,
	},

	columns: "*",
}

type Check struct {
	command
	columns string
}

type selector interface {
	Select(ctx context.Context, columns string) (*supabase.Response, error)
}

func (cmd *Check) Name() string {
	return "check"
}

func (cmd *Check) Description() string {
	return "Retrieves and displays the accounts in the Supabase table"
}

func (cmd *Check) Usage() string {
	return "[--supabase-url <url>] [--table <table>] [--select <columns>]"
}

func (cmd *Check) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] check [options]\n", APP)
	fmt.Println()
	fmt.Println("  Verifies the connection to the Supabase table by retrieving and displaying every row")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    accounts-sync check --supabase-url "https://qpnparzjhrffzjxrejrn.supabase.co" --select "id,username,expiry"`)
	fmt.Println()
}

func (cmd *Check) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("check")

	flagset.StringVar(&cmd.columns, "select", cmd.columns, "Columns to retrieve. Defaults to all columns")

	return flagset
}

func (cmd *Check) Execute(args ...any) error {
	ctx, options := unpack(args...)

	cmd.debug = options.Debug

	conf, err := cmd.configure()
	if err != nil {
		return err
	}

	table, err := cmd.client(conf)
	if err != nil {
		return err
	}

	return cmd.check(ctx, table)
}

func (cmd *Check) check(ctx context.Context, table selector) error {
	cmd.println("Testing Supabase connection...")

	rsp, err := table.Select(ctx, cmd.columns)
	if err != nil {
		return err
	}

	if rsp.StatusCode != http.StatusOK {
		cmd.printf("Connection failed: %d\n", rsp.StatusCode)
		cmd.println(string(rsp.Body))

		return fmt.Errorf("%w (%v)", ErrConnectionFailed, rsp.StatusCode)
	}

	list, err := records.Parse(rsp.Body)
	if err != nil {
		return fmt.Errorf("unexpected response from Supabase (%w)", err)
	}

	cmd.printf("Connection successful! Found %d accounts.\n", len(list))

	return records.WriteJSON(cmd.stdout(), list)
}
