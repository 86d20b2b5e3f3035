package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/affiliate-dashboard/accounts-sync/records"
	"github.com/affiliate-dashboard/accounts-sync/source"
)

var GetCmd = Get{
	command: command{
		workdir: DEFAULT_WORKDIR,
		config:  DEFAULT_CONFIG,
		env:     DEFAULT_ENV,
	},

	file:   time.Now().Format("accounts-2006-01-02T150405.json"),
	format: "",
}

type Get struct {
	command
	sourceOptions

	file   string
	format string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves the accounts from the Google Sheets endpoint and stores them to a local file"
}

func (cmd *Get) Usage() string {
	return "--source-url <url> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --source-url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the accounts to a JSON or TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    accounts-sync get --source-url "https://script.google.com/macros/s/AKfycbw.../exec" --file "accounts.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	cmd.sourceOptions.flags(flagset)

	flagset.StringVar(&cmd.file, "file", cmd.file, "File name. Defaults to 'accounts-<yyyy-mm-ddTHHmmss>.json'")
	flagset.StringVar(&cmd.format, "format", cmd.format, "File format ('json' or 'tsv'). Defaults to the file extension")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	ctx, options := unpack(args...)

	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	format, err := cmd.resolveFormat()
	if err != nil {
		return err
	}

	conf, err := cmd.configure()
	if err != nil {
		return err
	}

	src, err := cmd.source(ctx, conf, cmd.workdir)
	if err != nil {
		return err
	}

	return cmd.get(ctx, src, format)
}

func (cmd *Get) get(ctx context.Context, src source.Source, format string) error {
	list, err := src.Fetch(ctx)
	if err != nil {
		return err
	}

	write := records.WriteJSON
	if format == "tsv" {
		write = records.WriteTSV
	}

	if err := store(cmd.file, func(w io.Writer) error { return write(w, list) }); err != nil {
		return err
	}

	cmd.printf("Retrieved %d accounts to file %s\n", len(list), cmd.file)

	return nil
}

func (cmd *Get) resolveFormat() (string, error) {
	format := strings.ToLower(strings.TrimSpace(cmd.format))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(cmd.file)), ".")
	}

	switch format {
	case "json", "tsv":
		return format, nil

	case "":
		return "json", nil

	default:
		return "", fmt.Errorf("unsupported file format '%v' - expected 'json' or 'tsv'", format)
	}
}

// store writes to a temporary file in the destination directory and renames it to file
// once complete.
func store(file string, f func(io.Writer) error) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".accounts-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := f(tmp); err != nil {
		return fmt.Errorf("error creating %v (%v)", file, err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
