package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

const APP = "accounts-sync"
const VERSION = "v0.1.0"

type Options struct {
	Debug bool
}

// command holds the options common to every command that talks to Supabase.
type command struct {
	workdir  string
	config   string
	env      string
	supabase string
	table    string
	debug    bool
	out      io.Writer
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&c.config, "config", c.config, "Configuration file path")
	flagset.StringVar(&c.env, "env", c.env, "dotenv file with SUPABASE_URL, SUPABASE_KEY, etc")
	flagset.StringVar(&c.supabase, "supabase-url", c.supabase, "Supabase project URL e.g. 'https://<project>.supabase.co'")
	flagset.StringVar(&c.table, "table", c.table, fmt.Sprintf("Supabase table. Defaults to '%v'", DEFAULT_TABLE))

	return flagset
}

func (c *command) stdout() io.Writer {
	if c.out == nil {
		return os.Stdout
	}

	return c.out
}

func (c *command) println(a ...any) {
	fmt.Fprintln(c.stdout(), a...)
}

func (c *command) printf(format string, a ...any) {
	fmt.Fprintf(c.stdout(), format, a...)
}

func (c *command) debugf(format string, args ...any) {
	if c.debug {
		debugf(format, args...)
	}
}

// unpack extracts the context and global options passed to Execute by main().
func unpack(args ...any) (context.Context, *Options) {
	ctx := context.Background()
	options := &Options{}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v

		case *Options:
			options = v
		}
	}

	return ctx, options
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "ERROR", fmt.Sprintf(format, args...))
}
