// Package main provides the Scribe command line interface for working with
// saved recording snapshots: listing them, importing them, and regenerating
// test files from them without the recording process still running.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/entrhq/scribe/pkg/codegen"
	"github.com/entrhq/scribe/pkg/config"
	"github.com/entrhq/scribe/pkg/recorder"
)

const version = "0.1.0" // Version of the Scribe CLI

// Options holds the parsed command line flags.
type Options struct {
	ConfigPath  string
	List        bool
	GenerateID  string
	ImportPath  string
	OutputDir   string
	ShowVersion bool
}

func main() {
	opts := parseFlags()

	if opts.ShowVersion {
		fmt.Printf("Scribe v%s\n", version)
		return
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	store := recorder.NewStore()
	persist := recorder.NewPersistence(store, cfg.SessionsDir())
	generator := codegen.NewGenerator()

	switch {
	case opts.List:
		listSnapshots(persist)
	case opts.ImportPath != "":
		if err := importSnapshot(persist, generator, cfg, opts.ImportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case opts.GenerateID != "":
		if err := generateFromSnapshot(persist, generator, cfg, opts.GenerateID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func parseFlags() Options {
	var opts Options
	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "Path to the scribe config file")
	flag.BoolVar(&opts.List, "list", false, "List saved recording snapshots")
	flag.StringVar(&opts.GenerateID, "generate", "", "Regenerate the test file for the given snapshot id")
	flag.StringVar(&opts.ImportPath, "import", "", "Import a snapshot file and generate its test")
	flag.StringVar(&opts.OutputDir, "output", "", "Override the configured output directory")
	flag.BoolVar(&opts.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Scribe v%s - browser recording to Playwright test generator\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  scribe -list\n")
		fmt.Fprintf(os.Stderr, "  scribe -generate <session-id>\n")
		fmt.Fprintf(os.Stderr, "  scribe -import <snapshot.json>\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "scribe.yaml"
	}
	return homeDir + "/.scribe/config.yaml"
}

func listSnapshots(persist *recorder.Persistence) {
	ids := persist.List("")
	if len(ids) == 0 {
		fmt.Println("No saved recordings.")
		return
	}
	fmt.Printf("Saved recordings (%d):\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
}

func generateFromSnapshot(persist *recorder.Persistence, generator *codegen.Generator, cfg *config.Config, id string) error {
	session, err := persist.Load(id, "")
	if err != nil {
		return err
	}
	return writeTest(generator, cfg, session)
}

func importSnapshot(persist *recorder.Persistence, generator *codegen.Generator, cfg *config.Config, path string) error {
	session, err := persist.Import(path)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %s as session %s\n", path, session.ID)
	return writeTest(generator, cfg, session)
}

func writeTest(generator *codegen.Generator, cfg *config.Config, session *recorder.Session) error {
	path, result, err := generator.Write(session, codegen.Options{
		Prefix:          cfg.TestPrefix,
		OutputDir:       cfg.OutputDir,
		ScriptExtension: cfg.ScriptExtension,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d step(s))\n", path, len(session.Actions)-len(result.Diagnostics))
	for _, diag := range result.Diagnostics {
		fmt.Printf("  skipped action %d: %s\n", diag.Index, diag.Message)
	}
	return nil
}
