package main

import (
	"context"
	"flag"
	"os"
	"time"

	"cycleplus-tools/cptools/config"
	"cycleplus-tools/cptools/gpxutils"
	"cycleplus-tools/cptools/terminal"

	"github.com/google/subcommands"
	"github.com/tkrajina/gpxgo/gpx"
)

type exportCmd struct {
	category   string
	outputFile string
	start      string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "Export the ghost of a category to a GPX file." }
func (*exportCmd) Usage() string {
	return `export -category <name> -output <file> [-start <RFC3339 time>]
	Write the ride saved for a category as a GPX track.
  `
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "ride category")
	f.StringVar(&c.outputFile, "output", "", "output GPX file")
	f.StringVar(&c.start, "start", "", "start time of the ride (RFC3339), now if empty")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	if c.category == "" || c.outputFile == "" {
		terminal.Error(nil, "Both -category and -output are required")
		return subcommands.ExitUsageError
	}

	start := time.Now().UTC().Truncate(time.Second)
	if c.start != "" {
		t, err := time.Parse(time.RFC3339, c.start)
		if err != nil {
			terminal.Error(err, "Invalid start time '%s'", c.start)
			return subcommands.ExitUsageError
		}
		start = t
	}

	st, err := cfg.OpenStore()
	if err != nil {
		terminal.Error(err, "Couldn't open ride store")
		return subcommands.ExitFailure
	}
	defer st.Close()

	rec, err := st.Load(ctx, c.category)
	if err != nil {
		terminal.Error(err, "Failed to load ride '%s'", c.category)
		return subcommands.ExitFailure
	}

	o := terminal.NewOperation("Exporting '%s' to '%s'", c.category, c.outputFile)
	xml, err := gpxutils.ToGPX(c.category, *rec, start).ToXml(gpx.ToXmlParams{Version: gpxutils.GpxVersion, Indent: true})
	if err != nil {
		o.Error(err, "Failed to build GPX")
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.outputFile, xml, 0644); err != nil {
		o.Error(err, "Failed to write '%s'", c.outputFile)
		return subcommands.ExitFailure
	}
	o.Success("Exported %d points to '%s'", len(rec.Track), c.outputFile)

	return subcommands.ExitSuccess
}
