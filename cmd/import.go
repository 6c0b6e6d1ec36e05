package main

import (
	"context"
	"flag"
	"time"

	"cycleplus-tools/cptools/config"
	"cycleplus-tools/cptools/convert"
	"cycleplus-tools/cptools/gpxutils"
	"cycleplus-tools/cptools/terminal"

	"github.com/google/subcommands"
	"github.com/tkrajina/gpxgo/gpx"
)

type importCmd struct {
	category string
	gpxFile  string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "Import a GPX file as the ghost of a category." }
func (*importCmd) Usage() string {
	return `import -category <name> -gpx <file>
	Replace the ghost of a category with a ride recorded elsewhere.
  `
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "ride category")
	f.StringVar(&c.gpxFile, "gpx", "", "GPX file to import")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	if c.category == "" || c.gpxFile == "" {
		terminal.Error(nil, "Both -category and -gpx are required")
		return subcommands.ExitUsageError
	}

	o := terminal.NewOperation("Reading GPX file '%s'", c.gpxFile)
	g, err := gpx.ParseFile(c.gpxFile)
	if err != nil {
		o.Error(err, "Couldn't parse GPX file '%s'", c.gpxFile)
		return subcommands.ExitFailure
	}
	rec, start, err := gpxutils.ToRecord(g, time.Duration(cfg.ThinningSeconds)*time.Second)
	if err != nil {
		o.Error(err, "Couldn't build a ride from '%s'", c.gpxFile)
		return subcommands.ExitFailure
	}
	o.Success("Ride of %s read (%d points, %s km)", start.Format(dateFormat), len(rec.Track), convert.Distance(rec.DistanceKm()))

	st, err := cfg.OpenStore()
	if err != nil {
		terminal.Error(err, "Couldn't open ride store")
		return subcommands.ExitFailure
	}
	defer st.Close()

	o = terminal.NewOperation("Saving ghost of '%s'", c.category)
	if _, err := st.Save(ctx, c.category, rec); err != nil {
		o.Error(err, "Failed to save ghost of '%s'", c.category)
		return subcommands.ExitFailure
	}
	o.Success("Ghost of '%s' replaced", c.category)

	return subcommands.ExitSuccess
}
