package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"cycleplus-tools/cptools/config"
	"cycleplus-tools/cptools/convert"
	"cycleplus-tools/cptools/store"
	"cycleplus-tools/cptools/terminal"

	"github.com/dustin/go-humanize"
	"github.com/google/subcommands"
)

type listCmd struct {
	format     string
	outputFile string
}

const (
	jsonF = "json"
	textF = "text"
	csvF  = "csv"
)

const dateFormat = "01/02/2006"

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "List the saved ghost rides." }
func (*listCmd) Usage() string {
	return `list [-format text|json|csv] [-output <file>]
	List the ride saved for every category.
  `
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "text", "format to display rides (json, text, csv)")
	f.StringVar(&c.outputFile, "output", "", "output file")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	// validate parameters
	switch c.format {
	case jsonF, textF, csvF:
	default:
		terminal.Error(nil, "Invalid format '%s'", c.format)
		return subcommands.ExitUsageError
	}

	st, err := cfg.OpenStore()
	if err != nil {
		terminal.Error(err, "Couldn't open ride store")
		return subcommands.ExitFailure
	}
	defer st.Close()

	rides, err := st.List(ctx)
	if err != nil {
		terminal.Error(err, "Failed to list rides")
		return subcommands.ExitFailure
	}

	// get a file writer if needed
	var w io.Writer = os.Stdout
	if c.outputFile != "" {
		file, err := os.Create(c.outputFile)
		if err != nil {
			terminal.Error(err, "Could not open file '%s'", c.outputFile)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := writeRides(w, c.format, rides); err != nil {
		terminal.Error(err, "Failed to write rides")
		return subcommands.ExitFailure
	}

	if c.outputFile != "" {
		terminal.Info("%d rides exported to %s", len(rides), c.outputFile)
	}

	return subcommands.ExitSuccess
}

func writeRides(w io.Writer, format string, rides []store.Summary) error {
	switch format {
	case textF:
		for _, r := range rides {
			fmt.Fprintf(w, "%s - %s km in %s (%d points), saved %s\n",
				r.Category, convert.Distance(r.DistanceKm),
				convert.Duration(seconds(r.DurationSeconds)), r.Points, humanize.Time(r.SavedAt))
		}
	case jsonF:
		elts := make([]map[string]interface{}, len(rides))
		for i, r := range rides {
			elts[i] = map[string]interface{}{
				"category":         r.Category,
				"saved_at":         r.SavedAt.Format(dateFormat),
				"distance_km":      r.DistanceKm,
				"duration_seconds": r.DurationSeconds,
				"points":           r.Points,
			}
		}
		jsonStr, err := json.MarshalIndent(elts, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(jsonStr))
	case csvF:
		csvW := csv.NewWriter(w)
		csvW.Write([]string{"category", "saved at", "distance(km)", "duration(s)", "points"})
		for _, r := range rides {
			csvW.Write([]string{r.Category, r.SavedAt.Format(dateFormat), convert.Distance(r.DistanceKm), strconv.Itoa(r.DurationSeconds), strconv.Itoa(r.Points)})
		}
		csvW.Flush()
		return csvW.Error()
	}

	return nil
}
