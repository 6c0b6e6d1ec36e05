package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"cycleplus-tools/cptools/config"
	"cycleplus-tools/cptools/convert"
	"cycleplus-tools/cptools/store"
	"cycleplus-tools/cptools/terminal"
	"cycleplus-tools/cptools/track"

	"github.com/google/subcommands"
)

// margin around the ride when framing a map, in degrees
const mapMargin = 0.005

type showCmd struct {
	category string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "Show the ghost ride of a category." }
func (*showCmd) Usage() string {
	return `show -category <name>
	Print the statistics of the ride saved for a category.
  `
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "ride category")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	st, err := cfg.OpenStore()
	if err != nil {
		terminal.Error(err, "Couldn't open ride store")
		return subcommands.ExitFailure
	}
	defer st.Close()

	rec, err := st.Load(ctx, c.category)
	if errors.Is(err, store.ErrRecordNotFound) {
		terminal.Error(nil, "No ride saved for '%s'", c.category)
		return subcommands.ExitFailure
	}
	if err != nil {
		terminal.Error(err, "Failed to load ride '%s'", c.category)
		return subcommands.ExitFailure
	}

	duration := seconds(rec.DurationSeconds)
	fmt.Println("")
	fmt.Printf("   %s\n", c.category)
	fmt.Printf("   Distance: %s km (%s mi)\n", convert.Distance(rec.DistanceKm()), convert.Distance(convert.ToMiles(rec.DistanceKm())))
	fmt.Printf("   Duration: %s\n", convert.Duration(duration))
	if h := duration.Hours(); h > 0 {
		fmt.Printf("   Average:  %s km/h\n", convert.Speed(rec.DistanceKm()/h))
	}
	fmt.Printf("   Points:   %d\n", len(rec.Track))
	if b, ok := track.BoundsOf(rec.Track); ok {
		fmt.Printf("   Bounds:   %.5f,%.5f %.5f,%.5f\n", b.MinLat, b.MinLng, b.MaxLat, b.MaxLng)
		a := b.Extend(mapMargin)
		fmt.Printf("   Map area: %.4f,%.4f %.4f,%.4f\n", a.MinLat, a.MinLng, a.MaxLat, a.MaxLng)
	}
	fmt.Println("")

	return subcommands.ExitSuccess
}

func seconds(s int) time.Duration {
	return time.Duration(s) * time.Second
}
