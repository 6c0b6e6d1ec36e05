package main

import (
	"context"
	"flag"
	"fmt"
	"sync"
	"time"

	"cycleplus-tools/cptools/config"
	"cycleplus-tools/cptools/convert"
	"cycleplus-tools/cptools/gpxutils"
	"cycleplus-tools/cptools/ride"
	"cycleplus-tools/cptools/terminal"

	"github.com/google/subcommands"
	"github.com/tkrajina/gpxgo/gpx"
)

type rideCmd struct {
	category string
	gpxFile  string
	save     bool
	tick     time.Duration
	delay    time.Duration
}

func (*rideCmd) Name() string     { return "ride" }
func (*rideCmd) Synopsis() string { return "Replay a GPX ride against the ghost of its category." }
func (*rideCmd) Usage() string {
	return `ride -category <name> -gpx <file> [-save] [-tick 1m] [-delay 0]
	Feed the points of a GPX file to a ride session as GPS fixes, printing
	the ride display and the time difference against the saved ghost.
  `
}

func (c *rideCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "ride category")
	f.StringVar(&c.gpxFile, "gpx", "", "GPX file to replay")
	f.BoolVar(&c.save, "save", true, "save the ride as the new ghost of the category")
	f.DurationVar(&c.tick, "tick", time.Minute, "ride time between two display lines")
	f.DurationVar(&c.delay, "delay", 0, "real time to wait between two fixes, the display then refreshes every second")
}

func (c *rideCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	if c.category == "" || c.gpxFile == "" {
		terminal.Error(nil, "Both -category and -gpx are required")
		return subcommands.ExitUsageError
	}

	g, err := gpx.ParseFile(c.gpxFile)
	if err != nil {
		terminal.Error(err, "Couldn't parse GPX file '%s'", c.gpxFile)
		return subcommands.ExitFailure
	}
	samples := gpxutils.Samples(g)
	if len(samples) == 0 {
		terminal.Error(nil, "No timed track point in '%s'", c.gpxFile)
		return subcommands.ExitFailure
	}

	st, err := cfg.OpenStore()
	if err != nil {
		terminal.Error(err, "Couldn't open ride store")
		return subcommands.ExitFailure
	}
	defer st.Close()

	clk := &replayClock{now: samples[0].Time}
	settings := cfg.Settings()
	settings.Now = clk.Now

	power := ride.PowerFunc(func(on bool, owner string) error {
		fmt.Println(terminal.Dim("  gps power on=%t (%s)", on, owner))
		return nil
	})

	session := ride.New(st, power, settings)
	defer session.Kill()

	session.Start(ctx, c.category)
	if n := session.Snapshot().GhostPoints; n > 0 {
		terminal.Info("Racing against the ghost of '%s' (%d points)", c.category, n)
	} else {
		terminal.Info("No ghost for '%s', riding alone", c.category)
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	if c.delay > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session.Watch(watchCtx, time.Second, printStatus)
		}()
	}

	next := c.tick
	for _, s := range samples {
		clk.Set(s.Time)
		session.OnFix(s.Fix)

		if c.delay > 0 {
			time.Sleep(c.delay)
			continue
		}
		if c.tick > 0 && session.Elapsed() >= next {
			printStatus(session.Snapshot())
			for next <= session.Elapsed() {
				next += c.tick
			}
		}
	}

	stopWatch()
	wg.Wait()

	final := session.Snapshot()
	fmt.Println("")
	fmt.Printf("   Distance: %s km\n", convert.Distance(final.DistanceKm))
	fmt.Printf("   Duration: %s\n", convert.Duration(final.Elapsed))
	if final.HasDelta {
		fmt.Printf("   Ghost:    %s\n", terminal.Ahead(final.Delta < 0, "%s", convert.Delta(final.Delta)))
	}
	fmt.Println("")

	if !c.save {
		session.Discard()
		return subcommands.ExitSuccess
	}

	o := terminal.NewOperation("Saving ride as the ghost of '%s'", c.category)
	saved, err := session.StopAndSave(ctx, c.category)
	if err != nil {
		o.Error(err, "Failed to save ride '%s'", c.category)
		return subcommands.ExitFailure
	}
	switch {
	case !saved:
		o.Skip("Ride too short to be saved")
	case final.HasDelta:
		o.Result(final.Delta < 0, "Ride saved as the ghost of '%s', %s against the previous one", c.category, convert.Delta(final.Delta))
	default:
		o.Success("Ride saved as the ghost of '%s'", c.category)
	}

	return subcommands.ExitSuccess
}

// positions closer than this to the ghost track are on route
const offRouteKm = 0.05

func printStatus(s ride.Snapshot) {
	gps := terminal.Dim("no fix")
	if s.HasFix {
		gps = "fix"
	}

	delta := terminal.Dim("--:--")
	if s.HasDelta {
		delta = terminal.Ahead(s.Delta < 0, "%s", convert.Delta(s.Delta))
	}

	offRoute := ""
	if s.OnGhost && s.OffRouteKm >= offRouteKm {
		offRoute = terminal.Dim("  %s m off the ghost route", convert.Ftoan(s.OffRouteKm*1000))
	}

	fmt.Printf("  %s  %6s km  %5s km/h  %s  %s%s\n",
		convert.Duration(s.Elapsed),
		convert.Distance(s.DistanceKm),
		convert.Speed(s.SpeedKmh),
		delta,
		gps,
		offRoute,
	)
}

// replayClock is the clock of a replayed ride, set to the time of each fix
type replayClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *replayClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *replayClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
