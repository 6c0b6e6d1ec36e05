package main

import (
	"context"
	"flag"
	"os"

	"cycleplus-tools/cptools/config"
	t "cycleplus-tools/cptools/terminal"

	"github.com/google/subcommands"
)

func main() {

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&rideCmd{}, "")
	subcommands.Register(&showCmd{}, "")
	subcommands.Register(&listCmd{}, "")
	subcommands.Register(&importCmd{}, "")
	subcommands.Register(&exportCmd{}, "")
	subcommands.Register(&deleteCmd{}, "")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		t.Error(err, "Failed to load config")
		os.Exit(1)
	}

	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx, cfg)))
}
