package main

import (
	"context"
	"errors"
	"flag"

	"cycleplus-tools/cptools/config"
	"cycleplus-tools/cptools/store"
	"cycleplus-tools/cptools/terminal"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	category string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "Delete the ghost ride of a category." }
func (*deleteCmd) Usage() string {
	return `delete -category <name>
	Deletes the saved ride of a category. The next ride of the category has no ghost.
  `
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "ride category")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	st, err := cfg.OpenStore()
	if err != nil {
		terminal.Error(err, "Couldn't open ride store")
		return subcommands.ExitFailure
	}
	defer st.Close()

	o := terminal.NewOperation("Deleting ride '%s'", c.category)
	err = st.Delete(ctx, c.category)
	if errors.Is(err, store.ErrRecordNotFound) {
		o.Error(nil, "No ride saved for '%s'", c.category)
		return subcommands.ExitFailure
	}
	if err != nil {
		o.Error(err, "Failed to delete ride '%s'", c.category)
		return subcommands.ExitFailure
	}
	o.Success("Successfully deleted ride '%s'", c.category)

	return subcommands.ExitSuccess
}
