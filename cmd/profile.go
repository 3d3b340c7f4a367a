package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/wealth"
)

type profileCmd struct {
	list bool
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "list or activate a demo profile" }
func (*profileCmd) Usage() string {
	return `fin profile -list
fin profile <id>

  Lists the demo profiles, or stores one as the active record.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List the demo profiles.")
}

func (c *profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		for _, id := range wealth.DefaultBundle().ProfileIDs() {
			fmt.Fprintln(stdout, id)
		}
		return subcommands.ExitSuccess
	}
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: profile expects one profile id, or -list")
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		r, err := a.session.UseProfile(ctx, f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error activating profile: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Active record is now %s\n", r.UserID)
		return subcommands.ExitSuccess
	})
}
