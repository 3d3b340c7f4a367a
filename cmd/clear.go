package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type clearCmd struct{}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete the stored record" }
func (*clearCmd) Usage() string {
	return `fin clear

  Deletes the stored record. The sample record is selected on the next run.
`
}

func (*clearCmd) SetFlags(f *flag.FlagSet) {}

func (*clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if err := a.session.Clear(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing record: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, "Record cleared")
		return subcommands.ExitSuccess
	})
}
