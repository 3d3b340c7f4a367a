package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/wealth/renderer"
)

type showCmd struct {
	json bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the active financial record" }
func (*showCmd) Usage() string {
	return `fin show [-json]

  Displays the active record: profile, assets, liabilities, SIPs and
  transactions. Use -json to print the record as stored.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the record as JSON.")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		r, err := a.session.Active(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading record: %v\n", err)
			return subcommands.ExitFailure
		}
		if !c.json {
			printMarkdown(renderer.RenderRecord(r))
			return subcommands.ExitSuccess
		}
		if err := printJSON(r); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing record: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
