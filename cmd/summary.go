package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	json bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display totals, allocation and data issues" }
func (*summaryCmd) Usage() string {
	return `fin summary [-json]

  Displays the total assets, total liabilities and net worth of the active
  record, its allocation by asset class, and the issues found in its data.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the summary as JSON.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		r, err := a.session.Active(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading record: %v\n", err)
			return subcommands.ExitFailure
		}
		s := wealth.Summarize(r)
		if !c.json {
			printMarkdown(renderer.RenderSummary(s))
			return subcommands.ExitSuccess
		}
		if err := printJSON(s); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
