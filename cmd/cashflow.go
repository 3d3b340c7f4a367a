package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/date"
	"github.com/etnz/wealth/renderer"
)

type cashFlowCmd struct {
	period string
	json   bool
}

func (*cashFlowCmd) Name() string     { return "cashflow" }
func (*cashFlowCmd) Synopsis() string { return "display inflow and outflow per period" }
func (*cashFlowCmd) Usage() string {
	return `fin cashflow [-p <period>] [-json]

  Groups the transactions of the active record by period and displays the
  inflow, outflow and net of each. Transactions with an unreadable date are
  counted but skipped.

  Periods: daily, weekly, monthly, quarterly, yearly.
`
}

func (c *cashFlowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", date.Monthly.String(), "Period to group transactions by.")
	f.BoolVar(&c.json, "json", false, "Print the flows as JSON.")
}

func (c *cashFlowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		r, err := a.session.Active(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading record: %v\n", err)
			return subcommands.ExitFailure
		}
		flows, skipped := wealth.CashFlow(r, period)
		report := &renderer.CashFlow{Currency: r.Currency, Period: period, Flows: flows, Skipped: skipped}
		if !c.json {
			printMarkdown(renderer.RenderCashFlow(report))
			return subcommands.ExitSuccess
		}
		if flows == nil {
			flows = []wealth.Flow{}
		}
		if err := printJSON(flows); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing cash flow: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
