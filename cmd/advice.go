package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/wealth"
)

type adviceContextCmd struct{}

func (*adviceContextCmd) Name() string { return "advice-context" }
func (*adviceContextCmd) Synopsis() string {
	return "print the record context handed to an advice generator"
}
func (*adviceContextCmd) Usage() string {
	return `fin advice-context

  Prints the active record without its transactions, together with its total
  assets, total liabilities, net worth and data issues, as JSON.
`
}

func (*adviceContextCmd) SetFlags(f *flag.FlagSet) {}

func (*adviceContextCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		r, err := a.session.Active(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading record: %v\n", err)
			return subcommands.ExitFailure
		}
		data, err := wealth.AdviceContext(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building advice context: %v\n", err)
			return subcommands.ExitFailure
		}
		var b bytes.Buffer
		if err := json.Indent(&b, data, "", "  "); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing advice context: %v\n", err)
			return subcommands.ExitFailure
		}
		b.WriteByte('\n')
		stdout.Write(b.Bytes())
		return subcommands.ExitSuccess
	})
}
