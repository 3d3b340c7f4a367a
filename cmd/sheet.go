package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/wealth/extract"
)

type sheetCmd struct{}

func (*sheetCmd) Name() string     { return "sheet" }
func (*sheetCmd) Synopsis() string { return "convert a CSV export to plain text" }
func (*sheetCmd) Usage() string {
	return `fin sheet <file.csv>

  Prints the rows of a CSV export as plain text, cells separated by " | ".
  The output is meant to be handed to a model along with 'fin schema'.

  Only CSV is read: export xlsx or ods workbooks to CSV first.
`
}

func (*sheetCmd) SetFlags(f *flag.FlagSet) {}

func (*sheetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: sheet expects exactly one file")
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	text, err := extract.SheetText(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, text)
	return subcommands.ExitSuccess
}
