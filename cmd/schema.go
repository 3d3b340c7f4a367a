package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/wealth/extract"
)

type schemaCmd struct {
	config bool
}

func (*schemaCmd) Name() string     { return "schema" }
func (*schemaCmd) Synopsis() string { return "print the response schema of a financial record" }
func (*schemaCmd) Usage() string {
	return `fin schema [-config]

  Prints the JSON schema a model must follow to produce an importable
  record. Use -config to print the whole generation config, with the
  system instruction.
`
}

func (c *schemaCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.config, "config", false, "Print the generation config instead of the schema.")
}

func (c *schemaCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var v any = extract.Schema()
	if c.config {
		v = extract.Config()
	}
	if err := printJSON(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schema: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
