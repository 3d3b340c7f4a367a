package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/etnz/wealth/extract"
)

type importCmd struct {
	path     string
	response bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the active record with a JSON document" }
func (*importCmd) Usage() string {
	return `fin import [-path <jsonpath>] [-response] <file>

  Merges the JSON document in <file> into the default record and makes the
  result the active record. Use "-" to read the standard input.

  Fields missing from the document keep their default value. A document
  without a usable user_id gets a new identifier.

  -path selects the record inside a larger document, e.g. '$.data'.
  -response reads a saved model response and imports the JSON it carries.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "", "JSONPath of the record inside the document.")
	f.BoolVar(&c.response, "response", false, "The file is a generate content response.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import expects exactly one file")
		return subcommands.ExitUsageError
	}
	doc, err := readInput(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	if c.response {
		var resp genai.GenerateContentResponse
		if err := json.Unmarshal(doc, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding response: %v\n", err)
			return subcommands.ExitFailure
		}
		text, err := extract.ResponseText(&resp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading response: %v\n", err)
			return subcommands.ExitFailure
		}
		doc = []byte(text)
	}

	if c.path != "" {
		doc, err = extract.Locate(doc, c.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error locating %q: %v\n", c.path, err)
			return subcommands.ExitFailure
		}
	}

	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		r, err := a.session.Replace(ctx, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing record: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Imported record %s\n", r.UserID)
		return subcommands.ExitSuccess
	})
}

// readInput reads a file, or the standard input for "-".
func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}
