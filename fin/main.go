// Command fin manages a personal financial record.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/cmd"
	"github.com/etnz/wealth/date"
	"github.com/etnz/wealth/docs"
	"github.com/etnz/wealth/internal/config"
)

func main() {
	completion().Complete("fin")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
// Install it with COMP_INSTALL=1 fin.
func completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	periods := make([]string, 0, len(date.Periods))
	for _, p := range date.Periods {
		periods = append(periods, p.String())
	}
	jsonFlag := map[string]complete.Predictor{"json": predict.Nothing}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"store":      predict.Set(config.Backends),
			"store-path": predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"show":           {Flags: jsonFlag},
			"summary":        {Flags: jsonFlag},
			"advice-context": {},
			"clear":          {},
			"cashflow": {Flags: map[string]complete.Predictor{
				"p":    predict.Set(periods),
				"json": predict.Nothing,
			}},
			"import": {
				Flags: map[string]complete.Predictor{"path": predict.Something, "response": predict.Nothing},
				Args:  predict.Files("*.json"),
			},
			"sheet":   {Args: predict.Files("*.csv")},
			"schema":  {Flags: map[string]complete.Predictor{"config": predict.Nothing}},
			"profile": {Flags: map[string]complete.Predictor{"list": predict.Nothing}, Args: predict.Set(wealth.DefaultBundle().ProfileIDs())},
			"serve": {Flags: map[string]complete.Predictor{
				"host": predict.Something,
				"port": predict.Something,
			}},
			"topic": {Args: predict.Set(append(topics, "*"))},
		},
	}
}
