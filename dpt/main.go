package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/tohlinger/depot/cmd"
)

func main() {
	// Shell completion runs before anything else and exits when the
	// binary is invoked by the shell's completion machinery.
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{Flags: map[string]complete.Predictor{}}
	}
	sub["build"].Flags["o"] = predict.Dirs("*")
	sub["publish"].Flags["o"] = predict.Files("*.html")
	completion := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"activity-file": predict.Files("*.csv"),
			"prices-file":   predict.Files("*.jsonl"),
			"tickers-file":  predict.Files("*.json"),
		},
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
