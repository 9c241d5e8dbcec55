// Command jainvestctl runs jainvest simulations and tooling from a terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"jainvest/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&backtestCmd{}, "simulation")
	commander.Register(&badgesCmd{}, "simulation")
	commander.Register(&analyzeCmd{}, "documents")
	commander.Register(&oracleCmd{}, "market")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
