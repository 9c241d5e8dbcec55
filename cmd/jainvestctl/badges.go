package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"jainvest/internal/services"
)

type badgesCmd struct {
	score  int
	streak int
}

func (*badgesCmd) Name() string     { return "badges" }
func (*badgesCmd) Synopsis() string { return "show the badges a score and streak earn" }
func (*badgesCmd) Usage() string {
	return `jainvestctl badges -score <points> -streak <days>
`
}

func (c *badgesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.score, "score", 0, "Total score")
	f.IntVar(&c.streak, "streak", 0, "Streak in days")
}

func (c *badgesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.score < 0 || c.streak < 0 {
		fmt.Fprintln(os.Stderr, "Error: score and streak must not be negative")
		return subcommands.ExitUsageError
	}
	badges := services.CalculateBadges(c.score, c.streak)
	if len(badges) == 0 {
		fmt.Println("No badges yet")
		return subcommands.ExitSuccess
	}
	fmt.Println(strings.Join(badges, "\n"))
	return subcommands.ExitSuccess
}
