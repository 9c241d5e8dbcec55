package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"jainvest/internal/clients/pipeline"
	"jainvest/internal/logger"
	"jainvest/internal/market"
	"jainvest/internal/oracle"
)

type oracleCmd struct {
	api     string
	key     string
	symbols string
	every   time.Duration
}

func (*oracleCmd) Name() string     { return "oracle" }
func (*oracleCmd) Synopsis() string { return "push simulated quotes to a running API" }
func (*oracleCmd) Usage() string {
	return `jainvestctl oracle -api <url> -key <pipeline key> [-symbols TCS,INFY] [-every 1m]

  Quotes each symbol with the simulated provider and pushes the prices to
  /api/v1/pipeline/prices. With -every it repeats until interrupted.
`
}

func (c *oracleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.api, "api", "http://localhost:8080", "API base URL")
	f.StringVar(&c.key, "key", os.Getenv("PIPELINE_API_KEY"), "Pipeline API key")
	f.StringVar(&c.symbols, "symbols", strings.Join(market.ListedSymbols(), ","), "Comma-separated symbols")
	f.DurationVar(&c.every, "every", 0, "Repeat interval (0 runs once)")
}

func (c *oracleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.key == "" {
		fmt.Fprintln(os.Stderr, "Error: -key or PIPELINE_API_KEY is required")
		return subcommands.ExitUsageError
	}

	provider := market.NewPseudoProvider(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
	orc := oracle.New(pipeline.New(c.api, c.key, nil), provider, strings.Split(c.symbols, ","))
	log := logger.Named("oracle")

	for {
		result, err := orc.Run(ctx)
		if err != nil {
			log.Errorw("oracle run failed", "error", err)
			return subcommands.ExitFailure
		}
		log.Infow("oracle run completed",
			"prices_fetched", result.PricesFetched,
			"prices_recorded", result.PricesRecorded,
			"errors", len(result.Errors),
			"duration", result.Duration.String(),
		)
		for _, fetchErr := range result.Errors {
			log.Warnw("price fetch failed", "symbol", fetchErr.Symbol, "error", fetchErr.Err.Error())
		}

		if c.every <= 0 {
			return subcommands.ExitSuccess
		}
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case <-time.After(c.every):
		}
	}
}
