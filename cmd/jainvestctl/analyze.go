package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"jainvest/internal/config"
	"jainvest/internal/services"
)

type analyzeCmd struct {
	file  string
	style string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "analyze a financial document" }
func (*analyzeCmd) Usage() string {
	return `jainvestctl analyze [-file <path>] [-style <auto|dark|light|notty>]

  Reads document text from -file, or stdin when omitted, and prints a
  markdown analysis. Without GEMINI_API_KEY the analysis is a sample report.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Text file to analyze (defaults to stdin)")
	f.StringVar(&c.style, "style", "auto", "Glamour style for the output")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var (
		text []byte
		err  error
	)
	if c.file == "" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(c.file)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	analysis, err := services.NewAnalysisService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel).Analyze(ctx, string(text))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	fmt.Println(renderMarkdown(analysis.Content, c.style))
	return subcommands.ExitSuccess
}
