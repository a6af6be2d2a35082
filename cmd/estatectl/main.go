// Command estatectl exercises the property search pipeline from a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ayash-Bera/propsearch/internal/app"
	"github.com/Ayash-Bera/propsearch/internal/config"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

type globalOptions struct {
	jsonOutput bool
	noColor    bool
	verbose    bool
	noLLM      bool
	timeout    time.Duration
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "estatectl",
		Short: "Parse, search and ask about property listings",
		Long: `estatectl runs the natural-language property search pipeline locally.

Use it to:
- See how a free-text query is parsed into filters
- Run a structured search through the query cache
- Ask a question and read the answer the API would return
- Inspect the query cache`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	root.SetOut(out)

	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print raw JSON")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	root.PersistentFlags().BoolVar(&opts.noLLM, "no-llm", false, "skip the LLM fallback")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall command timeout")

	root.AddCommand(
		newParseCmd(opts),
		newSearchCmd(opts),
		newAskCmd(opts),
		newCacheCmd(opts),
	)
	return root
}

// loadConfig applies the command-line overrides on top of viper's config.
func (o *globalOptions) loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if o.noLLM {
		cfg.LLM.Enabled = false
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logger := utils.NewLogger(level, os.Stderr)
	return cfg, logger, nil
}

func (o *globalOptions) openApp() (*app.App, error) {
	cfg, logger, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logger)
}

func (o *globalOptions) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout)
}

func (o *globalOptions) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), o.jsonOutput)
}
