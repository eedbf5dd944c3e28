// Package cmd provides the ffctl commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"firefly-assistant/internal/app"
	"firefly-assistant/pkg/config"
	"firefly-assistant/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	debug bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ffctl",
		Short: "Parse and record Firefly III transactions from the terminal",
		Long: `ffctl uses the same services as the firefly-assistant server.

Configuration is read from .env and the environment.

Example:
  ffctl parse "07.06 lunch 66"
  echo "coffee 4.5" | ffctl parse -
  ffctl record --file drafts.json --dry-run
  ffctl vocab`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newParseCmd(opts),
		newRecordCmd(opts),
		newVocabCmd(opts),
		newAccountsCmd(opts),
		newTransactionsCmd(opts),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration and a logger writing to stderr.
func setup(opts *options) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Logger.Level
	if opts.debug {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// withLedger runs fn with services that do not need the language model.
func withLedger(ctx context.Context, opts *options, fn func(deps *app.Deps) error) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	deps, err := app.BuildLedger(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	return fn(deps)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readInput(in io.Reader, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func readFile(path string, in io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}
