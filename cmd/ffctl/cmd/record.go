package cmd

import (
	"encoding/json"
	"fmt"

	"firefly-assistant/internal/app"
	"firefly-assistant/internal/models"

	"github.com/spf13/cobra"
)

func newRecordCmd(opts *options) *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Validate and record transaction drafts",
		Long: `Reads a JSON array of drafts, or the output of "ffctl parse", and posts
the valid ones to Firefly III. With --dry-run nothing is posted and the
would-be payloads are printed instead.

Example:
  ffctl parse "lunch 66" | ffctl record --file - --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(file, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read drafts: %w", err)
			}
			drafts, err := decodeDrafts(data)
			if err != nil {
				return err
			}

			return withLedger(cmd.Context(), opts, func(deps *app.Deps) error {
				result, err := deps.Recorder.Record(cmd.Context(), drafts, dryRun)
				if err != nil {
					return err
				}
				if err := printJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				if result.ErrorCount > 0 {
					return fmt.Errorf("%d of %d transactions failed", result.ErrorCount, len(result.Outcomes))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", `JSON file with drafts ("-" for stdin)`)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and print payloads without posting")
	return cmd
}

// decodeDrafts accepts a bare array or a parse result object.
func decodeDrafts(data []byte) ([]models.TransactionDraft, error) {
	var drafts []models.TransactionDraft
	if err := json.Unmarshal(data, &drafts); err == nil {
		return drafts, nil
	}

	var parsed models.ParseResult
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("drafts must be a JSON array or a parse result: %w", err)
	}
	return parsed.Transactions, nil
}
