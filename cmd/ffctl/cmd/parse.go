package cmd

import (
	"firefly-assistant/internal/app"

	"github.com/spf13/cobra"
)

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text|->",
		Short: "Parse free text into transaction drafts",
		Long: `Sends the text to the configured language model and prints the drafts
as JSON. Use "-" to read the text from stdin. The output can be fed to
"ffctl record --file -".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			deps, err := app.Build(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer deps.Close()

			result := deps.Parser.Parse(cmd.Context(), text)
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}
