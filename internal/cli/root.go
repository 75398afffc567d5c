package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prep",
	Short: "Interview practice for jobs in the tracker",
	Long: `prep runs mock interviews for jobs you are tracking.

Questions are generated from the job description and each answer is scored
with feedback, then the whole session is reviewed at the end.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
