package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nkumar09/matchmaximus/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "matchmaximus",
	Short: "AI-assisted dating profile content assembly",
	Long: `Matchmaximus assembles dating-profile content: it writes and tunes bio
text and evaluates candidate photos with vision-language scoring, captioning,
and improvement tips, persisting a versioned selection record per run.

Examples:
  matchmaximus photos --directory ./photos --top-k 3
  matchmaximus profile --profile data/user_inputs.json`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
