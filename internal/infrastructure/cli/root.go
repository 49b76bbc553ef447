package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "planwright",
	Version: Version,
	Short:   "Goal decomposition and adaptive execution planning",
	Long: `Planwright turns a high-level goal into a dependency-aware execution plan.
It validates the decomposition, schedules it topologically, finds safe
parallel groups, attaches checkpoints and fallbacks, and adapts the plan
as execution feedback arrives.`,
}

// workspacePath overrides the workspace root (defaults to the working directory).
var workspacePath string

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", "", "workspace root (defaults to current directory)")
}
