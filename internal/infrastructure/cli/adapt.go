package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
)

var (
	feedbackFile   string
	feedbackTask   string
	feedbackStatus string
	actualDuration float64
)

var adaptCmd = &cobra.Command{
	Use:   "adapt",
	Short: "Adapt the current execution plan from executor feedback",
	Long: `Adapt applies one piece of execution feedback. Failed tasks trigger a
replan, blocked tasks are moved to the end of the order, observed durations
rescale the plan-wide estimates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var fb execution.Feedback
		switch {
		case feedbackFile != "":
			data, err := os.ReadFile(feedbackFile)
			if err != nil {
				return fmt.Errorf("read feedback file: %w", err)
			}
			if err := json.Unmarshal(data, &fb); err != nil {
				return fmt.Errorf("decode feedback: %w", err)
			}
		case feedbackTask != "" && feedbackStatus != "":
			fb = execution.Feedback{
				TaskID:         feedbackTask,
				Status:         execution.FeedbackStatus(feedbackStatus),
				ActualDuration: actualDuration,
			}
		default:
			return fmt.Errorf("either --file or both --task and --status are required")
		}

		services, err := loadServices(nil)
		if err != nil {
			return err
		}

		ep, err := services.Adaptation.Apply(cmd.Context(), "", fb)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Plan adapted: %s (version %d)\n", ep.ID, ep.PlanVersion)
		fmt.Printf("Execution order: %s\n", strings.Join(ep.ExecutionOrder, " -> "))
		if len(ep.OrphanedTasks) > 0 {
			fmt.Printf("Orphaned tasks: %s\n", strings.Join(ep.OrphanedTasks, ", "))
		}
		return nil
	},
}

func init() {
	adaptCmd.Flags().StringVarP(&feedbackFile, "file", "f", "", "read feedback from a JSON file")
	adaptCmd.Flags().StringVar(&feedbackTask, "task", "", "task id the feedback refers to")
	adaptCmd.Flags().StringVar(&feedbackStatus, "status", "", "observed status (completed|failed|blocked|in_progress)")
	adaptCmd.Flags().Float64Var(&actualDuration, "duration", 0, "observed duration in minutes")
	RootCmd.AddCommand(adaptCmd)
}
