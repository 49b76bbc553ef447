package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planwright/pkg/reasoning"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage task and execution plans",
}

var (
	decompositionFile string
	goalCapabilities  []string
)

var planDecomposeCmd = &cobra.Command{
	Use:   "decompose [goal]",
	Short: "Decompose a goal into a validated task plan",
	Long: `Decompose reads a raw decomposition payload and validates it into a task
plan. With --from-file the payload is read from disk; otherwise the goal text
is sent to the configured reasoning provider.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if decompositionFile == "" && len(args) == 0 {
			return fmt.Errorf("either a goal argument or --from-file is required")
		}

		var provider reasoning.Provider
		if decompositionFile != "" {
			p, err := reasoning.NewFileProvider(decompositionFile)
			if err != nil {
				return err
			}
			provider = p
		}

		services, err := loadServices(provider)
		if err != nil {
			return err
		}
		if provider == nil {
			return fmt.Errorf("no reasoning provider configured; use --from-file to supply a decomposition payload")
		}

		goal := strings.Join(args, " ")
		if goal == "" {
			goal = "(from file)"
		}

		p, err := services.Planning.DecomposeGoal(cmd.Context(), goal, goalCapabilities)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Validated plan for goal: %s\n", p.GoalID)
		fmt.Printf("Sub-goals: %d, tasks: %d, version: %d\n", len(p.SubGoals), len(p.Tasks()), p.Version)
		return nil
	},
}

var planCompileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the current task plan into an execution plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(nil)
		if err != nil {
			return err
		}

		p, err := services.Repo.LoadTaskPlan()
		if err != nil {
			return MapError(err)
		}

		ep, err := services.Planning.CompilePlan(cmd.Context(), p)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Compiled execution plan: %s\n", ep.ID)
		fmt.Printf("Execution order: %s\n", strings.Join(ep.ExecutionOrder, " -> "))
		for i, group := range ep.ParallelGroups {
			fmt.Printf("Parallel group %d: %s\n", i+1, strings.Join(group, ", "))
		}
		fmt.Printf("Estimated duration: %.0f min, estimated cost: %.2f\n", ep.EstimatedDuration, ep.EstimatedCost)
		fmt.Printf("Checkpoints: %d, fallback strategies: %d\n", len(ep.Checkpoints), len(ep.FallbackStrategies))
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current execution plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(nil)
		if err != nil {
			return err
		}

		ep, err := services.Repo.LoadExecutionPlan()
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Execution plan %s (plan version %d)\n", ep.ID, ep.PlanVersion)
		for i, id := range ep.ExecutionOrder {
			req := ep.ResourceAllocation[id]
			fmt.Printf("%2d. %s (%s, %.0f min, %s)\n", i+1, id, req.Priority, req.EstimatedDuration, req.ResourceType)
		}
		if len(ep.OrphanedTasks) > 0 {
			fmt.Printf("Orphaned tasks: %s\n", strings.Join(ep.OrphanedTasks, ", "))
		}
		return nil
	},
}

func init() {
	planDecomposeCmd.Flags().StringVarP(&decompositionFile, "from-file", "f", "", "read the decomposition payload from a JSON or YAML file")
	planDecomposeCmd.Flags().StringSliceVar(&goalCapabilities, "capability", nil, "capability available to the executor (repeatable)")
	planCmd.AddCommand(planDecomposeCmd)
	planCmd.AddCommand(planCompileCmd)
	planCmd.AddCommand(planShowCmd)
	RootCmd.AddCommand(planCmd)
}
