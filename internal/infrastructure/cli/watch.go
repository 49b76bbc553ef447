package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planwright/internal/infrastructure/watch"
	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the feedback drop directory and adapt continuously",
	Long: `Watch observes the workspace feedback directory. Executors drop one JSON
feedback object per file; each file is applied to the current execution plan
and removed. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(nil)
		if err != nil {
			return err
		}

		handler := func(ctx context.Context, fb execution.Feedback) error {
			ep, err := services.Adaptation.Apply(ctx, "", fb)
			if err != nil {
				return err
			}
			fmt.Printf("Applied %s feedback for %s; plan is now %s (version %d)\n",
				fb.Status, fb.TaskID, ep.ID, ep.PlanVersion)
			return nil
		}

		debounce := time.Duration(services.Config.Watch.DebounceMs) * time.Millisecond
		watcher, err := watch.NewFeedbackWatcher(services.Repo.FeedbackDropPath(), debounce, handler)
		if err != nil {
			return err
		}
		watcher.OnError(func(err error) {
			fmt.Printf("Warning: %v\n", MapError(err))
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s for feedback...\n", services.Repo.FeedbackDropPath())
		if err := watcher.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
