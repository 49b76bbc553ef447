package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
)

var resultsFile string

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Reflect on a completed run and store the insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resultsFile == "" {
			return fmt.Errorf("--file with the run results is required")
		}

		data, err := os.ReadFile(resultsFile)
		if err != nil {
			return fmt.Errorf("read results file: %w", err)
		}
		var res execution.Results
		if err := json.Unmarshal(data, &res); err != nil {
			return fmt.Errorf("decode results: %w", err)
		}

		services, err := loadServices(nil)
		if err != nil {
			return err
		}

		ins, err := services.Reflection.Reflect(cmd.Context(), res)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Insights for plan %s (confidence %.2f)\n", ins.PlanID, ins.ConfidenceScore)
		if len(ins.Strengths) > 0 {
			fmt.Printf("Strengths: %s\n", strings.Join(ins.Strengths, "; "))
		}
		if len(ins.Weaknesses) > 0 {
			fmt.Printf("Weaknesses: %s\n", strings.Join(ins.Weaknesses, "; "))
		}
		for _, rec := range ins.Recommendations {
			fmt.Printf("- %s\n", rec)
		}
		return nil
	},
}

func init() {
	reflectCmd.Flags().StringVarP(&resultsFile, "file", "f", "", "read run results from a JSON file")
	RootCmd.AddCommand(reflectCmd)
}
