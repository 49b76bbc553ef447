package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planwright/internal/infrastructure/config"
	"github.com/felixgeelhaar/planwright/pkg/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a planwright workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}

		repo := storage.NewFilesystemRepository(root)
		if err := repo.Initialize(); err != nil {
			return err
		}
		if err := config.Save(root, config.Default()); err != nil {
			return err
		}

		fmt.Printf("Initialized workspace in %s/%s\n", root, storage.PlanwrightDir)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
