package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/planwright/internal/infrastructure/wiring"
	domainreasoning "github.com/felixgeelhaar/planwright/pkg/domain/reasoning"
)

func getWorkspaceRoot() (string, error) {
	if workspacePath != "" {
		abs, err := filepath.Abs(workspacePath)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path %q: %w", workspacePath, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("workspace path %q: %w", abs, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("workspace path %q is not a directory", abs)
		}
		return abs, nil
	}
	return os.Getwd()
}

func loadServices(provider domainreasoning.Provider) (*wiring.AppServices, error) {
	root, err := getWorkspaceRoot()
	if err != nil {
		return nil, err
	}
	services, err := wiring.BuildAppServices(root, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", err)
	}
	return services, nil
}
