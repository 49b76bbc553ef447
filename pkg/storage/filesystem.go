// Package storage persists planning artifacts in a .planwright workspace
// directory: the validated task plan, the current execution plan, the
// feedback journal and reflection insights.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/insight"
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

const PlanwrightDir = ".planwright"
const PlanFile = "plan.json"
const ExecutionFile = "execution.json"
const FeedbackFile = "feedback.jsonl"
const InsightsFile = "insights.json"
const ConfigFile = "config.yaml"

// FeedbackDropDir is where external executors drop feedback files for watch
// mode; it lives inside the workspace directory.
const FeedbackDropDir = "feedback"

// ErrNotFound indicates the requested artifact has not been saved yet.
var ErrNotFound = errors.New("artifact not found")

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .planwright directory and
// prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, PlanwrightDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, PlanwrightDir)
	if err := os.MkdirAll(filepath.Join(path, FeedbackDropDir), 0700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", PlanwrightDir, err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, PlanwrightDir))
	return err == nil
}

// FeedbackDropPath returns the directory watched for executor feedback files.
func (r *FilesystemRepository) FeedbackDropPath() string {
	return filepath.Join(r.root, PlanwrightDir, FeedbackDropDir)
}

func (r *FilesystemRepository) SaveTaskPlan(p *plan.TaskPlan) error {
	path, err := r.ResolvePath(PlanFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadTaskPlan() (*plan.TaskPlan, error) {
	retryer := retry.New[*plan.TaskPlan](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*plan.TaskPlan, error) {
		path, err := r.ResolvePath(PlanFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, PlanFile)
			}
			return nil, fmt.Errorf("failed to read plan file: %w", err)
		}

		var p plan.TaskPlan
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
		return &p, nil
	})
}

func (r *FilesystemRepository) SaveExecutionPlan(ep *schedule.ExecutionPlan) error {
	path, err := r.ResolvePath(ExecutionFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(ep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal execution plan: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadExecutionPlan() (*schedule.ExecutionPlan, error) {
	retryer := retry.New[*schedule.ExecutionPlan](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*schedule.ExecutionPlan, error) {
		path, err := r.ResolvePath(ExecutionFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, ExecutionFile)
			}
			return nil, fmt.Errorf("failed to read execution plan file: %w", err)
		}

		var ep schedule.ExecutionPlan
		if err := json.Unmarshal(data, &ep); err != nil {
			return nil, fmt.Errorf("failed to unmarshal execution plan: %w", err)
		}
		return &ep, nil
	})
}

// AppendFeedback appends one feedback record to the journal.
func (r *FilesystemRepository) AppendFeedback(fb execution.Feedback) error {
	path, err := r.ResolvePath(FeedbackFile)
	if err != nil {
		return err
	}

	data, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open feedback journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append feedback: %w", err)
	}
	return nil
}

// LoadFeedback reads the full feedback journal in arrival order.
func (r *FilesystemRepository) LoadFeedback() ([]execution.Feedback, error) {
	path, err := r.ResolvePath(FeedbackFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read feedback journal: %w", err)
	}

	var out []execution.Feedback
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var fb execution.Feedback
		if err := json.Unmarshal([]byte(line), &fb); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feedback line: %w", err)
		}
		out = append(out, fb)
	}
	return out, nil
}

func (r *FilesystemRepository) SaveInsights(ins *insight.PerformanceInsights) error {
	path, err := r.ResolvePath(InsightsFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(ins, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal insights: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadInsights() (*insight.PerformanceInsights, error) {
	path, err := r.ResolvePath(InsightsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, InsightsFile)
		}
		return nil, fmt.Errorf("failed to read insights file: %w", err)
	}

	var ins insight.PerformanceInsights
	if err := json.Unmarshal(data, &ins); err != nil {
		return nil, fmt.Errorf("failed to unmarshal insights: %w", err)
	}
	return &ins, nil
}

// SaveConfig writes the workspace configuration as YAML.
func (r *FilesystemRepository) SaveConfig(cfg any) error {
	path, err := r.ResolvePath(ConfigFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadConfig reads the workspace configuration into out.
func (r *FilesystemRepository) LoadConfig(out any) error {
	path, err := r.ResolvePath(ConfigFile)
	if err != nil {
		return err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, ConfigFile)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}
