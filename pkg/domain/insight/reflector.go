// Package insight summarizes completed runs into actionable performance
// insights for the memory store.
package insight

import (
	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
)

// Thresholds and pattern labels for reflection.
const (
	strongSuccessRate = 0.8
	weakSuccessRate   = 0.6
	lowQualityScore   = 0.7

	// expectedMinutesPerTask is the baseline used to spot slow runs.
	expectedMinutesPerTask = 60

	patternSlowTasks = "tasks taking longer than expected"
	patternFailures  = "failure pattern"
)

// PerformanceInsights is the reflection output, keyed by plan id for the
// insight store.
type PerformanceInsights struct {
	PlanID                    string   `json:"plan_id" yaml:"plan_id"`
	Strengths                 []string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Weaknesses                []string `json:"weaknesses,omitempty" yaml:"weaknesses,omitempty"`
	Recommendations           []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	OptimizationOpportunities []string `json:"optimization_opportunities,omitempty" yaml:"optimization_opportunities,omitempty"`
	ConfidenceScore           float64  `json:"confidence_score" yaml:"confidence_score"` // 0..1
}

// recommendationRules maps detected weaknesses and patterns to fixed
// recommendations.
var recommendationRules = map[string]string{
	"low success rate": "decompose failing tasks further and re-check their dependency edges",
	"low quality":      "tighten success criteria and add review checkpoints before critical tasks",
	patternSlowTasks:   "revisit duration estimates; recent runs exceeded the per-task baseline",
	patternFailures:    "add retry or alternative-approach fallbacks for the failing tasks",
}

// Reflector derives performance insights from execution results.
type Reflector struct{}

// NewReflector creates a new Reflector.
func NewReflector() *Reflector {
	return &Reflector{}
}

// Reflect analyzes a run summary: success rate drives strengths and
// weaknesses, quality drives optimization opportunities, and detected
// patterns feed the fixed recommendation table. The confidence score starts
// at 0.8, moves with the strength/weakness balance and drops when many
// patterns fire, clamped to [0.1, 1.0].
func (r *Reflector) Reflect(res execution.Results) PerformanceInsights {
	ins := PerformanceInsights{PlanID: res.PlanID}

	rate := successRate(res)
	if rate > strongSuccessRate {
		ins.Strengths = append(ins.Strengths, "high task success rate")
	}
	if rate < weakSuccessRate {
		ins.Weaknesses = append(ins.Weaknesses, "low success rate")
	}
	if res.QualityScore < lowQualityScore {
		ins.OptimizationOpportunities = append(ins.OptimizationOpportunities, "low quality")
	}

	patterns := detectPatterns(res)

	for _, w := range ins.Weaknesses {
		if rec, ok := recommendationRules[w]; ok {
			ins.Recommendations = append(ins.Recommendations, rec)
		}
	}
	for _, p := range patterns {
		if rec, ok := recommendationRules[p]; ok {
			ins.Recommendations = append(ins.Recommendations, rec)
		}
	}

	confidence := 0.8
	if len(ins.Strengths) > len(ins.Weaknesses) {
		confidence += 0.1
	} else {
		confidence -= 0.1
	}
	if len(patterns) > 2 {
		confidence -= 0.2
	}
	ins.ConfidenceScore = clamp(confidence, 0.1, 1.0)

	return ins
}

// successRate returns completed/(completed+failed), or 0 when the run
// produced no task outcomes at all.
func successRate(res execution.Results) float64 {
	total := len(res.CompletedTasks) + len(res.FailedTasks)
	if total == 0 {
		return 0
	}
	return float64(len(res.CompletedTasks)) / float64(total)
}

func detectPatterns(res execution.Results) []string {
	var patterns []string
	if res.TotalDuration > float64(len(res.CompletedTasks)*expectedMinutesPerTask) {
		patterns = append(patterns, patternSlowTasks)
	}
	if len(res.FailedTasks) > 0 {
		patterns = append(patterns, patternFailures)
	}
	return patterns
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
