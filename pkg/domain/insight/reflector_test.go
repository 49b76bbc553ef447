package insight_test

import (
	"testing"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/insight"
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestReflect_CleanRun(t *testing.T) {
	res := execution.Results{
		PlanID:         "plan-1",
		OverallStatus:  execution.RunCompleted,
		CompletedTasks: []string{"t1", "t2", "t3"},
		TotalDuration:  90,
		QualityScore:   0.9,
	}

	ins := insight.NewReflector().Reflect(res)

	if ins.PlanID != "plan-1" {
		t.Errorf("PlanID = %q, want plan-1", ins.PlanID)
	}
	if !contains(ins.Strengths, "high task success rate") {
		t.Errorf("Strengths = %v, want high success rate noted", ins.Strengths)
	}
	if len(ins.Weaknesses) != 0 {
		t.Errorf("Weaknesses = %v, want none", ins.Weaknesses)
	}
	if len(ins.OptimizationOpportunities) != 0 {
		t.Errorf("OptimizationOpportunities = %v, want none", ins.OptimizationOpportunities)
	}
	if ins.ConfidenceScore < 0.8 {
		t.Errorf("ConfidenceScore = %v, want at least 0.8", ins.ConfidenceScore)
	}
}

func TestReflect_PoorRun(t *testing.T) {
	res := execution.Results{
		PlanID:         "plan-2",
		OverallStatus:  execution.RunFailed,
		CompletedTasks: []string{"t1"},
		FailedTasks:    []string{"t2", "t3"},
		TotalDuration:  240, // far over the per-task baseline for one completion
		QualityScore:   0.4,
	}

	ins := insight.NewReflector().Reflect(res)

	if !contains(ins.Weaknesses, "low success rate") {
		t.Errorf("Weaknesses = %v, want low success rate noted", ins.Weaknesses)
	}
	if !contains(ins.OptimizationOpportunities, "low quality") {
		t.Errorf("OptimizationOpportunities = %v, want low quality noted", ins.OptimizationOpportunities)
	}
	if len(ins.Recommendations) == 0 {
		t.Error("Recommendations is empty for a poor run")
	}
	if ins.ConfidenceScore >= 0.8 {
		t.Errorf("ConfidenceScore = %v, want below 0.8", ins.ConfidenceScore)
	}
	if ins.ConfidenceScore < 0.1 || ins.ConfidenceScore > 1.0 {
		t.Errorf("ConfidenceScore = %v, out of range", ins.ConfidenceScore)
	}
}

func TestReflect_FailurePatternRecommendation(t *testing.T) {
	res := execution.Results{
		PlanID:         "plan-3",
		CompletedTasks: []string{"t1", "t2", "t3", "t4"},
		FailedTasks:    []string{"t5"},
		TotalDuration:  60,
		QualityScore:   0.85,
	}

	ins := insight.NewReflector().Reflect(res)

	want := "add retry or alternative-approach fallbacks for the failing tasks"
	if !contains(ins.Recommendations, want) {
		t.Errorf("Recommendations = %v, want fallback advice for failures", ins.Recommendations)
	}
}

func TestReflect_SlowRunRecommendation(t *testing.T) {
	res := execution.Results{
		PlanID:         "plan-4",
		CompletedTasks: []string{"t1", "t2"},
		TotalDuration:  500, // over 2 * 60 baseline
		QualityScore:   0.9,
	}

	ins := insight.NewReflector().Reflect(res)

	want := "revisit duration estimates; recent runs exceeded the per-task baseline"
	if !contains(ins.Recommendations, want) {
		t.Errorf("Recommendations = %v, want estimate advice for slow runs", ins.Recommendations)
	}
}

func TestReflect_EmptyRun(t *testing.T) {
	ins := insight.NewReflector().Reflect(execution.Results{PlanID: "plan-5", QualityScore: 0.9})

	if len(ins.Strengths) != 0 {
		t.Errorf("Strengths = %v, want none with no outcomes", ins.Strengths)
	}
	// Zero outcomes read as a zero success rate, which is a weakness.
	if !contains(ins.Weaknesses, "low success rate") {
		t.Errorf("Weaknesses = %v, want low success rate for an empty run", ins.Weaknesses)
	}
	if ins.ConfidenceScore < 0.1 || ins.ConfidenceScore > 1.0 {
		t.Errorf("ConfidenceScore = %v, out of range", ins.ConfidenceScore)
	}
}
