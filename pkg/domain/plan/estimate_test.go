package plan_test

import (
	"testing"

	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
)

func TestParseEstimate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{input: "30m", want: 30},
		{input: "4h", want: 240},
		{input: "1.5h", want: 90},
		{input: "2d", want: 960},
		{input: "1w", want: 2400},
		{input: " 45M ", want: 45},
		{input: "45", want: 45},
		{input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := plan.ParseEstimate(tt.input)
			if err != nil {
				t.Fatalf("ParseEstimate(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseEstimate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEstimate_Invalid(t *testing.T) {
	for _, input := range []string{"abc", "4x", "h4", "-2h", "4 hours"} {
		if _, err := plan.ParseEstimate(input); err == nil {
			t.Errorf("ParseEstimate(%q) accepted, want error", input)
		}
	}
}
