package telemetry

import (
	"math"
	"testing"
)

func TestComputeLifetimeStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, std, p10, p50, p90 := ComputeLifetimeStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p10 != 1 || p50 != 5 || p90 != 9 {
		t.Errorf("percentiles = %v/%v/%v, want 1/5/9", p10, p50, p90)
	}

	// Input order is preserved
	if values[0] != 10 {
		t.Error("ComputeLifetimeStats sorted its input in place")
	}
}

func TestComputeLifetimeStatsSmall(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantP50  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{2.5}, 2.5, 2.5},
		{"pair", []float64{1, 3}, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, _, p50, _ := ComputeLifetimeStats(tt.values)
			if mean != tt.wantMean || p50 != tt.wantP50 {
				t.Errorf("mean, p50 = %v, %v, want %v, %v", mean, p50, tt.wantMean, tt.wantP50)
			}
			if math.IsNaN(std) {
				t.Error("std is NaN")
			}
		})
	}
}
