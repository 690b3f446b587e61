package stats

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5.0}, 5.0},
		{"multiple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"all_same", []float64{7, 7, 7}, 7.0},
		{"ratings", []float64{4.5, 3.0}, 3.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.input)
			if !approxEqual(got, tt.expect) {
				t.Errorf("Mean(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"empty", nil, 0},
		{"single", []float64{2.5}, 2.5},
		{"multiple", []float64{1, 2, 3}, 6},
		{"negative", []float64{-2, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sum(tt.input)
			if !approxEqual(got, tt.expect) {
				t.Errorf("Sum(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		name    string
		input   []float64
		wantMin float64
		wantMax float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4.2}, 4.2, 4.2},
		{"mixed", []float64{3.0, 4.5, 0.5, 2.0}, 0.5, 4.5},
		{"descending", []float64{5, 4, 3}, 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Min(tt.input); !approxEqual(got, tt.wantMin) {
				t.Errorf("Min(%v) = %f, want %f", tt.input, got, tt.wantMin)
			}
			if got := Max(tt.input); !approxEqual(got, tt.wantMax) {
				t.Errorf("Max(%v) = %f, want %f", tt.input, got, tt.wantMax)
			}
		})
	}
}
