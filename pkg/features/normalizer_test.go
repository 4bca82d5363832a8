package features

import (
	"errors"
	"math"
	"testing"
)

func TestStandardizeBasic(t *testing.T) {
	rows := []Row{
		{Group: "a", Values: map[string]float64{"x": 1, "y": 10}},
		{Group: "b", Values: map[string]float64{"x": 2, "y": 20}},
		{Group: "c", Values: map[string]float64{"x": 3, "y": 30}},
	}

	matrix, stats, err := Standardize(rows, []string{"x", "y"})
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}

	if len(matrix) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(matrix))
	}
	if stats[0].Mean != 2 {
		t.Errorf("Mean of x = %f, want 2", stats[0].Mean)
	}

	// Each standardized column must have zero mean and unit variance
	for j := 0; j < 2; j++ {
		var sum, sumSq float64
		for i := range matrix {
			sum += matrix[i][j]
			sumSq += matrix[i][j] * matrix[i][j]
		}
		mean := sum / 3
		variance := sumSq / 3
		if math.Abs(mean) > 1e-9 {
			t.Errorf("Column %d mean = %f, want 0", j, mean)
		}
		if math.Abs(variance-1) > 1e-9 {
			t.Errorf("Column %d variance = %f, want 1", j, variance)
		}
	}

	// Row order preserved: smallest x stays in row 0
	if matrix[0][0] >= matrix[1][0] || matrix[1][0] >= matrix[2][0] {
		t.Errorf("Row order not preserved: %v %v %v", matrix[0][0], matrix[1][0], matrix[2][0])
	}
}

// TestStandardizeZeroVariance verifies the divide-by-zero guard: a
// constant column standardizes to all zeros.
func TestStandardizeZeroVariance(t *testing.T) {
	rows := []Row{
		{Group: "a", Values: map[string]float64{"x": 7, "y": 1}},
		{Group: "b", Values: map[string]float64{"x": 7, "y": 2}},
	}

	matrix, stats, err := Standardize(rows, []string{"x", "y"})
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}

	for i := range matrix {
		if matrix[i][0] != 0 {
			t.Errorf("Row %d constant column = %f, want 0", i, matrix[i][0])
		}
	}
	if stats[0].StdDev != 0 || stats[0].Mean != 7 {
		t.Errorf("Constant column stats = %+v, want mean 7, std 0", stats[0])
	}
}

// TestStandardizeMissingValues verifies that absent features become 0
// before standardization, not excluded rows.
func TestStandardizeMissingValues(t *testing.T) {
	rows := []Row{
		{Group: "a", Values: map[string]float64{"x": 4}},
		{Group: "b", Values: map[string]float64{}}, // x missing -> 0
	}

	matrix, stats, err := Standardize(rows, []string{"x"})
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}

	if len(matrix) != 2 {
		t.Fatalf("Partial rows must still participate, got %d rows", len(matrix))
	}
	if stats[0].Mean != 2 {
		t.Errorf("Mean with missing-as-zero = %f, want 2", stats[0].Mean)
	}
	// (0-2)/2 = -1, (4-2)/2 = 1
	if matrix[0][0] != 1 || matrix[1][0] != -1 {
		t.Errorf("Standardized values = %v, want [1 -1]", []float64{matrix[0][0], matrix[1][0]})
	}
}

func TestStandardizeNonFiniteValues(t *testing.T) {
	rows := []Row{
		{Group: "a", Values: map[string]float64{"x": math.NaN()}},
		{Group: "b", Values: map[string]float64{"x": math.Inf(1)}},
		{Group: "c", Values: map[string]float64{"x": 2}},
	}

	matrix, _, err := Standardize(rows, []string{"x"})
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}
	for i := range matrix {
		if math.IsNaN(matrix[i][0]) || math.IsInf(matrix[i][0], 0) {
			t.Errorf("Row %d produced non-finite output %f", i, matrix[i][0])
		}
	}
}

func TestStandardizeEmptyRows(t *testing.T) {
	matrix, stats, err := Standardize(nil, DefaultColumns)
	if err != nil {
		t.Fatalf("Empty rows should not error: %v", err)
	}
	if len(matrix) != 0 {
		t.Errorf("Expected empty matrix, got %d rows", len(matrix))
	}
	if len(stats) != len(DefaultColumns) {
		t.Errorf("Expected %d column stats, got %d", len(DefaultColumns), len(stats))
	}
}

func TestStandardizeNoColumns(t *testing.T) {
	_, _, err := Standardize([]Row{{Group: "a"}}, nil)
	if !errors.Is(err, ErrNoColumns) {
		t.Errorf("Expected ErrNoColumns, got %v", err)
	}
}

func TestDefaultColumnsFixedOrder(t *testing.T) {
	if len(DefaultColumns) != 9 {
		t.Fatalf("Expected 9 feature columns, got %d", len(DefaultColumns))
	}
	if DefaultColumns[0] != "normalized_attack_volume" ||
		DefaultColumns[8] != "civilian_target_pct" {
		t.Error("Feature column order changed; clustering output depends on it")
	}
}
