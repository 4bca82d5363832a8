package features

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ErrNoColumns is returned when standardization is requested without a
// feature column list.
var ErrNoColumns = errors.New("no feature columns specified")

// ColumnStats holds the fitted parameters for one feature column.
type ColumnStats struct {
	Mean   float64
	StdDev float64
}

// Standardize rescales each requested column to zero mean and unit
// variance over the given rows. Row order is preserved; column order
// follows the columns argument.
//
// Population (not sample) standard deviation is used, for parity with
// the upstream scaler. A zero-variance column standardizes to all
// zeros instead of dividing by zero.
func Standardize(rows []Row, columns []string) ([][]float64, []ColumnStats, error) {
	if len(columns) == 0 {
		return nil, nil, ErrNoColumns
	}

	stats := make([]ColumnStats, len(columns))
	matrix := make([][]float64, len(rows))
	for i := range matrix {
		matrix[i] = make([]float64, len(columns))
	}

	if len(rows) == 0 {
		return matrix, stats, nil
	}

	col := make([]float64, len(rows))
	for j, name := range columns {
		for i, row := range rows {
			col[i] = row.Value(name)
		}

		mean, std := stat.PopMeanStdDev(col, nil)
		stats[j] = ColumnStats{Mean: mean, StdDev: std}

		if std == 0 {
			continue // column already zeroed
		}
		for i := range rows {
			matrix[i][j] = (col[i] - mean) / std
		}
	}

	return matrix, stats, nil
}
