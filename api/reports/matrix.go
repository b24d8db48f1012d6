package reports

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ComposeMatrix merges the matrix-level count and value pivots into the
// combined reporting artifact: count block then value block, columns labeled
// "PO No <bucket>" / "PO No Total" and "PO Value <bucket>" / "PO Value Total",
// bucket chronological order preserved inside each block. Both pivots must be
// aligned to the same bucket axis.
func ComposeMatrix(count, value Pivot, keyHeader string) *CombinedMatrix {
	columns := make([]MatrixColumn, 0, 2*(len(count.Buckets)+1))
	for _, label := range count.Buckets {
		columns = append(columns, MatrixColumn{Name: "PO No " + label, Kind: MeasureCount})
	}
	columns = append(columns, MatrixColumn{Name: "PO No Total", Kind: MeasureCount})
	for _, label := range value.Buckets {
		columns = append(columns, MatrixColumn{Name: "PO Value " + label, Kind: MeasureValue})
	}
	columns = append(columns, MatrixColumn{Name: "PO Value Total", Kind: MeasureValue})

	countRows := make(map[string]PivotRow, len(count.Rows))
	for _, row := range count.Rows {
		countRows[row.Key] = row
	}
	valueRows := make(map[string]PivotRow, len(value.Rows))
	for _, row := range value.Rows {
		valueRows[row.Key] = row
	}

	keySet := make(map[string]struct{}, len(countRows))
	keys := make([]string, 0, len(countRows))
	for k := range countRows {
		keySet[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range valueRows {
		if _, ok := keySet[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	rows := make([]MatrixRow, 0, len(keys))
	for _, k := range keys {
		cells := make([]decimal.Decimal, 0, len(columns))
		cells = appendBlock(cells, countRows[k], len(count.Buckets))
		cells = appendBlock(cells, valueRows[k], len(value.Buckets))
		rows = append(rows, MatrixRow{Key: k, Cells: cells})
	}

	return &CombinedMatrix{KeyHeader: keyHeader, Columns: columns, Rows: rows}
}

// appendBlock writes one measure block: bucket cells then the Total. A key
// absent from the pivot contributes zeros.
func appendBlock(cells []decimal.Decimal, row PivotRow, width int) []decimal.Decimal {
	if row.Cells == nil {
		for i := 0; i < width; i++ {
			cells = append(cells, decimal.Zero)
		}
		return append(cells, decimal.Zero)
	}
	cells = append(cells, row.Cells...)
	return append(cells, row.Total)
}
