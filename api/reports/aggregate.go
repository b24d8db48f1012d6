package reports

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GroupKeyFunc picks the grouping key for a pivot row.
type GroupKeyFunc func(Record) string

func groupByOutlet(r Record) string { return r.OutletGroup }

func groupBySubCategory(r Record) string { return r.SubCategory }

// singleGroup collapses every record into one row when a sheet has no
// sub-category column.
func singleGroup(Record) string { return "All" }

// PivotRecords computes one measure-tagged pivot. Row keys come from every
// record (so a group filtered down to nothing still shows an all-zero row);
// cells only accumulate records whose bucket label is in the selected axis.
// Rows are sorted by key, cells follow the label order, and Total is the
// row-wise sum of the bucket cells only.
func PivotRecords(records []Record, labels []string, measure MeasureKind, key GroupKeyFunc) Pivot {
	colIndex := make(map[string]int, len(labels))
	for i, l := range labels {
		colIndex[l] = i
	}

	sums := make(map[string][]decimal.Decimal)
	distinct := make(map[string][]map[string]struct{})
	ensure := func(k string) {
		if _, ok := sums[k]; ok {
			return
		}
		cells := make([]decimal.Decimal, len(labels))
		for i := range cells {
			cells[i] = decimal.Zero
		}
		sums[k] = cells
		sets := make([]map[string]struct{}, len(labels))
		for i := range sets {
			sets[i] = make(map[string]struct{})
		}
		distinct[k] = sets
	}

	for _, r := range records {
		k := key(r)
		ensure(k)
		col, selected := colIndex[r.Bucket.Label()]
		if !selected {
			continue
		}
		switch measure {
		case MeasureValue:
			sums[k][col] = sums[k][col].Add(r.POValue)
		case MeasureCount:
			distinct[k][col][r.PONumber] = struct{}{}
		}
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]PivotRow, 0, len(keys))
	for _, k := range keys {
		cells := make([]decimal.Decimal, len(labels))
		total := decimal.Zero
		for i := range labels {
			switch measure {
			case MeasureValue:
				cells[i] = sums[k][i]
			case MeasureCount:
				cells[i] = decimal.NewFromInt(int64(len(distinct[k][i])))
			}
			total = total.Add(cells[i])
		}
		rows = append(rows, PivotRow{Key: k, Cells: cells, Total: total})
	}

	return Pivot{Measure: measure, Buckets: append([]string(nil), labels...), Rows: rows}
}
