package reports

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseValue reads a PO value cell, tolerating thousand separators and
// currency prefixes. Unreadable cells contribute zero rather than dropping the
// row; only the date column decides row survival.
func parseValue(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "Rs")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// bindRecords turns a normalized table into typed records. Rows whose date
// fails to parse are dropped individually; the sub-category value (first
// header containing "SUB", when present) is copied onto each record.
func bindRecords(t Table) []Record {
	outletIdx := t.ColumnIndex(ColOutlet)
	groupIdx := t.ColumnIndex(ColOutletGroup)
	poIdx := t.ColumnIndex(ColPONumber)
	dateIdx := t.ColumnIndex(ColPODate)
	valueIdx := t.ColumnIndex(ColPOValue)

	subIdx := -1
	if h := subCategoryHeader(t); h != "" {
		subIdx = t.ColumnIndex(h)
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		date, ok := ParsePODate(row[dateIdx])
		if !ok {
			continue
		}
		rec := Record{
			Outlet:      strings.TrimSpace(row[outletIdx]),
			OutletGroup: row[groupIdx],
			PONumber:    strings.TrimSpace(row[poIdx]),
			POValue:     parseValue(row[valueIdx]),
			PODate:      date,
			Bucket:      BucketOf(date),
		}
		if subIdx >= 0 {
			rec.SubCategory = strings.TrimSpace(row[subIdx])
		}
		records = append(records, rec)
	}
	return records
}

// selectLabels resolves the effective bucket selection: nil or empty means
// everything; otherwise the intersection with the sheet's axis, in axis order.
// Labels the sheet never produced are ignored.
func selectLabels(axis []string, selected []string) []string {
	if len(selected) == 0 {
		return append([]string(nil), axis...)
	}
	want := make(map[string]struct{}, len(selected))
	for _, l := range selected {
		want[l] = struct{}{}
	}
	out := make([]string, 0, len(axis))
	for _, l := range axis {
		if _, ok := want[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// ProcessSheet runs the full pipeline for one raw sheet under a bucket label
// selection and returns an explicit outcome. A failure here is contained to
// this sheet; sibling sheets in the same upload are unaffected.
func ProcessSheet(raw RawSheet, selected []string) (result SheetResult) {
	result = SheetResult{Sheet: raw.Name}
	defer func() {
		if r := recover(); r != nil {
			result = SheetResult{
				Sheet:   raw.Name,
				Status:  StatusFailed,
				Message: fmt.Sprintf("unexpected failure: %v", r),
			}
		}
	}()

	table := NormalizeSheet(raw)
	if !table.HasColumns(requiredColumns...) {
		result.Status = StatusSkipped
		result.Message = "required PO columns missing, not a PO sheet"
		return result
	}

	records := bindRecords(table)
	if len(records) == 0 {
		result.Status = StatusEmpty
		result.Message = "no rows with parseable PO dates"
		return result
	}

	axis := BucketLabels(DistinctBuckets(records))
	result.Buckets = axis
	sel := selectLabels(axis, selected)
	result.Selected = sel

	if !anySelected(records, sel) {
		result.Status = StatusEmpty
		result.Message = "no data for selected months"
		return result
	}

	valuePivot := PivotRecords(records, sel, MeasureValue, groupByOutlet)
	countPivot := PivotRecords(records, sel, MeasureCount, groupByOutlet)

	keyFn := singleGroup
	keyHeader := subCategoryHeader(table)
	if keyHeader != "" {
		keyFn = groupBySubCategory
	}
	matrixCount := PivotRecords(records, sel, MeasureCount, keyFn)
	matrixValue := PivotRecords(records, sel, MeasureValue, keyFn)

	result.ValueChart = BuildBarChart(valuePivot, "PO Value", "Value (₹)", raw.Name)
	result.CountChart = BuildBarChart(countPivot, "PO Count", "Number of POs", raw.Name)
	result.Matrix = ComposeMatrix(matrixCount, matrixValue, keyHeader)
	result.Status = StatusProcessed
	return result
}

func anySelected(records []Record, sel []string) bool {
	want := make(map[string]struct{}, len(sel))
	for _, l := range sel {
		want[l] = struct{}{}
	}
	for _, r := range records {
		if _, ok := want[r.Bucket.Label()]; ok {
			return true
		}
	}
	return false
}

// ProcessSheets runs every sheet independently; one bad sheet never aborts its
// siblings.
func ProcessSheets(sheets []RawSheet, selected []string) []SheetResult {
	results := make([]SheetResult, 0, len(sheets))
	for _, sh := range sheets {
		results = append(results, ProcessSheet(sh, selected))
	}
	return results
}
