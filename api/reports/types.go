package reports

import (
	"time"

	"CPCPerform/api/constants"

	"github.com/shopspring/decimal"
)

// Canonical column names produced by the schema normalizer. The aggregation
// pipeline only ever sees these, never the raw upload headers.
const (
	ColOutlet      = "Outlet"
	ColOutletGroup = "Outlet Group"
	ColPONumber    = "PO Number"
	ColPODate      = "PO Date"
	ColPOValue     = "PO Value"
)

// requiredColumns is the canonical set a sheet must carry to count as a PO sheet.
var requiredColumns = []string{ColPONumber, ColPOValue, ColPODate, ColOutlet, ColOutletGroup}

// MeasureKind tags every pivot and matrix column with the measure it carries.
// Formatting decisions read this tag, never the column name.
type MeasureKind string

const (
	MeasureCount MeasureKind = "count"
	MeasureValue MeasureKind = "value"
)

// RawSheet is one sheet of the upload (or the whole delimited file) exactly as
// parsed: header row first, no interpretation applied yet.
type RawSheet struct {
	Name  string     `json:"name"`
	Cells [][]string `json:"-"`
}

// Table is a normalized sheet: canonical headers plus string rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of a header, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumns reports whether every named header is present.
func (t Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if t.ColumnIndex(n) < 0 {
			return false
		}
	}
	return true
}

// MonthBucket is a calendar year-month. Ordering always uses Year/Month; the
// label is display-only and not sort-safe across years.
type MonthBucket struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func BucketOf(t time.Time) MonthBucket {
	return MonthBucket{Year: t.Year(), Month: t.Month()}
}

// Label renders the bucket in Jan'06 form.
func (b MonthBucket) Label() string {
	return time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).Format(constants.MonthLabel)
}

func (b MonthBucket) Before(o MonthBucket) bool {
	if b.Year != o.Year {
		return b.Year < o.Year
	}
	return b.Month < o.Month
}

// Record is one normalized PO row that survived date parsing.
type Record struct {
	Outlet      string
	OutletGroup string
	PONumber    string
	SubCategory string
	POValue     decimal.Decimal
	PODate      time.Time
	Bucket      MonthBucket
}

// PivotRow is one grouping key with its cells aligned to the pivot's bucket
// labels, plus the trailing Total (row-wise sum of the bucket cells only).
type PivotRow struct {
	Key   string            `json:"key"`
	Cells []decimal.Decimal `json:"cells"`
	Total decimal.Decimal   `json:"total"`
}

// Pivot is a measure-tagged grouped aggregate, pivoted so buckets become
// columns in chronological order, missing combinations zero-filled.
type Pivot struct {
	Measure MeasureKind `json:"measure"`
	Buckets []string    `json:"buckets"`
	Rows    []PivotRow  `json:"rows"`
}

// MatrixColumn carries the disambiguated column name and its measure kind.
type MatrixColumn struct {
	Name string      `json:"name"`
	Kind MeasureKind `json:"kind"`
}

type MatrixRow struct {
	Key   string            `json:"key"`
	Cells []decimal.Decimal `json:"cells"`
}

// CombinedMatrix is the count and value pivots merged side by side: count block
// first, bucket chronological order inside each block. It is the canonical
// reporting artifact handed to both the JSON consumer and the PDF exporter.
type CombinedMatrix struct {
	KeyHeader string         `json:"key_header"`
	Columns   []MatrixColumn `json:"columns"`
	Rows      []MatrixRow    `json:"rows"`
}

// ChartPoint is one bar: category label, raw value and preformatted label text.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// ChartSeries is one bucket's bars across all outlet groups.
type ChartSeries struct {
	Name   string       `json:"name"`
	Color  string       `json:"color"`
	Points []ChartPoint `json:"points"`
}

// ChartConfig describes a grouped bar chart for any renderer.
type ChartConfig struct {
	Title  string        `json:"title"`
	XAxis  string        `json:"x_axis"`
	YAxis  string        `json:"y_axis"`
	YMin   float64       `json:"y_min"`
	YMax   float64       `json:"y_max"`
	Series []ChartSeries `json:"series"`
}

// SheetStatus is the explicit per-sheet outcome; nothing in the pipeline is
// reported through exceptions or panics.
type SheetStatus string

const (
	StatusProcessed SheetStatus = "processed"
	StatusSkipped   SheetStatus = "skipped"
	StatusEmpty     SheetStatus = "empty"
	StatusFailed    SheetStatus = "failed"
)

// SheetResult is everything a consumer needs to render one sheet: the bucket
// axis, the effective selection, both charts and the combined matrix. Failed,
// skipped or empty sheets carry a message instead.
type SheetResult struct {
	Sheet      string          `json:"sheet"`
	Status     SheetStatus     `json:"status"`
	Message    string          `json:"message,omitempty"`
	Buckets    []string        `json:"buckets,omitempty"`
	Selected   []string        `json:"selected,omitempty"`
	ValueChart *ChartConfig    `json:"value_chart,omitempty"`
	CountChart *ChartConfig    `json:"count_chart,omitempty"`
	Matrix     *CombinedMatrix `json:"matrix,omitempty"`
}
