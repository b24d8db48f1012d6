package reports

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// chartPalette is the fixed qualitative palette; series colors cycle through it
// by bucket position.
var chartPalette = []string{
	"#7F3C8D", "#11A579", "#3969AC", "#F2B701", "#E73F74", "#80BA5A",
	"#E68310", "#008695", "#CF1C90", "#F97B72", "#4B4B8F", "#A5AA99",
}

// BuildBarChart turns an outlet-group pivot into a grouped bar chart config:
// one series per bucket column, outlet groups on the category axis. The y-range
// is padded by 5% of the observed max on both ends (floored at zero) and is
// recomputed per chart.
func BuildBarChart(p Pivot, title, yAxis, sheetName string) *ChartConfig {
	cfg := &ChartConfig{
		Title: title + " - " + sheetName,
		XAxis: "Outlet Group",
		YAxis: yAxis,
	}

	var minY, maxY float64
	first := true
	for i, label := range p.Buckets {
		series := ChartSeries{
			Name:  label,
			Color: chartPalette[i%len(chartPalette)],
		}
		for _, row := range p.Rows {
			v, _ := row.Cells[i].Float64()
			if first || v < minY {
				minY = v
			}
			if first || v > maxY {
				maxY = v
			}
			first = false
			series.Points = append(series.Points, ChartPoint{
				Label: row.Key,
				Value: v,
				Text:  FormatMeasure(row.Cells[i], p.Measure),
			})
		}
		cfg.Series = append(cfg.Series, series)
	}

	pad := maxY * 0.05
	cfg.YMin = math.Max(0, minY-pad)
	cfg.YMax = maxY + pad
	return cfg
}

// FormatMeasure renders a cell by its measure kind: currency glyph with two
// decimals and thousands separators for values, plain integers for counts.
func FormatMeasure(v decimal.Decimal, kind MeasureKind) string {
	if kind == MeasureValue {
		return "₹ " + FormatAmount(v)
	}
	return v.StringFixed(0)
}

// FormatAmount renders a decimal with two decimal places and thousands
// separators, e.g. 1234567.5 -> "1,234,567.50".
func FormatAmount(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
