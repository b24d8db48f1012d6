package reports

import (
	"bytes"
	"fmt"
	"strings"

	"CPCPerform/fonts"

	"github.com/signintech/gopdf"
)

const reportFontName = "report"

// A4 in points, fixed page geometry.
const (
	pageWidth    = 595.0
	pageHeight   = 842.0
	marginLeft   = 40.0
	marginTop    = 40.0
	marginBottom = 42.0
	usableWidth  = pageWidth - 2*marginLeft
	lineHeight   = 16.0
	chartHeight  = 170.0
)

// glyphReplacements degrades characters the document encoding cannot carry.
// Export must always succeed; glyphs degrade, they never fail the export.
var glyphReplacements = map[rune]string{
	'–': "-",  // en dash
	'—': "-",  // em dash
	'₹': "Rs", // rupee sign
	'‘': "'",
	'’': "'",
	'“': `"`,
	'”': `"`,
	' ': " ",
}

// sanitizeText substitutes known problem glyphs and strips anything else
// outside latin-1.
func sanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := glyphReplacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r < 0x100 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// docBuilder wraps one in-flight document. A fresh one is constructed per
// export request and returned as a value; nothing is shared across requests
// or sheets.
type docBuilder struct {
	pdf *gopdf.GoPdf
	y   float64
}

// BuildReportDocument serializes the given sheet results into a single
// paginated PDF: per renderable sheet a title block, both chart panels and the
// combined matrix table. Skipped sheets are absent; empty and failed sheets
// contribute their title block and message so the document reflects the whole
// upload.
func BuildReportDocument(results []SheetResult, title, fontPath string) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	// A deployment can override the document font; when the path does not
	// resolve the bundled face takes over so export still succeeds.
	if err := pdf.AddTTFFont(reportFontName, fontPath); err != nil {
		if err := pdf.AddTTFFontData(reportFontName, fonts.DejaVuSans); err != nil {
			return nil, fmt.Errorf("load report font: %w", err)
		}
	}

	b := &docBuilder{pdf: pdf}
	rendered := false
	for _, res := range results {
		if res.Status == StatusSkipped {
			continue
		}
		b.newPage()
		rendered = true
		b.titleBlock(title, res)
		if res.Status != StatusProcessed {
			b.text(sanitizeText(res.Message), 10)
			continue
		}
		b.chartPanel(res.ValueChart, MeasureValue)
		b.chartPanel(res.CountChart, MeasureCount)
		b.matrixTable(res.Matrix)
	}
	if !rendered {
		b.newPage()
		b.text("No PO sheets found in this upload.", 10)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *docBuilder) newPage() {
	b.pdf.AddPage()
	b.y = marginTop
}

// ensureSpace breaks to a new page when the next block would overflow.
func (b *docBuilder) ensureSpace(h float64) {
	if b.y+h > pageHeight-marginBottom {
		b.newPage()
	}
}

func (b *docBuilder) setFont(size float64) {
	b.pdf.SetFont(reportFontName, "", size)
}

func (b *docBuilder) text(s string, size float64) {
	b.ensureSpace(lineHeight)
	b.setFont(size)
	b.pdf.SetTextColor(45, 52, 54)
	b.pdf.SetX(marginLeft)
	b.pdf.SetY(b.y)
	b.pdf.Cell(nil, s)
	b.y += lineHeight
}

func (b *docBuilder) titleBlock(title string, res SheetResult) {
	b.pdf.SetFillColor(63, 81, 115)
	b.pdf.RectFromUpperLeftWithStyle(0, 0, pageWidth, 64, "F")
	b.pdf.SetTextColor(255, 255, 255)
	b.setFont(15)
	b.pdf.SetX(marginLeft)
	b.pdf.SetY(20)
	b.pdf.Cell(nil, sanitizeText(fmt.Sprintf("%s - %s", title, res.Sheet)))
	b.setFont(9)
	b.pdf.SetX(marginLeft)
	b.pdf.SetY(42)
	b.pdf.Cell(nil, sanitizeText("Months: "+strings.Join(res.Selected, ", ")))
	b.y = 64 + lineHeight
}

// chartPanel draws a grouped bar chart natively: one bar cluster per outlet
// group, one colored series per bucket, legend on top. The in-document
// equivalent of an embedded chart image.
func (b *docBuilder) chartPanel(cfg *ChartConfig, kind MeasureKind) {
	if cfg == nil || len(cfg.Series) == 0 || len(cfg.Series[0].Points) == 0 {
		return
	}
	b.ensureSpace(chartHeight + 3*lineHeight)

	b.text(sanitizeText(cfg.Title), 11)
	b.legend(cfg)

	plotTop := b.y
	plotHeight := chartHeight - 2*lineHeight
	plotBottom := plotTop + plotHeight

	span := cfg.YMax - cfg.YMin
	if span <= 0 {
		span = 1
	}

	groups := len(cfg.Series[0].Points)
	groupWidth := usableWidth / float64(groups)
	barWidth := groupWidth * 0.8 / float64(len(cfg.Series))

	for si, series := range cfg.Series {
		r, g, bl := hexToRGB(series.Color)
		b.pdf.SetFillColor(r, g, bl)
		for pi, point := range series.Points {
			h := (point.Value - cfg.YMin) / span * plotHeight
			if h < 0 {
				h = 0
			}
			x := marginLeft + float64(pi)*groupWidth + groupWidth*0.1 + float64(si)*barWidth
			b.pdf.RectFromUpperLeftWithStyle(x, plotBottom-h, barWidth, h, "F")
		}
	}

	// axis
	b.pdf.SetLineWidth(0.5)
	b.pdf.SetStrokeColor(99, 110, 114)
	b.pdf.Line(marginLeft, plotBottom, marginLeft+usableWidth, plotBottom)

	// category labels
	b.setFont(8)
	b.pdf.SetTextColor(45, 52, 54)
	for pi, point := range cfg.Series[0].Points {
		b.pdf.SetX(marginLeft + float64(pi)*groupWidth + groupWidth*0.1)
		b.pdf.SetY(plotBottom + 4)
		b.pdf.Cell(nil, sanitizeText(truncate(point.Label, 14)))
	}

	b.y = plotBottom + 2*lineHeight
}

func (b *docBuilder) legend(cfg *ChartConfig) {
	b.ensureSpace(lineHeight)
	b.setFont(8)
	x := marginLeft
	for _, series := range cfg.Series {
		r, g, bl := hexToRGB(series.Color)
		b.pdf.SetFillColor(r, g, bl)
		b.pdf.RectFromUpperLeftWithStyle(x, b.y+3, 8, 8, "F")
		b.pdf.SetTextColor(45, 52, 54)
		b.pdf.SetX(x + 11)
		b.pdf.SetY(b.y)
		b.pdf.Cell(nil, sanitizeText(series.Name))
		x += 11 + float64(len(series.Name))*5 + 14
	}
	b.y += lineHeight
}

// matrixTable reproduces the combined matrix row by row in fixed-width
// columns, row key first. Value cells carry two decimals, count cells whole
// numbers; the measure kind comes from the column tag.
func (b *docBuilder) matrixTable(m *CombinedMatrix) {
	if m == nil {
		return
	}
	cols := len(m.Columns) + 1
	colWidth := usableWidth / float64(cols)

	keyHeader := m.KeyHeader
	if keyHeader == "" {
		keyHeader = "Group"
	}

	b.ensureSpace(2 * lineHeight)
	b.text("Matrix Report", 11)

	headerCells := make([]string, 0, cols)
	headerCells = append(headerCells, keyHeader)
	for _, c := range m.Columns {
		headerCells = append(headerCells, c.Name)
	}
	b.tableRow(headerCells, colWidth, true)

	for _, row := range m.Rows {
		cells := make([]string, 0, cols)
		cells = append(cells, row.Key)
		for i, v := range row.Cells {
			if m.Columns[i].Kind == MeasureValue {
				cells = append(cells, FormatAmount(v))
			} else {
				cells = append(cells, v.StringFixed(0))
			}
		}
		b.tableRow(cells, colWidth, false)
	}
}

func (b *docBuilder) tableRow(cells []string, colWidth float64, header bool) {
	b.ensureSpace(lineHeight)
	if header {
		b.pdf.SetFillColor(223, 230, 233)
		b.pdf.RectFromUpperLeftWithStyle(marginLeft, b.y-2, usableWidth, lineHeight, "F")
	}
	b.setFont(7)
	b.pdf.SetTextColor(45, 52, 54)
	maxChars := int(colWidth / 4)
	for i, cell := range cells {
		b.pdf.SetX(marginLeft + float64(i)*colWidth)
		b.pdf.SetY(b.y)
		b.pdf.Cell(nil, sanitizeText(truncate(cell, maxChars)))
	}
	b.y += lineHeight
}

func truncate(s string, n int) string {
	if n < 1 || len(s) <= n {
		return s
	}
	return s[:n]
}

func hexToRGB(hex string) (uint8, uint8, uint8) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	var r, g, b uint8
	fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

// ExportFilename names the downloadable document from the sheet identifier and
// the selected bucket labels, e.g. CPC_Report_Sheet1_Jan24_Feb24.pdf.
func ExportFilename(sheet string, selected []string) string {
	parts := []string{"CPC_Report"}
	if sheet != "" {
		parts = append(parts, safeToken(sheet))
	}
	for _, l := range selected {
		parts = append(parts, safeToken(l))
	}
	return strings.Join(parts, "_") + ".pdf"
}

func safeToken(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}
