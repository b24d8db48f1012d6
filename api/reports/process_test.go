package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioSheet() RawSheet {
	return RawSheet{Name: "Sheet1", Cells: [][]string{
		{"OUTLET", "PO REF NO", "PO DATE", "PO VALUE"},
		{"ABC-12", "P1", "01-01-2024", "100"},
		{"ABC-45", "P2", "15-01-2024", "200"},
		{"XYZ-9", "P3", "02-02-2024", "50"},
	}}
}

func TestProcessSheet(t *testing.T) {
	t.Run("full pipeline on the scenario sheet", func(t *testing.T) {
		res := ProcessSheet(scenarioSheet(), nil)

		require.Equal(t, StatusProcessed, res.Status)
		assert.Equal(t, []string{"Jan'24", "Feb'24"}, res.Buckets)
		assert.Equal(t, []string{"Jan'24", "Feb'24"}, res.Selected)

		require.NotNil(t, res.Matrix)
		assert.Len(t, res.Matrix.Columns, 6)
		// no sub-category column: single "All" row
		require.Len(t, res.Matrix.Rows, 1)
		assert.Equal(t, "All", res.Matrix.Rows[0].Key)
		assert.True(t, res.Matrix.Rows[0].Cells[5].Equal(decimal.NewFromInt(350)))

		require.NotNil(t, res.ValueChart)
		require.NotNil(t, res.CountChart)
	})

	t.Run("sheet missing PO Value is skipped entirely", func(t *testing.T) {
		sheet := RawSheet{Name: "NotPO", Cells: [][]string{
			{"OUTLET", "PO REF NO", "PO DATE"},
			{"ABC-12", "P1", "01-01-2024"},
		}}
		res := ProcessSheet(sheet, nil)

		assert.Equal(t, StatusSkipped, res.Status)
		assert.Nil(t, res.Matrix)
		assert.Nil(t, res.ValueChart)
		assert.Nil(t, res.CountChart)
	})

	t.Run("unparseable date rows dropped, sheet empty only when all drop", func(t *testing.T) {
		sheet := scenarioSheet()
		sheet.Cells[1][2] = "garbage"
		res := ProcessSheet(sheet, nil)
		require.Equal(t, StatusProcessed, res.Status)
		assert.Equal(t, []string{"Jan'24", "Feb'24"}, res.Buckets)

		for i := 1; i < len(sheet.Cells); i++ {
			sheet.Cells[i][2] = "garbage"
		}
		res = ProcessSheet(sheet, nil)
		assert.Equal(t, StatusEmpty, res.Status)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("filter to Feb only keeps ABC as an all-zero row", func(t *testing.T) {
		res := ProcessSheet(scenarioSheet(), []string{"Feb'24"})

		require.Equal(t, StatusProcessed, res.Status, "sheet not empty, XYZ still has data")
		assert.Equal(t, []string{"Feb'24"}, res.Selected)

		p := res.ValueChart
		require.Len(t, p.Series, 1)
		require.Len(t, p.Series[0].Points, 2)
		assert.Equal(t, "ABC", p.Series[0].Points[0].Label)
		assert.Equal(t, 0.0, p.Series[0].Points[0].Value)
		assert.Equal(t, "XYZ", p.Series[0].Points[1].Label)
		assert.Equal(t, 50.0, p.Series[0].Points[1].Value)
	})

	t.Run("selection of labels the sheet never produced is empty", func(t *testing.T) {
		res := ProcessSheet(scenarioSheet(), []string{"Mar'24"})
		assert.Equal(t, StatusEmpty, res.Status)
	})

	t.Run("round-trip: full selection equals no selection", func(t *testing.T) {
		all := ProcessSheet(scenarioSheet(), nil)
		explicit := ProcessSheet(scenarioSheet(), []string{"Jan'24", "Feb'24"})
		assert.Equal(t, all.Matrix, explicit.Matrix)
	})

	t.Run("sub-category column drives matrix rows, first SUB header wins", func(t *testing.T) {
		sheet := RawSheet{Name: "S", Cells: [][]string{
			{"OUTLET", "PO REF NO", "PO DATE", "PO VALUE", "Sub Category", "SUBTYPE"},
			{"ABC-12", "P1", "01-01-2024", "100", "Food", "x"},
			{"ABC-45", "P2", "15-01-2024", "200", "Drink", "y"},
		}}
		res := ProcessSheet(sheet, nil)

		require.Equal(t, StatusProcessed, res.Status)
		assert.Equal(t, "Sub Category", res.Matrix.KeyHeader)
		require.Len(t, res.Matrix.Rows, 2)
		assert.Equal(t, "Drink", res.Matrix.Rows[0].Key)
		assert.Equal(t, "Food", res.Matrix.Rows[1].Key)
	})
}

func TestProcessSheets(t *testing.T) {
	t.Run("one bad sheet never aborts siblings", func(t *testing.T) {
		sheets := []RawSheet{
			{Name: "Empty"},
			scenarioSheet(),
			{Name: "NotPO", Cells: [][]string{{"Something"}, {"else"}}},
		}
		results := ProcessSheets(sheets, nil)

		require.Len(t, results, 3)
		assert.Equal(t, StatusSkipped, results[0].Status)
		assert.Equal(t, StatusProcessed, results[1].Status)
		assert.Equal(t, StatusSkipped, results[2].Status)
	})
}

func TestParseValue(t *testing.T) {
	cases := map[string]string{
		"100":        "100",
		"1,234.50":   "1234.5",
		"₹ 99":       "99",
		"Rs. 12":     "12",
		"":           "0",
		"not-money":  "0",
	}
	for in, want := range cases {
		expected, err := decimal.NewFromString(want)
		require.NoError(t, err)
		assert.True(t, parseValue(in).Equal(expected), "parseValue(%q)", in)
	}
}
