package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeMatrix(t *testing.T) {
	records := scenarioRecords()
	labels := []string{"Jan'24", "Feb'24"}
	count := PivotRecords(records, labels, MeasureCount, groupByOutlet)
	value := PivotRecords(records, labels, MeasureValue, groupByOutlet)

	m := ComposeMatrix(count, value, "")

	t.Run("column count is two per bucket plus totals", func(t *testing.T) {
		assert.Len(t, m.Columns, 2*(len(labels)+1))
	})

	t.Run("count block precedes value block with disambiguated names", func(t *testing.T) {
		names := make([]string, 0, len(m.Columns))
		for _, c := range m.Columns {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{
			"PO No Jan'24", "PO No Feb'24", "PO No Total",
			"PO Value Jan'24", "PO Value Feb'24", "PO Value Total",
		}, names)
	})

	t.Run("column kinds carried as data", func(t *testing.T) {
		assert.Equal(t, MeasureCount, m.Columns[0].Kind)
		assert.Equal(t, MeasureCount, m.Columns[2].Kind)
		assert.Equal(t, MeasureValue, m.Columns[3].Kind)
		assert.Equal(t, MeasureValue, m.Columns[5].Kind)
	})

	t.Run("rows merge both measures on one key", func(t *testing.T) {
		require.Len(t, m.Rows, 2)
		abc := m.Rows[0]
		require.Equal(t, "ABC", abc.Key)
		assert.True(t, abc.Cells[0].Equal(decimal.NewFromInt(2)))  // PO No Jan'24
		assert.True(t, abc.Cells[2].Equal(decimal.NewFromInt(2)))  // PO No Total
		assert.True(t, abc.Cells[3].Equal(decimal.NewFromInt(300))) // PO Value Jan'24
		assert.True(t, abc.Cells[5].Equal(decimal.NewFromInt(300))) // PO Value Total
	})

	t.Run("key absent from one pivot contributes zeros", func(t *testing.T) {
		lone := Pivot{Measure: MeasureCount, Buckets: labels, Rows: []PivotRow{
			{Key: "ONLY", Cells: []decimal.Decimal{decimal.NewFromInt(1), decimal.Zero}, Total: decimal.NewFromInt(1)},
		}}
		empty := Pivot{Measure: MeasureValue, Buckets: labels}
		merged := ComposeMatrix(lone, empty, "")
		require.Len(t, merged.Rows, 1)
		assert.True(t, merged.Rows[0].Cells[3].IsZero())
		assert.True(t, merged.Rows[0].Cells[5].IsZero())
	})
}
