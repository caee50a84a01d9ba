package tabular_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expertbi/expertbi-api/internal/tabular"
)

func TestParseCSV(t *testing.T) {
	input := "category,amount\nA,10\nA,20\nB,70\n"

	table, err := tabular.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"category", "amount"}, table.Columns)
	require.Equal(t, 3, table.RowCount())
	assert.Equal(t, "A", table.Rows[0]["category"])
	assert.Equal(t, "10", table.Rows[0]["amount"])
	assert.Equal(t, "70", table.Rows[2]["amount"])
}

func TestParseCSV_ShortRecordsLeaveCellsUnset(t *testing.T) {
	input := "a,b,c\n1,2\n4,5,6\n"

	table, err := tabular.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, table.RowCount())
	_, ok := table.Rows[0]["c"]
	assert.False(t, ok)
	assert.Equal(t, "6", table.Rows[1]["c"])
}

func TestParseCSV_EmptyInput(t *testing.T) {
	table, err := tabular.ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, table.RowCount())
	assert.Zero(t, table.ColumnCount())
}

func TestParseJSON(t *testing.T) {
	input := `[{"category":"A","amount":10},{"category":"B","amount":70.5}]`

	table, err := tabular.ParseJSON(strings.NewReader(input))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"category", "amount"}, table.Columns)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, "A", table.Rows[0]["category"])
	// Numbers decode as json.Number, not float64.
	assert.Equal(t, "10", tabular.Cell(table.Rows[0]["amount"]))
	assert.Equal(t, "70.5", tabular.Cell(table.Rows[1]["amount"]))
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := tabular.ParseJSON(strings.NewReader(`{"not":"an array"}`))
	assert.Error(t, err)
}

func TestParseFile_UnsupportedFormat(t *testing.T) {
	_, err := tabular.ParseFile("irrelevant.xls", "xls")
	require.Error(t, err)

	var unsupported *tabular.ErrUnsupportedFormat
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "xls", unsupported.Format)
}

func TestExportCSVRoundTrip(t *testing.T) {
	original := "category,amount\nA,10\nB,70\n"
	table, err := tabular.ParseCSV(strings.NewReader(original))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tabular.ExportCSV(&buf, table))
	assert.Equal(t, original, buf.String())
}

func TestExportJSON(t *testing.T) {
	table, err := tabular.ParseCSV(strings.NewReader("name\nalice\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tabular.ExportJSON(&buf, table))
	assert.JSONEq(t, `[{"name":"alice"}]`, buf.String())
}

func TestExportXLSXProducesWorkbook(t *testing.T) {
	table, err := tabular.ParseCSV(strings.NewReader("category,amount\nA,10\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tabular.ExportXLSX(&buf, table))
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}

func TestExport_UnknownFormat(t *testing.T) {
	table := &tabular.Table{Columns: []string{"a"}}
	err := tabular.Export(&bytes.Buffer{}, table, "parquet")
	assert.Error(t, err)
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, "csv", tabular.NormalizeExtension(".CSV"))
	assert.Equal(t, "xlsx", tabular.NormalizeExtension("xlsx"))
}

func TestHeadAndColumn(t *testing.T) {
	table, err := tabular.ParseCSV(strings.NewReader("v\n1\n2\n3\n"))
	require.NoError(t, err)

	head := table.Head(2)
	assert.Equal(t, 2, head.RowCount())
	assert.Equal(t, 3, table.RowCount())

	assert.Len(t, table.Column("v"), 3)
	assert.Empty(t, table.Column("missing"))
	assert.True(t, table.HasColumn("v"))
	assert.False(t, table.HasColumn("w"))
}
