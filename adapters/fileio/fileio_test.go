package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	apperrors "github.com/pratikkkbhere/DataPilot/internal/errors"
)

func TestParse_CSV(t *testing.T) {
	input := "name,age,active\nAnn,34,true\nBob,,false\n"

	tbl, err := Parse(strings.NewReader(input), "people.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "active"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, core.Text("Ann"), tbl.Rows[0]["name"])
	assert.Equal(t, core.Number(34), tbl.Rows[0]["age"])
	assert.Equal(t, core.Boolean(true), tbl.Rows[0]["active"])
	assert.True(t, tbl.Rows[1]["age"].IsMissing())
}

func TestParse_CSVKeepsTextSpacing(t *testing.T) {
	input := "name\n  padded  \n"

	tbl, err := Parse(strings.NewReader(input), "data.csv")
	require.NoError(t, err)
	// Raw spacing survives so the cleaning pipeline's trim step has
	// something to do.
	assert.Equal(t, core.Text("  padded  "), tbl.Rows[0]["name"])
}

func TestParse_ShortRowLeavesMissingCells(t *testing.T) {
	input := "a,b,c\n1,2\n"

	tbl, err := Parse(strings.NewReader(input), "ragged.csv")
	require.NoError(t, err)
	assert.Equal(t, core.Number(2), tbl.Rows[0]["b"])
	assert.True(t, tbl.Rows[0]["c"].IsMissing())
}

func TestParse_HeaderOnlyIsEmptyNotError(t *testing.T) {
	tbl, err := Parse(strings.NewReader("a,b\n"), "empty.csv")
	require.NoError(t, err)
	assert.True(t, tbl.IsEmpty())
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse(strings.NewReader("x"), "notes.txt")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeParseError, apperrors.GetCode(err))
}

func TestParse_MalformedExcel(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not a zip archive"), "broken.xlsx")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeParseError, apperrors.GetCode(err))
}

func TestSerializeCSV_QuotesSpecialFields(t *testing.T) {
	tbl := dataset.NewTable([]string{"name", "note"}, []dataset.Row{
		{"name": core.Text("Ann, Jr."), "note": core.Text(`said "hi"`)},
	})

	out, err := Serialize(tbl, FormatCSV)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, `"Ann, Jr."`)
	assert.Contains(t, content, `"said ""hi"""`)
}

func TestSerializeJSON_BareScalars(t *testing.T) {
	tbl := dataset.NewTable([]string{"n", "s", "missing"}, []dataset.Row{
		{"n": core.Number(1.5), "s": core.Text("x"), "missing": core.Null()},
	})

	out, err := Serialize(tbl, FormatJSON)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, `"n": 1.5`)
	assert.Contains(t, content, `"s": "x"`)
	assert.Contains(t, content, `"missing": null`)
	assert.NotContains(t, content, `"kind"`)
}

func TestSerializeXLSX_RoundTrip(t *testing.T) {
	tbl := dataset.NewTable([]string{"city", "pop"}, []dataset.Row{
		{"city": core.Text("Oslo"), "pop": core.Number(700)},
	})

	out, err := Serialize(tbl, FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"city", "pop"}, rows[0])
	assert.Equal(t, "Oslo", rows[1][0])
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "sales_cleaned.csv", ExportFilename("sales.xlsx", FormatCSV))
	assert.Equal(t, "sales_cleaned.json", ExportFilename("sales.csv", FormatJSON))
	assert.Equal(t, "dataset_cleaned.xlsx", ExportFilename("", FormatXLSX))
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("Data.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = DetectFormat("archive.zip")
	assert.Error(t, err)
}
