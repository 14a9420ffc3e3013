// Package fileio decodes uploaded CSV and Excel files into tables and
// serializes tables back out for export. Decoding produces raw cells only
// typed by literal shape; column-level type inference happens downstream.
package fileio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	apperrors "github.com/pratikkkbhere/DataPilot/internal/errors"
	"github.com/pratikkkbhere/DataPilot/internal/infer"
)

// Format identifies a file encoding handled by this package.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// DetectFormat maps a filename to its upload format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xls":
		return FormatXLSX, nil
	default:
		return "", apperrors.ParseError(fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), nil)
	}
}

// Parse decodes an uploaded file into a table. Malformed content is a
// parse error; a well-formed file with no data rows decodes to an empty
// table, which the caller treats as the empty-file condition rather than
// a failure.
func Parse(r io.Reader, filename string) (*dataset.Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var t *dataset.Table
	switch format {
	case FormatCSV:
		t, err = parseCSV(r)
	default:
		t, err = parseXLSX(r)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[FileIO] %s file parsed in %.2fms (%d columns, %d rows)",
		strings.ToUpper(string(format)), float64(time.Since(start).Microseconds())/1000,
		t.NumColumns(), t.NumRows())
	return t, nil
}

func parseCSV(r io.Reader) (*dataset.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.ParseError("failed to read CSV content", err)
	}
	return fromRecords(records), nil
}

func parseXLSX(r io.Reader) (*dataset.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.ParseError("failed to open Excel content", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.NewTable(nil, nil), nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.ParseError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	return fromRecords(records), nil
}

// fromRecords builds a table from header + data rows. Header cells are
// trimmed; a row shorter than the header leaves the tail cells missing,
// never fails.
func fromRecords(records [][]string) *dataset.Table {
	if len(records) == 0 {
		return dataset.NewTable(nil, nil)
	}

	columns := make([]string, len(records[0]))
	for i, h := range records[0] {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([]dataset.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(dataset.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = parseCell(record[i])
			} else {
				row[col] = core.Null()
			}
		}
		rows = append(rows, row)
	}
	return dataset.NewTable(columns, rows)
}

// parseCell types a raw cell by its literal shape. Number and boolean
// literals become native values; everything else stays text with its
// original spacing so the cleaning pipeline's trim step sees it.
func parseCell(raw string) core.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return core.Null()
	}
	if infer.IsNumberLiteral(trimmed) {
		v := core.Text(trimmed)
		if f, ok := v.Float(); ok {
			return core.Number(f)
		}
	}
	if infer.IsBooleanLiteral(trimmed) {
		return core.Boolean(strings.EqualFold(trimmed, "true"))
	}
	return core.Text(raw)
}

// Serialize encodes a table for download in the given format.
func Serialize(t *dataset.Table, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return serializeCSV(t)
	case FormatXLSX:
		return serializeXLSX(t)
	case FormatJSON:
		return json.MarshalIndent(t.Rows, "", "  ")
	default:
		return nil, apperrors.ValidationError(fmt.Sprintf("unsupported export format: %s", format))
	}
}

func serializeCSV(t *dataset.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, apperrors.Wrap(err, "failed to write CSV header")
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = t.Cell(row, col).String()
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.Wrap(err, "failed to write CSV row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(err, "failed to flush CSV output")
	}
	return buf.Bytes(), nil
}

func serializeXLSX(t *dataset.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, apperrors.Wrap(err, "failed to write Excel header")
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = excelCell(t.Cell(row, col))
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to address Excel row")
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return nil, apperrors.Wrap(err, "failed to write Excel row")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.Wrap(err, "failed to encode Excel workbook")
	}
	return buf.Bytes(), nil
}

func excelCell(v core.Value) interface{} {
	switch v.Kind {
	case core.KindNull:
		return nil
	case core.KindNumber:
		return v.Num
	case core.KindBool:
		return v.Bool
	default:
		return v.Str
	}
}

// ExportFilename derives the download name for a cleaned dataset from the
// uploaded file's name.
func ExportFilename(originalName string, format Format) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	if base == "" {
		base = "dataset"
	}
	return fmt.Sprintf("%s_cleaned.%s", base, format)
}

// ContentType returns the MIME type served for a download format.
func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
