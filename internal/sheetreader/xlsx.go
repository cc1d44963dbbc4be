package sheetreader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/xuri/excelize/v2"
)

// XLSXReader decodes Office Open XML workbooks with excelize.
type XLSXReader struct {
	BaseReader
}

// NewXLSXReader creates an XLSXReader.
func NewXLSXReader(logger logging.Logger) *XLSXReader {
	return &XLSXReader{BaseReader: NewBaseReader(logger)}
}

// Read decodes the first worksheet. Cell values are raw (dates stay serial
// numbers); shared and inline strings become text cells and everything else
// that parses as a float becomes a number cell.
func (x *XLSXReader) Read(ctx context.Context, r io.Reader) (models.CellGrid, error) {
	blob, err := readBlob(ctx, r)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, decodeError(FormatXLSX, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			x.logger.WithError(cerr).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, decodeError(FormatXLSX, errors.New("workbook has no worksheets"))
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, decodeError(FormatXLSX, err)
	}

	grid := make(models.CellGrid, len(rows))
	for i, raw := range rows {
		row := make(models.Row, len(raw))
		for j, value := range raw {
			row[j] = x.cell(f, sheet, i, j, value)
		}
		grid[i] = row
	}

	x.logger.Debug("Decoded xlsx worksheet",
		logging.F("sheet", sheet),
		logging.F(logging.FieldCount, len(grid)))
	return grid, nil
}

func (x *XLSXReader) cell(f *excelize.File, sheet string, row, col int, value string) models.Cell {
	if value == "" {
		return models.EmptyCell()
	}
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err == nil {
		if kind, err := f.GetCellType(sheet, ref); err == nil {
			switch kind {
			case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
				return models.TextCell(value)
			case excelize.CellTypeBool:
				return models.TextCell(value)
			}
		}
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return models.NumberCell(n)
	}
	return models.TextCell(value)
}
