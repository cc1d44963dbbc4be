package sheetreader

import (
	"bytes"
	"context"
	"errors"
	"io"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/extrame/xls"
)

// XLSReader decodes legacy BIFF workbooks with extrame/xls.
type XLSReader struct {
	BaseReader
}

// NewXLSReader creates an XLSReader.
func NewXLSReader(logger logging.Logger) *XLSReader {
	return &XLSReader{BaseReader: NewBaseReader(logger)}
}

// Read decodes the first worksheet. The decoder renders every cell as text,
// so all non-empty cells become text cells.
func (x *XLSReader) Read(ctx context.Context, r io.Reader) (grid models.CellGrid, err error) {
	blob, err := readBlob(ctx, r)
	if err != nil {
		return nil, err
	}

	// extrame/xls panics on some malformed streams.
	defer func() {
		if rec := recover(); rec != nil {
			grid = nil
			err = decodeError(FormatXLS, errors.New("malformed workbook"))
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(blob), "utf-8")
	if err != nil {
		return nil, decodeError(FormatXLS, err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, decodeError(FormatXLS, errors.New("workbook has no worksheets"))
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, decodeError(FormatXLS, errors.New("first worksheet is unreadable"))
	}

	maxRow := int(sheet.MaxRow)
	grid = make(models.CellGrid, 0, maxRow+1)
	for i := 0; i <= maxRow; i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, models.Row{})
			continue
		}
		cells := make(models.Row, row.LastCol())
		for j := range cells {
			cells[j] = textCell(row.Col(j))
		}
		grid = append(grid, cells)
	}

	x.logger.Debug("Decoded xls worksheet",
		logging.F("sheet", sheet.Name),
		logging.F(logging.FieldCount, len(grid)))
	return grid, nil
}
