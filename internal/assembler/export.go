package assembler

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/stmt-categorizer/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Categorized Transactions"

// WriteCSV writes grid as CSV. With quoteAll every cell is double-quoted and
// rows are separated by a bare newline with none after the last row, which
// is what a spreadsheet expects on paste. Otherwise standard CSV quoting is
// used.
func WriteCSV(w io.Writer, grid models.CellGrid, quoteAll bool) error {
	if !quoteAll {
		cw := csv.NewWriter(w)
		for _, row := range grid {
			if err := cw.Write(row.Texts()); err != nil {
				return fmt.Errorf("error writing CSV data: %w", err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("error writing CSV data: %w", err)
		}
		return nil
	}

	bw := bufio.NewWriter(w)
	for i, row := range grid {
		if i > 0 {
			_ = bw.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				_ = bw.WriteByte(',')
			}
			_ = bw.WriteByte('"')
			_, _ = bw.WriteString(strings.ReplaceAll(cell.AsText(), `"`, `""`))
			_ = bw.WriteByte('"')
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteXLSX writes grid as a single-sheet workbook. Numeric cells stay
// numeric.
func WriteXLSX(w io.Writer, grid models.CellGrid) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}
	for i, row := range grid {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			switch cell.Kind {
			case models.CellNumber:
				values[j] = cell.Number
			case models.CellText:
				values[j] = cell.Text
			}
		}
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("error addressing row %d: %w", i, err)
		}
		if err := f.SetSheetRow(SheetName, start, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// WriteFile writes grid to path, as a workbook when the extension is
// .xlsx and as CSV otherwise.
func WriteFile(path string, grid models.CellGrid, quoteAll bool) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing output file: %w", cerr)
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX(file, grid)
	}
	return WriteCSV(file, grid, quoteAll)
}
