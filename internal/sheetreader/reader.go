// Package sheetreader decodes bank-statement spreadsheets into a CellGrid.
// Only the first worksheet of a workbook is read.
package sheetreader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/parsererror"
)

// Reader turns a spreadsheet blob into a CellGrid.
type Reader interface {
	Read(ctx context.Context, r io.Reader) (models.CellGrid, error)
}

// Format identifies a spreadsheet encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

// FormatFromPath derives the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", &parsererror.ValidationError{
			FilePath: path,
			Reason:   "unsupported file extension (expected .xlsx, .xls or .csv)",
		}
	}
}

// GetReader returns the Reader for format.
func GetReader(format Format, logger logging.Logger) (Reader, error) {
	switch format {
	case FormatXLSX:
		return NewXLSXReader(logger), nil
	case FormatXLS:
		return NewXLSReader(logger), nil
	case FormatCSV:
		return NewCSVReader(logger), nil
	default:
		return nil, fmt.Errorf("unknown spreadsheet format: %s", format)
	}
}

// ReadFile opens path and decodes it with the reader matching its extension.
func ReadFile(ctx context.Context, path string, logger logging.Logger) (models.CellGrid, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	reader, err := GetReader(format, logger)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- path is supplied by the CLI user
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()

	grid, err := reader.Read(ctx, file)
	if err != nil {
		var decodeErr *parsererror.DecodeError
		if errors.As(err, &decodeErr) && decodeErr.FilePath == "" {
			decodeErr.FilePath = path
		}
		return nil, err
	}
	return grid, nil
}

// BaseReader carries what every format reader shares.
type BaseReader struct {
	logger logging.Logger
}

// NewBaseReader creates a BaseReader. A nil logger falls back to an info
// level logrus logger.
func NewBaseReader(logger logging.Logger) BaseReader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseReader{logger: logger}
}

// GetLogger returns the reader's logger.
func (b *BaseReader) GetLogger() logging.Logger {
	return b.logger
}

// readBlob drains r into memory. Reading is the only blocking step of a
// statement run, so it is where cancellation is observed.
func readBlob(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, &ctxReader{ctx: ctx, r: r}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// textCell maps decoder text to a cell; "" is the empty cell.
func textCell(s string) models.Cell {
	if s == "" {
		return models.EmptyCell()
	}
	return models.TextCell(s)
}
