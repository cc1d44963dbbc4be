package sheetreader

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
)

// CSVReader reads comma separated statements as text cells.
type CSVReader struct {
	BaseReader
}

// NewCSVReader creates a CSVReader.
func NewCSVReader(logger logging.Logger) *CSVReader {
	return &CSVReader{BaseReader: NewBaseReader(logger)}
}

// Read decodes every record. Records may have different lengths.
func (c *CSVReader) Read(ctx context.Context, r io.Reader) (models.CellGrid, error) {
	blob, err := readBlob(ctx, r)
	if err != nil {
		return nil, err
	}
	blob = bytes.TrimPrefix(blob, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(blob))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, decodeError(FormatCSV, err)
	}

	grid := make(models.CellGrid, len(records))
	for i, record := range records {
		row := make(models.Row, len(record))
		for j, value := range record {
			row[j] = textCell(value)
		}
		grid[i] = row
	}

	c.logger.Debug("Decoded csv statement", logging.F(logging.FieldCount, len(grid)))
	return grid, nil
}
