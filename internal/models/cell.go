package models

import "strconv"

// CellKind tags the value held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one decoded spreadsheet value: text, number or empty.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell returns a text cell. The empty string is still a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// EmptyCell returns the empty cell.
func EmptyCell() Cell {
	return Cell{}
}

// AsText renders the cell as text. Numbers are printed without trailing
// zeros (86000, 1234.5); empty cells render as "".
func (c Cell) AsText() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Truthy is false for empty cells, empty text and the number zero.
func (c Cell) Truthy() bool {
	switch c.Kind {
	case CellText:
		return c.Text != ""
	case CellNumber:
		return c.Number != 0
	default:
		return false
	}
}

// Row is one spreadsheet row. Rows in a grid may have different lengths.
type Row []Cell

// At returns the cell at index i, or the empty cell when the row is shorter.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return EmptyCell()
	}
	return r[i]
}

// Texts renders every cell of the row with AsText.
func (r Row) Texts() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.AsText()
	}
	return out
}

// NonEmptyCount counts the cells that render to a non-empty string.
func (r Row) NonEmptyCount() int {
	n := 0
	for _, c := range r {
		if c.AsText() != "" {
			n++
		}
	}
	return n
}

// CellGrid is a decoded worksheet in row-major order.
type CellGrid []Row

// Width returns the length of the longest row.
func (g CellGrid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// GridFromStrings builds a grid of text cells; "" becomes an empty cell.
func GridFromStrings(rows [][]string) CellGrid {
	grid := make(CellGrid, len(rows))
	for i, raw := range rows {
		row := make(Row, len(raw))
		for j, s := range raw {
			if s == "" {
				row[j] = EmptyCell()
			} else {
				row[j] = TextCell(s)
			}
		}
		grid[i] = row
	}
	return grid
}
