package models

// Role is the meaning of a statement column.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleWithdrawal  Role = "withdrawal"
	RoleDeposit     Role = "deposit"
	RoleAmount      Role = "amount"
	RoleBalance     Role = "balance"
	RoleReference   Role = "reference"
	RoleCategory    Role = "category"
)

// Schema locates the header row of a statement and maps roles to columns.
// It is read-only once built.
type Schema struct {
	headerRowIndex int
	columns        map[Role]int
	headerCells    []string
}

// NewSchema builds a Schema. The maps and slices are copied.
func NewSchema(headerRowIndex int, columns map[Role]int, headerCells []string) Schema {
	cols := make(map[Role]int, len(columns))
	for role, idx := range columns {
		cols[role] = idx
	}
	cells := make([]string, len(headerCells))
	copy(cells, headerCells)
	return Schema{headerRowIndex: headerRowIndex, columns: cols, headerCells: cells}
}

// HeaderRowIndex is the grid row holding the header.
func (s Schema) HeaderRowIndex() int {
	return s.headerRowIndex
}

// Column returns the column index mapped to role.
func (s Schema) Column(role Role) (int, bool) {
	idx, ok := s.columns[role]
	return idx, ok
}

// Columns returns a copy of the role mapping.
func (s Schema) Columns() map[Role]int {
	out := make(map[Role]int, len(s.columns))
	for role, idx := range s.columns {
		out[role] = idx
	}
	return out
}

// HeaderCells returns the header row rendered as text.
func (s Schema) HeaderCells() []string {
	out := make([]string, len(s.headerCells))
	copy(out, s.headerCells)
	return out
}

// HasSplitAmounts reports whether both withdrawal and deposit columns exist.
// Split columns take precedence over a single amount column.
func (s Schema) HasSplitAmounts() bool {
	_, w := s.columns[RoleWithdrawal]
	_, d := s.columns[RoleDeposit]
	return w && d
}

// HasAmount reports whether a single signed amount column exists.
func (s Schema) HasAmount() bool {
	_, ok := s.columns[RoleAmount]
	return ok
}
