// Package schema locates the header row of a bank statement and maps its
// columns to transaction roles.
package schema

import (
	"strings"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/parsererror"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxHeaderScanRows bounds the header search to the top of the sheet.
	MaxHeaderScanRows = 50
	// MinHeaderCells is the number of non-empty cells a header row needs.
	MinHeaderCells = 4
)

// headerPattern is one recognised header vocabulary. Every group must be
// satisfied, and a group is satisfied by any of its terms.
type headerPattern struct {
	name   string
	groups [][]string
}

var headerPatterns = []headerPattern{
	{name: "narration", groups: [][]string{{"date"}, {"narration"}, {"withdrawal", "debit"}}},
	{name: "particulars", groups: [][]string{{"tran date"}, {"particulars"}, {"dr"}, {"cr"}}},
	{name: "description", groups: [][]string{{"date"}, {"description"}, {"amount", "debit", "credit"}}},
}

func (p headerPattern) matches(text string) bool {
	for _, group := range p.groups {
		if !containsAny(text, group) {
			return false
		}
	}
	return true
}

// roleRule assigns a role to a header cell containing any of its terms.
// Rules are tried in order and the first match wins.
type roleRule struct {
	role  models.Role
	terms []string
}

var roleRules = []roleRule{
	{role: models.RoleDate, terms: []string{"date", "dt"}},
	{role: models.RoleDescription, terms: []string{"narration", "description", "particulars", "details"}},
	{role: models.RoleWithdrawal, terms: []string{"withdrawal", "debit", "dr"}},
	{role: models.RoleDeposit, terms: []string{"deposit", "credit", "cr"}},
	{role: models.RoleBalance, terms: []string{"balance", "bal"}},
	{role: models.RoleReference, terms: []string{"ref", "chq", "check"}},
	{role: models.RoleCategory, terms: []string{"category", "ai category", "transaction category"}},
}

// Inferer finds the header row and column roles of a statement.
type Inferer struct {
	logger logging.Logger
}

// NewInferer creates an Inferer.
func NewInferer(logger logging.Logger) *Inferer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Inferer{logger: logger}
}

// Infer returns the statement schema, a *parsererror.NoHeaderError when no
// header appears in the first MaxHeaderScanRows rows, or a
// *parsererror.MissingColumnError when the date or description is unmapped.
func (i *Inferer) Infer(grid models.CellGrid) (models.Schema, error) {
	headerIdx, pattern, ok := findHeader(grid)
	if !ok {
		return models.Schema{}, &parsererror.NoHeaderError{RowsScanned: min(len(grid), MaxHeaderScanRows)}
	}

	header := grid[headerIdx]
	columns := mapColumns(header)

	var missing []string
	if _, ok := columns[models.RoleDate]; !ok {
		missing = append(missing, string(models.RoleDate))
	}
	if _, ok := columns[models.RoleDescription]; !ok {
		missing = append(missing, string(models.RoleDescription))
	}
	if len(missing) > 0 {
		return models.Schema{}, &parsererror.MissingColumnError{HeaderRow: headerIdx, Missing: missing}
	}

	s := models.NewSchema(headerIdx, columns, header.Texts())
	if !s.HasSplitAmounts() && !s.HasAmount() {
		i.logger.Warn("Header has no usable amount columns; no rows will be categorized",
			logging.F(logging.FieldHeaderRow, headerIdx))
	}

	i.logger.Debug("Inferred statement schema",
		logging.F(logging.FieldHeaderRow, headerIdx),
		logging.F("pattern", pattern),
		logging.F("columns", columns))
	return s, nil
}

// InferTraining is Infer for a previously categorized statement; the
// category column is mandatory.
func (i *Inferer) InferTraining(grid models.CellGrid) (models.Schema, error) {
	s, err := i.Infer(grid)
	if err != nil {
		return models.Schema{}, err
	}
	if _, ok := s.Column(models.RoleCategory); !ok {
		return models.Schema{}, &parsererror.TrainingHeaderError{
			Reason: "no category column found; the sheet needs a \"Transaction Category\" column",
		}
	}
	return s, nil
}

func findHeader(grid models.CellGrid) (int, string, bool) {
	limit := min(len(grid), MaxHeaderScanRows)
	for idx := 0; idx < limit; idx++ {
		row := grid[idx]
		if row.NonEmptyCount() < MinHeaderCells {
			continue
		}
		text := foldHeader(strings.Join(row.Texts(), " "))
		for _, p := range headerPatterns {
			if p.matches(text) {
				return idx, p.name, true
			}
		}
	}
	return 0, "", false
}

func mapColumns(header models.Row) map[models.Role]int {
	columns := make(map[models.Role]int)
	for col, cell := range header {
		text := foldHeader(cell.AsText())
		if text == "" {
			continue
		}
		for _, rule := range roleRules {
			if containsAny(text, rule.terms) {
				if _, taken := columns[rule.role]; !taken {
					columns[rule.role] = col
				}
				break
			}
		}
	}

	_, hasWithdrawal := columns[models.RoleWithdrawal]
	_, hasDeposit := columns[models.RoleDeposit]
	if !(hasWithdrawal && hasDeposit) {
		for col, cell := range header {
			if strings.Contains(foldHeader(cell.AsText()), "amount") {
				columns[models.RoleAmount] = col
				break
			}
		}
	}
	return columns
}

// foldHeader lowercases header text after compatibility normalisation, so
// full-width or ligature forms match the plain vocabulary.
func foldHeader(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
