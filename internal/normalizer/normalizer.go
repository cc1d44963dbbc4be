// Package normalizer turns statement rows into canonical transactions.
package normalizer

import (
	"strings"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

// Normalizer extracts transactions from the rows below a statement header.
type Normalizer struct {
	logger logging.Logger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Normalizer{logger: logger}
}

// Normalize returns one transaction per usable data row, in row order.
// Rows that are too short, lack a date or description, or move no money
// are skipped without error.
func (n *Normalizer) Normalize(grid models.CellGrid, s models.Schema) []models.Transaction {
	dateIdx, ok := s.Column(models.RoleDate)
	if !ok {
		return nil
	}
	descIdx, ok := s.Column(models.RoleDescription)
	if !ok {
		return nil
	}
	minLen := max(dateIdx, descIdx)

	var transactions []models.Transaction
	skipped := 0
	for r := s.HeaderRowIndex() + 1; r < len(grid); r++ {
		row := grid[r]
		if len(row) <= minLen {
			skipped++
			continue
		}

		txn, ok := n.normalizeRow(r, row, s, dateIdx, descIdx)
		if !ok {
			skipped++
			continue
		}
		transactions = append(transactions, txn)
	}

	n.logger.Debug("Normalized statement rows",
		logging.F(logging.FieldCount, len(transactions)),
		logging.F("skipped", skipped))
	return transactions
}

func (n *Normalizer) normalizeRow(r int, row models.Row, s models.Schema, dateIdx, descIdx int) (models.Transaction, bool) {
	date := row.At(dateIdx)
	if !date.Truthy() {
		return models.Transaction{}, false
	}
	description := strings.TrimSpace(row.At(descIdx).AsText())
	if description == "" {
		return models.Transaction{}, false
	}

	withdrawal, deposit, ok := Magnitudes(row, s)
	if !ok {
		return models.Transaction{}, false
	}
	return models.NewTransaction(r, date, description, withdrawal, deposit), true
}

// Magnitudes reads the withdrawal and deposit of a row. Split columns take
// precedence over a single signed amount column. ok is false when the row
// moves no money.
func Magnitudes(row models.Row, s models.Schema) (withdrawal, deposit decimal.Decimal, ok bool) {
	withdrawal, deposit = decimal.Zero, decimal.Zero

	switch {
	case s.HasSplitAmounts():
		wIdx, _ := s.Column(models.RoleWithdrawal)
		dIdx, _ := s.Column(models.RoleDeposit)
		withdrawal = splitAmount(row.At(wIdx))
		deposit = splitAmount(row.At(dIdx))
	case s.HasAmount():
		aIdx, _ := s.Column(models.RoleAmount)
		amount := parseAmount(row.At(aIdx))
		switch amount.Sign() {
		case 1:
			deposit = amount
		case -1:
			withdrawal = amount.Abs()
		}
	}

	if withdrawal.IsZero() && deposit.IsZero() {
		return decimal.Zero, decimal.Zero, false
	}
	return withdrawal, deposit, true
}

// splitAmount parses a withdrawal or deposit cell. Only a positive value
// counts; a negative one reads as an empty side.
func splitAmount(c models.Cell) decimal.Decimal {
	amount := parseAmount(c)
	if amount.Sign() <= 0 {
		return decimal.Zero
	}
	return amount
}

func parseAmount(c models.Cell) decimal.Decimal {
	text := strings.TrimSpace(c.AsText())
	if text == "" {
		return decimal.Zero
	}
	return models.ParseCellAmount(c)
}
