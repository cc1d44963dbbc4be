package models

import (
	"github.com/shopspring/decimal"
)

// TransactionDirection tells whether money left or entered the account.
type TransactionDirection string

const (
	DirectionDebit  TransactionDirection = "debit"
	DirectionCredit TransactionDirection = "credit"
)

// Transaction is the canonical record built from one statement row.
// At most one of Withdrawal and Deposit is positive.
type Transaction struct {
	SourceRow   int             // index of the row in the CellGrid
	Date        Cell            // kept opaque
	Description string          // trimmed
	Withdrawal  decimal.Decimal // >= 0
	Deposit     decimal.Decimal // >= 0

	IsRefundMatched  bool
	OverrideCategory Category
}

// NewTransaction builds a Transaction from non-negative magnitudes. When
// both are positive the row is treated as a debit.
func NewTransaction(sourceRow int, date Cell, description string, withdrawal, deposit decimal.Decimal) Transaction {
	if withdrawal.IsPositive() && deposit.IsPositive() {
		deposit = decimal.Zero
	}
	return Transaction{
		SourceRow:   sourceRow,
		Date:        date,
		Description: description,
		Withdrawal:  withdrawal,
		Deposit:     deposit,
	}
}

// Direction is debit when Withdrawal is positive, credit otherwise.
func (t Transaction) Direction() TransactionDirection {
	if t.Withdrawal.IsPositive() {
		return DirectionDebit
	}
	return DirectionCredit
}

// IsDebit returns true if the transaction is a debit
func (t Transaction) IsDebit() bool {
	return t.Direction() == DirectionDebit
}

// IsCredit returns true if the transaction is a credit
func (t Transaction) IsCredit() bool {
	return t.Direction() == DirectionCredit
}

// Magnitude is the positive amount moved, max(Withdrawal, Deposit).
func (t Transaction) Magnitude() decimal.Decimal {
	if t.Withdrawal.GreaterThan(t.Deposit) {
		return t.Withdrawal
	}
	return t.Deposit
}

// TransactionDetail is a categorized row as listed in the result bundle.
type TransactionDetail struct {
	Date      string          `json:"date" yaml:"date"`
	Narration string          `json:"narration" yaml:"narration"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Category  Category        `json:"category" yaml:"category"`
	Type      string          `json:"type" yaml:"type"`
}

// Detail types.
const (
	DetailTypeWithdrawal = "withdrawal"
	DetailTypeDeposit    = "deposit"
)

// Detail returns the listing entry for t labelled with category.
func (t Transaction) Detail(category Category) TransactionDetail {
	kind := DetailTypeDeposit
	if t.IsDebit() {
		kind = DetailTypeWithdrawal
	}
	return TransactionDetail{
		Date:      t.Date.AsText(),
		Narration: t.Description,
		Amount:    t.Magnitude(),
		Category:  category,
		Type:      kind,
	}
}
