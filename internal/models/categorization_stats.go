package models

import (
	"sort"

	"fjacquet/stmt-categorizer/internal/logging"
)

// Statistics is the aggregate bundle returned with a categorized statement.
type Statistics struct {
	TotalTransactions      int                 `json:"totalTransactions" yaml:"totalTransactions"`
	WithdrawalTransactions int                 `json:"withdrawalTransactions" yaml:"withdrawalTransactions"`
	DepositTransactions    int                 `json:"depositTransactions" yaml:"depositTransactions"`
	CategoryStats          map[Category]int    `json:"categoryStats" yaml:"categoryStats"`
	Headers                []string            `json:"headers" yaml:"headers"`
	Details                []TransactionDetail `json:"transactionDetails" yaml:"transactionDetails"`
}

// NewStatistics creates an empty Statistics for the given output headers.
func NewStatistics(headers []string) *Statistics {
	return &Statistics{
		CategoryStats: make(map[Category]int),
		Headers:       headers,
	}
}

// Record counts one emitted category. The empty category is not counted.
func (s *Statistics) Record(category Category) {
	if category == CategoryNone {
		return
	}
	s.CategoryStats[category]++
}

// CategoriesByCount returns the counted categories, most frequent first and
// alphabetical among equals.
func (s *Statistics) CategoriesByCount() []Category {
	out := make([]Category, 0, len(s.CategoryStats))
	for c := range s.CategoryStats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := s.CategoryStats[out[i]], s.CategoryStats[out[j]]
		if ci != cj {
			return ci > cj
		}
		return out[i] < out[j]
	})
	return out
}

// LogSummary logs a summary of categorization statistics
func (s *Statistics) LogSummary(logger logging.Logger, engine string) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.F(logging.FieldEngine, engine),
		logging.F("total_transactions", s.TotalTransactions),
		logging.F("withdrawal_transactions", s.WithdrawalTransactions),
		logging.F("deposit_transactions", s.DepositTransactions),
		logging.F("distinct_categories", len(s.CategoryStats)),
	)
	for _, c := range s.CategoriesByCount() {
		logger.Debug("Category count",
			logging.F(logging.FieldCategory, string(c)),
			logging.F(logging.FieldCount, s.CategoryStats[c]))
	}
}
