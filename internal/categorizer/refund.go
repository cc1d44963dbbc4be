package categorizer

import (
	"strings"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

// refundTolerance is the largest amount difference still treated as equal.
var refundTolerance = decimal.RequireFromString("0.01")

// merchants are tested in this order; the first hit is the merchant token.
var merchants = []string{
	"blinkit", "swiggy", "zomato", "amazon", "flipkart", "netflix",
	"apple", "zerodha", "grofers", "bigbasket", "dunzo",
}

// ExtractMerchant returns the first known merchant token in description.
func ExtractMerchant(description string) (string, bool) {
	d := strings.ToLower(description)
	for _, m := range merchants {
		if strings.Contains(d, m) {
			return m, true
		}
	}
	return "", false
}

// RefundCategory maps a merchant token to the category both sides of a
// refund pair receive.
func RefundCategory(merchant string) models.Category {
	switch merchant {
	case "swiggy", "zomato", "blinkit", "dunzo", "grofers", "bigbasket":
		return models.CategoryFoodRefund
	case "apple":
		return models.CategoryAppleRefund
	case "zerodha":
		return models.CategoryStockMarketTransferRefund
	case "amazon", "flipkart":
		return models.CategoryShoppingRefund
	case "netflix":
		return models.CategoryEntertainmentRefund
	default:
		return models.CategoryRefund
	}
}

// RefundPairer marks debit/credit pairs that cancel each other out.
type RefundPairer struct {
	logger logging.Logger
}

// NewRefundPairer creates a pairer. A nil logger falls back to the default
// adapter.
func NewRefundPairer(logger logging.Logger) *RefundPairer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RefundPairer{logger: logger}
}

// Pair scans txs in place. Each debit is matched with the first later,
// still unclaimed credit of the same merchant whose amount differs by less
// than 0.01. Both sides get IsRefundMatched and the merchant's refund
// category as override. It returns the number of pairs.
func (p *RefundPairer) Pair(txs []models.Transaction) int {
	tokens := make([]string, len(txs))
	for i := range txs {
		tokens[i], _ = ExtractMerchant(txs[i].Description)
	}

	pairs := 0
	for i := range txs {
		debit := &txs[i]
		if !debit.IsDebit() || debit.IsRefundMatched || tokens[i] == "" {
			continue
		}
		for j := i + 1; j < len(txs); j++ {
			credit := &txs[j]
			if !credit.IsCredit() || credit.IsRefundMatched || tokens[j] != tokens[i] {
				continue
			}
			if debit.Withdrawal.Sub(credit.Deposit).Abs().GreaterThanOrEqual(refundTolerance) {
				continue
			}
			category := RefundCategory(tokens[i])
			debit.IsRefundMatched, debit.OverrideCategory = true, category
			credit.IsRefundMatched, credit.OverrideCategory = true, category
			pairs++

			p.logger.WithFields(
				logging.Field{Key: logging.FieldMerchant, Value: tokens[i]},
				logging.Field{Key: logging.FieldRow, Value: debit.SourceRow},
				logging.Field{Key: "credit_row", Value: credit.SourceRow},
				logging.Field{Key: logging.FieldCategory, Value: string(category)},
			).Debug("Paired refund")
			break
		}
	}
	return pairs
}
