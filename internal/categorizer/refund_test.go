package categorizer

import (
	"testing"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairRefunds(txs []models.Transaction) int {
	return NewRefundPairer(logging.NewMockLogger()).Pair(txs)
}

func debit(row int, description, amount string) models.Transaction {
	return models.NewTransaction(row, models.TextCell("01/04/24"), description, dec(amount), decimal.Zero)
}

func credit(row int, description, amount string) models.Transaction {
	return models.NewTransaction(row, models.TextCell("01/04/24"), description, decimal.Zero, dec(amount))
}

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		description string
		merchant    string
		found       bool
	}{
		{"UPI-BLINKIT-ORDER", "blinkit", true},
		{"Swiggy Instamart", "swiggy", true},
		{"AMAZON ZOMATO", "zomato", true}, // merchant order, not text order
		{"APPLE.COM/BILL", "apple", true},
		{"NEFT CR-ZERODHA", "zerodha", true},
		{"BIGBASKET", "bigbasket", true},
		{"UBER TRIP", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			m, ok := ExtractMerchant(tt.description)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.merchant, m)
		})
	}
}

func TestRefundCategory(t *testing.T) {
	tests := map[string]models.Category{
		"blinkit":   models.CategoryFoodRefund,
		"swiggy":    models.CategoryFoodRefund,
		"zomato":    models.CategoryFoodRefund,
		"grofers":   models.CategoryFoodRefund,
		"bigbasket": models.CategoryFoodRefund,
		"dunzo":     models.CategoryFoodRefund,
		"apple":     models.CategoryAppleRefund,
		"zerodha":   models.CategoryStockMarketTransferRefund,
		"amazon":    models.CategoryShoppingRefund,
		"flipkart":  models.CategoryShoppingRefund,
		"netflix":   models.CategoryEntertainmentRefund,
		"other":     models.CategoryRefund,
	}
	for merchant, expected := range tests {
		assert.Equal(t, expected, RefundCategory(merchant), merchant)
		assert.True(t, models.RefundCategories[RefundCategory(merchant)])
	}
}

func TestRefundPairer_Pair(t *testing.T) {
	txs := []models.Transaction{
		debit(1, "UPI-BLINKIT-1234", "499.00"),
		debit(2, "UPI-UBER-1", "200"),
		credit(3, "UPI-BLINKIT REFUND-1234", "499.00"),
	}
	logger := logging.NewMockLogger()

	pairs := NewRefundPairer(logger).Pair(txs)

	require.Equal(t, 1, pairs)
	assert.True(t, txs[0].IsRefundMatched)
	assert.True(t, txs[2].IsRefundMatched)
	assert.False(t, txs[1].IsRefundMatched)
	assert.Equal(t, models.CategoryFoodRefund, txs[0].OverrideCategory)
	assert.Equal(t, models.CategoryFoodRefund, txs[2].OverrideCategory)
	assert.Equal(t, models.CategoryNone, txs[1].OverrideCategory)
	assert.True(t, logger.HasEntry("DEBUG", "Paired refund"))
}

func TestRefundPairer_EachCreditClaimedOnce(t *testing.T) {
	txs := []models.Transaction{
		debit(1, "AMAZON ORDER A", "1000"),
		debit(2, "AMAZON ORDER B", "1000"),
		credit(3, "AMAZON REFUND", "1000"),
		credit(4, "AMAZON REFUND", "1000"),
		credit(5, "AMAZON REFUND", "1000"),
	}

	require.Equal(t, 2, pairRefunds(txs))
	for i := 0; i < 4; i++ {
		assert.True(t, txs[i].IsRefundMatched, "row %d", i)
		assert.Equal(t, models.CategoryShoppingRefund, txs[i].OverrideCategory)
	}
	assert.False(t, txs[4].IsRefundMatched)
}

func TestRefundPairer_NoMatch(t *testing.T) {
	tests := []struct {
		name string
		txs  []models.Transaction
	}{
		{
			name: "credit before debit",
			txs:  []models.Transaction{credit(1, "SWIGGY REFUND", "300"), debit(2, "SWIGGY", "300")},
		},
		{
			name: "amount differs by a cent",
			txs:  []models.Transaction{debit(1, "SWIGGY", "300.00"), credit(2, "SWIGGY REFUND", "300.01")},
		},
		{
			name: "different merchant",
			txs:  []models.Transaction{debit(1, "SWIGGY", "300"), credit(2, "ZOMATO REFUND", "300")},
		},
		{
			name: "no merchant",
			txs:  []models.Transaction{debit(1, "UBER", "300"), credit(2, "UBER REFUND", "300")},
		},
		{
			name: "two debits",
			txs:  []models.Transaction{debit(1, "SWIGGY", "300"), debit(2, "SWIGGY", "300")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, pairRefunds(tt.txs))
			for _, tx := range tt.txs {
				assert.False(t, tx.IsRefundMatched)
			}
		})
	}
}

func TestRefundPairer_WithinTolerance(t *testing.T) {
	txs := []models.Transaction{debit(1, "NETFLIX", "649.00"), credit(2, "NETFLIX REVERSAL", "649.005")}
	require.Equal(t, 1, pairRefunds(txs))
	assert.Equal(t, models.CategoryEntertainmentRefund, txs[1].OverrideCategory)
}

func TestRefundPairer_PairInvariants(t *testing.T) {
	txs := []models.Transaction{
		debit(1, "APPLE.COM BILL", "99"),
		credit(2, "SALARY", "50000"),
		debit(3, "ZERODHA FUNDS", "10000"),
		credit(4, "APPLE REFUND", "99"),
		credit(5, "ZERODHA WITHDRAWAL", "10000"),
		debit(6, "FLIPKART", "2500"),
	}
	pairRefunds(txs)

	byCategory := map[models.Category][]models.Transaction{}
	for _, tx := range txs {
		if tx.IsRefundMatched {
			byCategory[tx.OverrideCategory] = append(byCategory[tx.OverrideCategory], tx)
		}
	}
	require.Len(t, byCategory, 2)
	for category, pair := range byCategory {
		require.Len(t, pair, 2, category)
		assert.True(t, models.RefundCategories[category])
		assert.True(t, pair[0].IsDebit())
		assert.True(t, pair[1].IsCredit())
		assert.True(t, pair[0].Magnitude().Sub(pair[1].Magnitude()).Abs().LessThan(dec("0.01")))
	}
}
