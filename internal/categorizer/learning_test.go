package categorizer

import (
	"context"
	"testing"
	"time"

	"fjacquet/stmt-categorizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func example(narration, amount string, correct models.Category, age time.Duration) models.LearningExample {
	return models.LearningExample{
		Narration:        narration,
		Amount:           dec(amount),
		OriginalCategory: models.CategoryOtherExpenses,
		CorrectCategory:  correct,
		Timestamp:        epoch.Add(-age),
		Source:           models.SourceInteractive,
	}
}

func TestLearnedStrategy_Categorize(t *testing.T) {
	examples := []models.LearningExample{
		example("UPI-SOMESHOP-PAYMENT", "250", models.CategoryShopping, time.Hour),
		example("GYM MEMBERSHIP", "3000", models.CategoryHealthcare, time.Hour),
		example("XQZ", "777", models.CategoryRent, time.Hour),
	}
	s := NewLearnedStrategy(examples)

	tests := []struct {
		name        string
		description string
		amount      string
		expected    models.Category
		found       bool
	}{
		{"token overlap", "upi someshop payment", "99999", models.CategoryShopping, true},
		{"amount within ten percent", "ABC", "800", models.CategoryRent, true},
		{"amount just outside", "ABC", "600", models.CategoryNone, false},
		{"learned word in query", "ANNUAL MEMBERSHIP RENEWAL", "99999", models.CategoryHealthcare, true},
		{"short words ignored", "GYM", "99999", models.CategoryNone, false},
		{"nothing similar", "UNRELATED", "12", models.CategoryNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, found, err := s.Categorize(context.Background(), Input{Description: tt.description, Amount: dec(tt.amount)})
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestLearnedStrategy_MajorityAndTies(t *testing.T) {
	t.Run("majority wins", func(t *testing.T) {
		s := NewLearnedStrategy([]models.LearningExample{
			example("PAYTM WALLET", "100", models.CategoryShopping, 3*time.Hour),
			example("PAYTM WALLET", "100", models.CategoryShopping, 2*time.Hour),
			example("PAYTM WALLET", "100", models.CategoryMobileInternet, time.Hour),
		})
		c, found, err := s.Categorize(context.Background(), Input{Description: "PAYTM WALLET", Amount: dec("100")})
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, models.CategoryShopping, c)
	})

	t.Run("tie goes to the most recent", func(t *testing.T) {
		s := NewLearnedStrategy([]models.LearningExample{
			example("PAYTM WALLET", "100", models.CategoryShopping, 2*time.Hour),
			example("PAYTM WALLET", "100", models.CategoryMobileInternet, time.Hour),
		})
		c, _, err := s.Categorize(context.Background(), Input{Description: "PAYTM WALLET", Amount: dec("100")})
		require.NoError(t, err)
		assert.Equal(t, models.CategoryMobileInternet, c)
	})
}

func TestLearnedStrategy_SkipsUncorrectedExamples(t *testing.T) {
	s := NewLearnedStrategy([]models.LearningExample{example("PAYTM", "100", models.CategoryNone, 0)})
	assert.Zero(t, s.Size())
}

func TestLearnedStrategy_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, found, err := NewLearnedStrategy(nil).Categorize(ctx, Input{Description: "x", Amount: dec("1")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, found)
}

func TestWeightedStrategy_Categorize(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      string
		expected    models.Category
	}{
		{"refund outweighs food", "UPI-SWIGGY REFUND", "300", models.CategoryFoodRefund},
		{"loan outweighs rent", "UPI-HDFC BANK LTD HOUSIN", "50000", models.CategoryLoanEMI},
		{"equal scores keep table order", "NEFT CR-ZERODHA BROKING LTD", "1000", models.CategoryStockMarketTransferRefund},
		{"food ties with rent", "UPI-ZOMATO", "20000", models.CategoryFoodAndDining},
		{"salary", "NEFT CR-PHONEPE LENDING SERVICES", "90000", models.CategorySalary},
		{"no score", "SOMETHING UNKNOWN", "10", models.CategoryOtherExpenses},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, found, err := WeightedStrategy{}.Categorize(context.Background(), Input{Description: tt.description, Amount: dec(tt.amount)})
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 1.0, jaccard(tokenSet("a b"), tokenSet("b-a")))
	assert.Equal(t, 0.5, jaccard(tokenSet("a b"), tokenSet("a")))
	assert.Equal(t, 0.0, jaccard(tokenSet(""), tokenSet("")))
	assert.Equal(t, 0.0, jaccard(tokenSet("x"), tokenSet("y")))
}
