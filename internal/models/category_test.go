package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategories_Enumeration(t *testing.T) {
	assert.Len(t, Categories, 24)
	assert.Equal(t, CategoryStockDividendIncome, Categories[0])
	assert.Equal(t, CategoryOtherExpenses, Categories[len(Categories)-1])

	for _, c := range Categories {
		assert.True(t, c.IsKnown(), c)
	}
	for _, c := range ExtensionCategories {
		assert.True(t, c.IsKnown(), c)
	}
	assert.False(t, Category("Groceries").IsKnown())
	assert.False(t, CategoryNone.IsKnown())
}

func TestDepositWhitelist(t *testing.T) {
	assert.Len(t, DepositWhitelist, 11)
	assert.True(t, CategorySalary.IsDepositWhitelisted())
	assert.True(t, CategoryShopping.IsDepositWhitelisted())
	assert.False(t, CategoryRent.IsDepositWhitelisted())
	assert.False(t, CategoryShoppingRefund.IsDepositWhitelisted())
}

func TestStatistics_Record(t *testing.T) {
	stats := NewStatistics([]string{"Date", "Narration"})
	stats.Record(CategoryRent)
	stats.Record(CategoryFoodAndDining)
	stats.Record(CategoryFoodAndDining)
	stats.Record(CategoryNone)

	assert.Equal(t, map[Category]int{CategoryRent: 1, CategoryFoodAndDining: 2}, stats.CategoryStats)
	assert.Equal(t, []Category{CategoryFoodAndDining, CategoryRent}, stats.CategoriesByCount())
}
