package models

// Category is the label appended to a statement row. The empty Category
// marks an uncategorized deposit that is not emitted.
type Category string

// Categories produced by the rule cascade.
const (
	CategoryStockDividendIncome       Category = "Stock Dividend Income"
	CategorySalary                    Category = "Salary"
	CategorySavingInterest            Category = "Saving Interest"
	CategorySelfTransferFromAxis      Category = "Self Transfer From Axis"
	CategoryOmMarketingTransfer       Category = "Om Marketing Transfer"
	CategoryMutualFundSIP             Category = "Mutual Fund SIP"
	CategoryStockMarketTransfer       Category = "Stock Market Transfer"
	CategoryStockMarketTransferRefund Category = "Stock Market Transfer Refund"
	CategoryLoanEMI                   Category = "Loan EMI"
	CategoryLifeInsuranceEMI          Category = "Life Insurance EMI"
	CategoryEntertainment             Category = "Entertainment"
	CategoryFoodAndDining             Category = "Food & Dining"
	CategoryFoodRefund                Category = "Food Refund"
	CategoryAppleRefund               Category = "Apple Refund"
	CategoryRent                      Category = "Rent"
	CategoryMobileInternet            Category = "Mobile/Internet"
	CategoryShopping                  Category = "Shopping"
	CategoryTransportation            Category = "Transportation"
	CategoryCashWithdrawal            Category = "Cash Withdrawal"
	CategoryHealthcare                Category = "Healthcare"
	CategoryBankCharges               Category = "Bank Charges"
	CategoryCreditCardPayment         Category = "Credit Card Payment"
	CategoryRefund                    Category = "Refund"
	CategoryOtherExpenses             Category = "Other Expenses"
)

// Extensions of the enumeration. The refund pairer produces the first two,
// the cascade's investment fallback produces the third.
const (
	CategoryShoppingRefund      Category = "Shopping Refund"
	CategoryEntertainmentRefund Category = "Entertainment Refund"
	CategoryInvestmentSIP       Category = "Investment/SIP"
)

// CategoryNone is the sentinel "do not emit" category.
const CategoryNone Category = ""

// Categories lists the closed enumeration in its canonical order.
var Categories = []Category{
	CategoryStockDividendIncome,
	CategorySalary,
	CategorySavingInterest,
	CategorySelfTransferFromAxis,
	CategoryOmMarketingTransfer,
	CategoryMutualFundSIP,
	CategoryStockMarketTransfer,
	CategoryStockMarketTransferRefund,
	CategoryLoanEMI,
	CategoryLifeInsuranceEMI,
	CategoryEntertainment,
	CategoryFoodAndDining,
	CategoryFoodRefund,
	CategoryAppleRefund,
	CategoryRent,
	CategoryMobileInternet,
	CategoryShopping,
	CategoryTransportation,
	CategoryCashWithdrawal,
	CategoryHealthcare,
	CategoryBankCharges,
	CategoryCreditCardPayment,
	CategoryRefund,
	CategoryOtherExpenses,
}

// ExtensionCategories are accepted alongside the enumeration.
var ExtensionCategories = []Category{
	CategoryShoppingRefund,
	CategoryEntertainmentRefund,
	CategoryInvestmentSIP,
}

// DepositWhitelist holds the categories a credit row may be labelled with.
// Any other rule result for a credit is suppressed.
var DepositWhitelist = map[Category]bool{
	CategoryStockDividendIncome:       true,
	CategorySalary:                    true,
	CategorySavingInterest:            true,
	CategorySelfTransferFromAxis:      true,
	CategoryOmMarketingTransfer:       true,
	CategoryRefund:                    true,
	CategoryStockMarketTransferRefund: true,
	CategoryFoodRefund:                true,
	CategoryAppleRefund:               true,
	CategoryEntertainment:             true,
	CategoryShopping:                  true,
}

// RefundCategories are the labels a matched refund pair may carry.
var RefundCategories = map[Category]bool{
	CategoryFoodRefund:                true,
	CategoryAppleRefund:               true,
	CategoryStockMarketTransferRefund: true,
	CategoryShoppingRefund:            true,
	CategoryEntertainmentRefund:       true,
	CategoryRefund:                    true,
}

var knownCategories = func() map[Category]bool {
	m := make(map[Category]bool, len(Categories)+len(ExtensionCategories))
	for _, c := range Categories {
		m[c] = true
	}
	for _, c := range ExtensionCategories {
		m[c] = true
	}
	return m
}()

// IsKnown reports whether c is an enumerated category or an extension.
func (c Category) IsKnown() bool {
	return knownCategories[c]
}

// IsDepositWhitelisted reports whether a credit may be labelled with c.
func (c Category) IsDepositWhitelisted() bool {
	return DepositWhitelist[c]
}

func (c Category) String() string {
	return string(c)
}
