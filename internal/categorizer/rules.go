package categorizer

import (
	"strings"

	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

// Score weights used when the rule table is evaluated as a weighted vote.
const (
	weightIncome   = 10 // income, investment, loan and subscription rules
	weightMerchant = 8  // everyday merchant rules
	weightRefund   = 5  // generic refunds
)

var (
	amountRent    = decimal.NewFromInt(15000)
	amountLoanEMI = decimal.NewFromInt(80000)
)

// Token groups shared by several rules.
var (
	refundTokens        = []string{"refund", "reversal"}
	foodRefundMerchants = []string{"swiggy", "zomato", "blinkit", "dunzo", "grofers", "bigbasket"}
	brokerTokens        = []string{"zerodha", "groww", "upstox", "angel", "iifl"}
	entertainmentTokens = []string{"netflix", "bigtree", "bookmyshow"}
	shoppingMerchants   = []string{"amazon", "flipkart", "myntra"}
	dividendIssuers     = []string{"360 one", "r r kabel", "steelcast", "arvind", "godfrey", "carysil", "kirloskar"}
)

// rule is one row of the cascade. match receives the lowercased
// description. A rule with routes resolves its category through the first
// matching route instead of using category.
type rule struct {
	name     string
	category models.Category
	weight   int
	match    func(d string, amount decimal.Decimal) bool
	routes   []route
}

// route is a row of a nested first-match table. A route without terms
// always matches.
type route struct {
	category models.Category
	weight   int
	terms    []string
}

// resolve returns the category and weight the rule yields for d.
func (r rule) resolve(d string) (models.Category, int) {
	if len(r.routes) == 0 {
		return r.category, r.weight
	}
	for _, rt := range r.routes {
		if len(rt.terms) == 0 || has(d, rt.terms...) {
			return rt.category, rt.weight
		}
	}
	return models.CategoryRefund, weightRefund
}

// rules is the cascade. Order is significant: the first matching rule wins.
var rules = []rule{
	{
		name: "dividend", category: models.CategoryStockDividendIncome, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "ach c-") ||
				(has(d, "upi-") && has(d, "div", "dividend")) ||
				has(d, "int div", "fnldiv", "ador int div") ||
				(has(d, "div") && has(d, dividendIssuers...))
		},
	},
	{
		name: "salary", category: models.CategorySalary, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return hasAll(d, "neft cr-", "phonepe lending services")
		},
	},
	{
		name: "saving-interest", category: models.CategorySavingInterest, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "interest paid till")
		},
	},
	{
		name: "self-transfer-axis", category: models.CategorySelfTransferFromAxis, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return hasAll(d, "imps-", "anshulagarwal", "utib")
		},
	},
	{
		name: "om-marketing", category: models.CategoryOmMarketingTransfer, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "tpt-") && has(d, "anmol associates", "om marketing", "rajeev kumar agarwal")
		},
	},
	{
		// The housing loan branch does not depend on the amount.
		name: "loan-emi", category: models.CategoryLoanEMI, weight: weightIncome,
		match: func(d string, amount decimal.Decimal) bool {
			return (has(d, "ach d- hdfc bank ltd") && amount.GreaterThan(amountLoanEMI)) ||
				has(d, "upi-hdfc bank ltd housin")
		},
	},
	{
		name: "life-insurance", category: models.CategoryLifeInsuranceEMI, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return hasAll(d, "lic", "premium") || has(d, "hlic inst")
		},
	},
	{
		name: "entertainment", category: models.CategoryEntertainment, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "netflix", "bigtree entertainmen", "bookmyshow")
		},
	},
	{
		name: "broker-refund", category: models.CategoryStockMarketTransferRefund, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return (has(d, "zerodha", "groww", "upstox") && has(d, refundTokens...)) ||
				hasAll(d, "neft cr-", "zerodha broking ltd")
		},
	},
	{
		name: "mutual-fund-sip", category: models.CategoryMutualFundSIP, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return hasAll(d, "ach d-", "indian clearing corp") ||
				has(d, "zerodha coin", "upi-indianclearingcorpor") ||
				hasAll(d, "bse", "limited")
		},
	},
	{
		name: "stock-market-transfer", category: models.CategoryStockMarketTransfer, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			broker := (has(d, "zerodha") && !has(d, "coin")) ||
				has(d, "groww", "upstox", "angel", "iifl", "trading", "demat", "securities")
			return broker && !has(d, refundTokens...)
		},
	},
	{
		name: "credit-card", category: models.CategoryCreditCardPayment, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "cred", "credit card", "cc payment")
		},
	},
	{
		name: "refund-routing", weight: weightRefund,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, refundTokens...)
		},
		routes: []route{
			{category: models.CategoryFoodRefund, weight: weightIncome, terms: foodRefundMerchants},
			{category: models.CategoryAppleRefund, weight: weightIncome, terms: []string{"apple"}},
			{category: models.CategoryStockMarketTransferRefund, weight: weightIncome, terms: brokerTokens},
			{category: models.CategoryEntertainment, weight: weightIncome, terms: entertainmentTokens},
			{category: models.CategoryShopping, weight: weightMerchant, terms: shoppingMerchants},
			{category: models.CategoryRefund, weight: weightRefund},
		},
	},
	{
		name: "food", category: models.CategoryFoodAndDining, weight: weightMerchant,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "swiggy", "zomato", "pizza", "dominos", "mcdonalds", "kfc", "restaurant", "food",
				"blinkit", "dunzo", "grofers", "bigbasket")
		},
	},
	{
		name: "rent", category: models.CategoryRent, weight: weightMerchant,
		match: func(d string, amount decimal.Decimal) bool {
			return has(d, "rent") || (amount.GreaterThan(amountRent) && has(d, "upi") && !has(d, "cred"))
		},
	},
	{
		name: "mobile", category: models.CategoryMobileInternet, weight: weightMerchant,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "jio", "airtel", "vi ", "vodafone", "prepaid", "recharge", "mobile", "telecom")
		},
	},
	{
		name: "shopping", category: models.CategoryShopping, weight: weightMerchant,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "amazon", "flipkart", "myntra", "shopping", "mart", "store", "purchase")
		},
	},
	{
		name: "transport", category: models.CategoryTransportation, weight: weightMerchant,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "uber", "ola", "taxi", "metro", "fuel", "petrol", "transport", "cab")
		},
	},
	{
		name: "cash", category: models.CategoryCashWithdrawal, weight: weightMerchant,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "atm", "cash withdrawal", "cash wd")
		},
	},
	{
		name: "healthcare", category: models.CategoryHealthcare, weight: weightMerchant,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "hospital", "medical", "pharmacy", "doctor", "health", "clinic")
		},
	},
	{
		name: "bank-charges", category: models.CategoryBankCharges, weight: weightMerchant,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "charges", "fee", "penalty", "service charge", "annual fee")
		},
	},
	{
		// Unreachable for descriptions already taken by the dividend, SIP
		// or broker rules.
		name: "investment", category: models.CategoryInvestmentSIP, weight: weightIncome,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "sip", "mutual fund", "investment", "bse", "nse")
		},
	},
	{
		name: "refund", category: models.CategoryRefund, weight: weightRefund,
		match: func(d string, _ decimal.Decimal) bool {
			return has(d, "refund", "reversal", "return")
		},
	},
	{
		name: "default", category: models.CategoryOtherExpenses,
		match: func(string, decimal.Decimal) bool { return true },
	},
}

// CategorizeByRules runs the cascade over description and amount. It is a
// pure function and always returns a category.
func CategorizeByRules(description string, amount decimal.Decimal) models.Category {
	return cascade(rules, strings.ToLower(description), amount)
}

func cascade(table []rule, d string, amount decimal.Decimal) models.Category {
	for _, r := range table {
		if r.match(d, amount) {
			category, _ := r.resolve(d)
			return category
		}
	}
	return models.CategoryOtherExpenses
}

// MatchRule returns the name of the rule that decides description and
// amount.
func MatchRule(description string, amount decimal.Decimal) string {
	d := strings.ToLower(description)
	for _, r := range rules {
		if r.match(d, amount) {
			return r.name
		}
	}
	return rules[len(rules)-1].name
}

func has(d string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(d, term) {
			return true
		}
	}
	return false
}

func hasAll(d string, terms ...string) bool {
	for _, term := range terms {
		if !strings.Contains(d, term) {
			return false
		}
	}
	return true
}
