package categorizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// featureKeywords groups the keyword counters of a feature vector.
var featureKeywords = []struct {
	group string
	words []string
}{
	{"financial", []string{"bank", "hdfc", "icici", "axis", "sbi", "kotak"}},
	{"payment", []string{"upi", "neft", "imps", "ach", "rtgs", "payment"}},
	{"merchants", []string{"swiggy", "zomato", "amazon", "flipkart", "netflix", "spotify"}},
	{"investment", []string{"zerodha", "groww", "sip", "dividend", "mutual", "fund"}},
	{"utilities", []string{"electricity", "water", "gas", "mobile", "airtel", "jio"}},
	{"transport", []string{"uber", "ola", "petrol", "fuel", "metro", "taxi"}},
	{"food", []string{"restaurant", "food", "pizza", "dominos", "mcdonalds"}},
	{"shopping", []string{"mart", "store", "shopping", "purchase", "myntra"}},
	{"emi", []string{"emi", "loan", "insurance", "premium", "lic"}},
}

var (
	longNumber = regexp.MustCompile(`\d{10,}`)

	amountLarge    = decimal.NewFromInt(50000)
	amountSmall    = decimal.NewFromInt(1000)
	amountHundred  = decimal.NewFromInt(100)
	amountEMILower = decimal.NewFromInt(80000)
	amountEMIUpper = decimal.NewFromInt(90000)
)

// ExtractFeatures builds the feature vector stored with a learning example.
// Keyword groups count matching words; the remaining entries are 0/1 flags.
func ExtractFeatures(description string, amount decimal.Decimal) map[string]int {
	d := strings.ToLower(description)
	features := make(map[string]int, len(featureKeywords)+11)

	for _, g := range featureKeywords {
		n := 0
		for _, w := range g.words {
			if strings.Contains(d, w) {
				n++
			}
		}
		features[g.group+"_keywords"] = n
	}

	features["amount_large"] = flag(amount.GreaterThan(amountLarge))
	features["amount_medium"] = flag(amount.GreaterThan(amountSmall) && amount.LessThanOrEqual(amountLarge))
	features["amount_small"] = flag(amount.LessThanOrEqual(amountSmall))
	features["amount_round"] = flag(amount.Mod(amountHundred).IsZero())
	features["amount_emi_range"] = flag(amount.GreaterThan(amountEMILower) && amount.LessThan(amountEMIUpper))

	features["has_email"] = flag(strings.Contains(d, "@"))
	features["has_numbers"] = flag(longNumber.MatchString(d))
	features["has_refund"] = flag(has(d, refundTokens...))
	features["has_dividend"] = flag(has(d, "div", "dividend"))
	features["text_length"] = flag(len([]rune(description)) > 50)
	features["has_company"] = flag(has(d, "ltd", "limited"))

	return features
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
