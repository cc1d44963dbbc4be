package categorizer

import (
	"context"
	"regexp"
	"strings"
	"time"

	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// similarityThreshold is the Jaccard index above which two narrations
	// are considered the same transaction.
	similarityThreshold = 0.7
	// minKeywordLength is the rune length a learned word must exceed to be
	// looked up inside a narration.
	minKeywordLength = 3
)

var (
	nonWord         = regexp.MustCompile(`\W+`)
	amountTolerance = decimal.RequireFromString("0.1")
)

// learnedExample is a learning example prepared for lookups.
type learnedExample struct {
	tokens   map[string]struct{}
	words    []string
	amount   decimal.Decimal
	category models.Category
	at       time.Time
}

// LearnedStrategy looks a transaction up among previously corrected
// examples. It finds nothing when no example is similar.
type LearnedStrategy struct {
	examples []learnedExample
}

// NewLearnedStrategy prepares examples for lookup. Examples without a
// corrected category are ignored.
func NewLearnedStrategy(examples []models.LearningExample) *LearnedStrategy {
	s := &LearnedStrategy{examples: make([]learnedExample, 0, len(examples))}
	for _, ex := range examples {
		if ex.CorrectCategory == models.CategoryNone {
			continue
		}
		lower := strings.ToLower(ex.Narration)
		var words []string
		for _, w := range strings.Split(lower, " ") {
			if len([]rune(w)) > minKeywordLength {
				words = append(words, w)
			}
		}
		s.examples = append(s.examples, learnedExample{
			tokens:   tokenSet(lower),
			words:    words,
			amount:   ex.Amount,
			category: ex.CorrectCategory,
			at:       ex.Timestamp,
		})
	}
	return s
}

// Name implements CategorizationStrategy.
func (s *LearnedStrategy) Name() string { return "learned" }

// Size returns the number of usable examples.
func (s *LearnedStrategy) Size() int { return len(s.examples) }

// Categorize implements CategorizationStrategy. An example is similar when
// the token sets overlap by more than 0.7, when the amounts are within 10%
// of the query amount, or when one of the example's longer words occurs in
// the query. The most frequent corrected category among similar examples
// wins; ties go to the most recently learned category, then to the name.
func (s *LearnedStrategy) Categorize(ctx context.Context, in Input) (models.Category, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.CategoryNone, false, err
	}
	if len(s.examples) == 0 {
		return models.CategoryNone, false, nil
	}

	d := strings.ToLower(in.Description)
	query := tokenSet(d)
	tolerance := in.Amount.Mul(amountTolerance)

	type vote struct {
		count  int
		latest time.Time
	}
	votes := make(map[models.Category]*vote)
	for _, ex := range s.examples {
		if !(jaccard(query, ex.tokens) > similarityThreshold ||
			in.Amount.Sub(ex.amount).Abs().LessThan(tolerance) ||
			containsWord(d, ex.words)) {
			continue
		}
		v, ok := votes[ex.category]
		if !ok {
			v = &vote{}
			votes[ex.category] = v
		}
		v.count++
		if ex.at.After(v.latest) {
			v.latest = ex.at
		}
	}

	best, bestVote := models.CategoryNone, (*vote)(nil)
	for category, v := range votes {
		switch {
		case bestVote == nil,
			v.count > bestVote.count,
			v.count == bestVote.count && v.latest.After(bestVote.latest),
			v.count == bestVote.count && v.latest.Equal(bestVote.latest) && category < best:
			best, bestVote = category, v
		}
	}
	return best, bestVote != nil, nil
}

// WeightedStrategy scores every category over the rule predicates instead
// of stopping at the first match. It always finds a category.
type WeightedStrategy struct{}

// Name implements CategorizationStrategy.
func (WeightedStrategy) Name() string { return "weighted" }

// Categorize implements CategorizationStrategy.
func (WeightedStrategy) Categorize(ctx context.Context, in Input) (models.Category, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.CategoryNone, false, err
	}
	return scoreRules(rules, strings.ToLower(in.Description), in.Amount), true, nil
}

// scoreRules adds up the weight of every matching rule per category. The
// highest total wins; equal totals go to the category whose first scoring
// rule comes earlier in the table. No score at all yields Other Expenses.
func scoreRules(table []rule, d string, amount decimal.Decimal) models.Category {
	type tally struct {
		score int
		first int
	}
	scores := make(map[models.Category]*tally)
	for i, r := range table {
		if r.weight == 0 || !r.match(d, amount) {
			continue
		}
		category, weight := r.resolve(d)
		t, ok := scores[category]
		if !ok {
			t = &tally{first: i}
			scores[category] = t
		}
		t.score += weight
	}

	best, bestTally := models.CategoryOtherExpenses, (*tally)(nil)
	for category, t := range scores {
		if bestTally == nil || t.score > bestTally.score ||
			(t.score == bestTally.score && t.first < bestTally.first) {
			best, bestTally = category, t
		}
	}
	return best
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range nonWord.Split(s, -1) {
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter)
}

func containsWord(d string, words []string) bool {
	for _, w := range words {
		if strings.Contains(d, w) {
			return true
		}
	}
	return false
}
