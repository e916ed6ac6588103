package search

import (
	"slices"
	"sort"
	"strings"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
)

// veganExcludedCategories скрываются из выдачи, если в diet есть vegan.
var veganExcludedCategories = []string{"dairy", "bakery"}

// veganOverrideTerm в запросе отключает веганский фильтр: пользователь явно просит молочное.
const veganOverrideTerm = "milk"

// Preferences — срез пользовательского контекста, который влияет на выдачу.
type Preferences struct {
	Diet []string
}

// Excludes сообщает, должен ли товар быть скрыт персонализацией для запроса normalizedQuery.
func (p Preferences) Excludes(product *domain.Product, normalizedQuery string) bool {
	if !slices.Contains(p.Diet, domain.DietVegan) {
		return false
	}
	if strings.Contains(normalizedQuery, veganOverrideTerm) {
		return false
	}
	return slices.Contains(veganExcludedCategories, strings.ToLower(product.Category))
}

// Result — товар вместе с его оценкой.
type Result struct {
	Product domain.Product
	Score   float64
}

// Rank оценивает товары каталога по запросу и возвращает прошедшие порог по убыванию оценки.
// При равных оценках сохраняется порядок каталога. Пустой запрос возвращает весь каталог без оценки.
func Rank(catalog []domain.Product, query string, prefs Preferences) []Result {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		results := make([]Result, len(catalog))
		for i, p := range catalog {
			results[i] = Result{Product: p}
		}
		return results
	}

	tokens := QueryTokens(normalized)
	results := make([]Result, 0)
	for i := range catalog {
		p := &catalog[i]
		if prefs.Excludes(p, normalized) {
			continue
		}

		score := Score(normalized, tokens, p.Name, ProductTags(p))
		if Accepted(score) {
			results = append(results, Result{Product: *p, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// Products возвращает товары из результатов в том же порядке.
func Products(results []Result) []domain.Product {
	out := make([]domain.Product, len(results))
	for i, r := range results {
		out[i] = r.Product
	}
	return out
}
