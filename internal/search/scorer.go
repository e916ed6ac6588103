package search

import "strings"

const (
	// MatchThreshold — минимальная оценка (не включительно), при которой товар попадает в выдачу.
	MatchThreshold = 0.1
	// SubstringBonus добавляется, если запрос целиком содержится в названии товара.
	SubstringBonus = 1.0
)

// NormalizeQuery приводит запрос к нижнему регистру и обрезает пробелы.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// QueryTokens разбивает нормализованный запрос по пробельным символам.
func QueryTokens(query string) TagSet {
	return NewTagSet(strings.Fields(NormalizeQuery(query))...)
}

// Jaccard = |a ∩ b| / |a ∪ b|. При пустом пересечении возвращает ровно 0.
func Jaccard(a, b TagSet) float64 {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for t := range small {
		if large.Has(t) {
			intersection++
		}
	}
	if intersection == 0 {
		return 0
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// Score возвращает Jaccard по тегам плюс SubstringBonus, если normalizedQuery входит в название.
func Score(normalizedQuery string, queryTokens TagSet, productName string, tags TagSet) float64 {
	score := Jaccard(queryTokens, tags)
	if normalizedQuery != "" && strings.Contains(strings.ToLower(productName), normalizedQuery) {
		score += SubstringBonus
	}
	return score
}

// Accepted сообщает, проходит ли оценка порог MatchThreshold.
func Accepted(score float64) bool {
	return score > MatchThreshold
}
