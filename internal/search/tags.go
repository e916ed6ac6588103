// Package search содержит чистые функции поиска по каталогу: генерацию тегов товара и оценку релевантности.
package search

import (
	"strings"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
)

// TagSet — множество тегов в нижнем регистре.
type TagSet map[string]struct{}

func NewTagSet(tokens ...string) TagSet {
	set := make(TagSet, len(tokens))
	for _, t := range tokens {
		set.Add(t)
	}
	return set
}

func (s TagSet) Add(tokens ...string) {
	for _, t := range tokens {
		if t != "" {
			s[t] = struct{}{}
		}
	}
}

func (s TagSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// synonymRule добавляет synonyms, если одна из подстрок встретилась в названии или категории.
type synonymRule struct {
	inName     []string
	inCategory []string
	synonyms   []string
}

var synonymRules = []synonymRule{
	{
		inName:     []string{"milk"},
		inCategory: []string{"dairy"},
		synonyms:   []string{"calcium", "white", "liquid", "cow", "milk"},
	},
	{
		inName:   []string{"curd"},
		synonyms: []string{"yogurt", "probiotic", "dahi"},
	},
	{
		inName:   []string{"paneer"},
		synonyms: []string{"cheese", "protein", "soft"},
	},
	{
		inName:     []string{"bread"},
		inCategory: []string{"bakery"},
		synonyms:   []string{"toast", "sandwich", "wheat", "loaf", "bread"},
	},
	{
		inName:     []string{"chips"},
		inCategory: []string{"snacks"},
		synonyms:   []string{"snack", "crunchy", "salty", "junk", "munchies", "chips"},
	},
	{
		inName:   []string{"coca-cola", "coke"},
		synonyms: []string{"soda", "fizzy", "drink", "beverage", "cold", "coke"},
	},
	{
		inCategory: []string{"vegetable"},
		synonyms:   []string{"healthy", "cooking", "fresh", "green", "vegetable"},
	},
}

func (r synonymRule) matches(name, category string) bool {
	for _, sub := range r.inName {
		if strings.Contains(name, sub) {
			return true
		}
	}
	for _, sub := range r.inCategory {
		if strings.Contains(category, sub) {
			return true
		}
	}
	return false
}

// ProductTags строит теги товара: слова названия, категория и синонимы из synonymRules.
func ProductTags(p *domain.Product) TagSet {
	name := strings.ToLower(p.Name)
	category := strings.ToLower(p.Category)

	tags := NewTagSet(strings.Fields(name)...)
	tags.Add(category)

	for _, rule := range synonymRules {
		if rule.matches(name, category) {
			tags.Add(rule.synonyms...)
		}
	}

	return tags
}
