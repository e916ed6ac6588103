package search

import (
	"testing"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		product("dairy-001", "Amul Taaza Fresh Milk", "dairy"),
		product("dairy-002", "Amul Masti Dahi", "dairy"),
		product("dairy-003", "Amul Malai Paneer", "dairy"),
		product("bakery-001", "Britannia White Bread", "bakery"),
		product("snack-001", "Lays India's Magic Masala", "snacks"),
		product("snack-002", "Kurkure Masala Munch", "snacks"),
		product("bev-001", "Coca-Cola Original", "beverages"),
		product("veg-001", "Onion (Pyaz)", "vegetables"),
	}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Product.ID
	}
	return out
}

func TestRank_SynonymMatch(t *testing.T) {
	results := Rank(testCatalog(), "fizzy", Preferences{})
	assert.Equal(t, []string{"bev-001"}, ids(results))
}

func TestRank_EmptyQueryReturnsCatalogOrder(t *testing.T) {
	catalog := testCatalog()
	results := Rank(catalog, "   ", Preferences{Diet: []string{"vegan"}})

	assert.Len(t, results, len(catalog))
	assert.Equal(t, "dairy-001", results[0].Product.ID)
	assert.Equal(t, "veg-001", results[len(results)-1].Product.ID)
}

func TestRank_VeganFiltersDairy(t *testing.T) {
	plain := Rank(testCatalog(), "calcium", Preferences{})
	assert.Equal(t, []string{"dairy-001", "dairy-002"}, ids(plain))

	vegan := Rank(testCatalog(), "calcium", Preferences{Diet: []string{"vegan"}})
	assert.Empty(t, vegan)
}

func TestRank_MilkOverridesVeganFilter(t *testing.T) {
	results := Rank(testCatalog(), "Milk", Preferences{Diet: []string{"vegan"}})

	assert.Equal(t, []string{"dairy-001", "dairy-002"}, ids(results))
	assert.Greater(t, results[0].Score, 1.0)
}

func TestRank_SortsByScoreDescending(t *testing.T) {
	results := Rank(testCatalog(), "masala", Preferences{})

	assert.Equal(t, []string{"snack-002", "snack-001"}, ids(results))
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestRank_ExactThresholdIsExcluded(t *testing.T) {
	// snack-002 has 10 tags, one of them "chips": score is exactly 0.1
	results := Rank(testCatalog(), "chips", Preferences{})
	assert.Empty(t, results)
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	catalog := []domain.Product{
		product("a", "Alpha Soap", "home"),
		product("b", "Beta Soap", "home"),
	}

	results := Rank(catalog, "home", Preferences{})
	assert.Equal(t, []string{"a", "b"}, ids(results))
}

func TestPreferences_Excludes(t *testing.T) {
	vegan := Preferences{Diet: []string{"vegan"}}
	bread := product("bakery-001", "Britannia White Bread", "Bakery")
	coke := product("bev-001", "Coca-Cola Original", "beverages")

	assert.True(t, vegan.Excludes(&bread, "bread"))
	assert.False(t, vegan.Excludes(&bread, "milk bread"))
	assert.False(t, vegan.Excludes(&coke, "coke"))
	assert.False(t, Preferences{}.Excludes(&bread, "bread"))
}
