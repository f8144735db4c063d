package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutriscan/backend/internal/domain"
)

func TestSelect_ReversesToMostSpecificFirst(t *testing.T) {
	selector := NewCategorySelector(4)
	product := domain.Product{Categories: "Snacks, Sweet snacks, Biscuits, Chocolate biscuits"}

	got := selector.Select(product)

	assert.Equal(t, []string{"Chocolate biscuits", "Biscuits", "Sweet snacks", "Snacks"}, got)
}

func TestSelect_ExcludesGenericCategories(t *testing.T) {
	selector := NewCategorySelector(4)
	product := domain.Product{Categories: "Food, Beverages, Orange juice"}

	got := selector.Select(product)

	assert.Equal(t, []string{"Orange juice"}, got)
}

func TestSelect_FallsBackWhenEverythingExcluded(t *testing.T) {
	selector := NewCategorySelector(4)
	product := domain.Product{Categories: "Groceries, Food, Beverages"}

	got := selector.Select(product)

	// All entries generic: keep the single most-specific original entry so
	// the aggregator still has a search target.
	assert.Equal(t, []string{"Beverages"}, got)
}

func TestSelect_CapsResultCount(t *testing.T) {
	selector := NewCategorySelector(2)
	product := domain.Product{Categories: "a, b, c, d, e"}

	got := selector.Select(product)

	assert.Equal(t, []string{"e", "d"}, got)
}

func TestSelect_PrefersTagsOverString(t *testing.T) {
	selector := NewCategorySelector(4)
	product := domain.Product{
		Categories:     "Should, Not, Be, Used",
		CategoriesTags: []string{"en:plant-based-foods", "en:fruit-juices", "en:orange-juices"},
	}

	got := selector.Select(product)

	assert.Equal(t, []string{"orange-juices", "fruit-juices", "plant-based-foods"}, got)
}

func TestSelect_StripsLanguagePrefix(t *testing.T) {
	selector := NewCategorySelector(4)
	product := domain.Product{CategoriesTags: []string{"en:beverages", "fr:jus-d-orange"}}

	got := selector.Select(product)

	assert.Equal(t, []string{"jus-d-orange"}, got)
}

func TestSelect_NoCategoryData(t *testing.T) {
	selector := NewCategorySelector(4)

	assert.Nil(t, selector.Select(domain.Product{}))
}

func TestSelect_WhitespaceAndEmptyEntries(t *testing.T) {
	selector := NewCategorySelector(4)
	product := domain.Product{Categories: "  Juices ,  , Smoothies  "}

	got := selector.Select(product)

	assert.Equal(t, []string{"Smoothies", "Juices"}, got)
}

func TestNewCategorySelector_DefaultCap(t *testing.T) {
	selector := NewCategorySelector(0)
	product := domain.Product{Categories: "a, b, c, d, e, f"}

	assert.Len(t, selector.Select(product), DefaultMaxCategories)
}
