package usecase

import (
	"strings"

	"github.com/nutriscan/backend/internal/domain"
)

// DefaultMaxCategories caps fan-out width during alternative search.
const DefaultMaxCategories = 4

// excludedCategories are too generic to yield comparable alternatives; a
// search for "food" returns nothing like the scanned product.
var excludedCategories = map[string]bool{
	"groceries": true,
	"food":      true,
	"beverages": true,
	"meals":     true,
	"sauces":    true,
	"dairies":   true,
}

// CategorySelector derives an ordered set of search categories from a
// product's raw category data.
type CategorySelector struct {
	maxCategories int
}

// NewCategorySelector creates a selector bounding its output to
// maxCategories entries; non-positive values fall back to the default.
func NewCategorySelector(maxCategories int) *CategorySelector {
	if maxCategories <= 0 {
		maxCategories = DefaultMaxCategories
	}
	return &CategorySelector{maxCategories: maxCategories}
}

// Select returns up to maxCategories search tags, most-specific-first.
// Catalog category data runs broad to narrow, so the source order is
// reversed. Generic categories are excluded; if exclusion empties the list
// the single most-specific original entry is kept so the aggregator always
// has a target when any category data exists.
func (s *CategorySelector) Select(product domain.Product) []string {
	entries := categoryEntries(product)
	if len(entries) == 0 {
		return nil
	}

	// Reverse to prefer the most specific tags.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	filtered := make([]string, 0, len(entries))
	for _, entry := range entries {
		if excludedCategories[strings.ToLower(entry)] {
			continue
		}
		filtered = append(filtered, entry)
	}
	if len(filtered) == 0 {
		filtered = entries[:1]
	}

	if len(filtered) > s.maxCategories {
		filtered = filtered[:s.maxCategories]
	}
	return filtered
}

// categoryEntries normalizes the two upstream category shapes (pre-tagged
// slice or comma-delimited string) into one cleaned list, source order kept.
func categoryEntries(product domain.Product) []string {
	var raw []string
	if len(product.CategoriesTags) > 0 {
		raw = product.CategoriesTags
	} else if product.Categories != "" {
		raw = strings.Split(product.Categories, ",")
	}

	entries := make([]string, 0, len(raw))
	for _, entry := range raw {
		cleaned := normalizeCategory(entry)
		if cleaned != "" {
			entries = append(entries, cleaned)
		}
	}
	return entries
}

// normalizeCategory trims whitespace and strips the language prefix tags
// carry (e.g. "en:orange-juice" -> "orange-juice").
func normalizeCategory(entry string) string {
	cleaned := strings.TrimSpace(entry)
	if idx := strings.Index(cleaned, ":"); idx >= 0 && idx <= 3 {
		cleaned = cleaned[idx+1:]
	}
	return strings.TrimSpace(cleaned)
}
