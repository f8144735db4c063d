package domain

// Product is a single catalog entry as returned by the remote product catalog.
// Raw fields are kept in their upstream shape; derived views (NutrientProfile,
// safety checks) are computed per request and never written back.
type Product struct {
	Code            string         `json:"code,omitempty"`
	Name            string         `json:"product_name,omitempty"`
	Brand           string         `json:"brands,omitempty"`
	ImageURL        string         `json:"image_url,omitempty"`
	Nutriments      map[string]any `json:"nutriments,omitempty"`
	IngredientsText string         `json:"ingredients_text,omitempty"`
	Categories      string         `json:"categories,omitempty"`
	CategoriesTags  []string       `json:"categories_tags,omitempty"`
}

// NutrientProfile holds the per-100g values extracted from a Product's raw
// nutriment map. A nil field means the value was not reported upstream;
// absence is never collapsed to zero.
type NutrientProfile struct {
	CaloriesKcal  *float64 `json:"calories_kcal_100g,omitempty"`
	Fat           *float64 `json:"fat_100g,omitempty"`
	SaturatedFat  *float64 `json:"saturated_fat_100g,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates_100g,omitempty"`
	Sugars        *float64 `json:"sugars_100g,omitempty"`
	Salt          *float64 `json:"salt_100g,omitempty"`
	Proteins      *float64 `json:"proteins_100g,omitempty"`
}
