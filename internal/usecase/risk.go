package usecase

import (
	"fmt"
	"strings"

	"github.com/nutriscan/backend/internal/domain"
)

// RiskThresholds is the single calibration table for the nutrient checks,
// all per 100g. Historical iterations of this rule set drifted between
// calorie limits of 450 and 500; the table exists so recalibration is a
// config change, not a code change.
type RiskThresholds struct {
	SaltG         float64
	SugarsG       float64
	SaturatedFatG float64
	CaloriesKcal  float64
}

// DefaultRiskThresholds returns the current policy calibration.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{
		SaltG:         1.5,
		SugarsG:       22.5,
		SaturatedFatG: 5.0,
		CaloriesKcal:  500,
	}
}

// nutrientCheck is one row of the ordered nutrient-threshold table. The check
// runs only when at least one of its conditions is active.
type nutrientCheck struct {
	label      string
	unit       string
	conditions []string
	value      func(domain.NutrientProfile) *float64
	limit      func(RiskThresholds) float64
}

var nutrientChecks = []nutrientCheck{
	{
		label:      "Salt (Hypertension)",
		unit:       "g",
		conditions: []string{"Hypertension"},
		value:      func(n domain.NutrientProfile) *float64 { return n.Salt },
		limit:      func(t RiskThresholds) float64 { return t.SaltG },
	},
	{
		label:      "Sugars (Diabetes)",
		unit:       "g",
		conditions: []string{"Diabetes"},
		value:      func(n domain.NutrientProfile) *float64 { return n.Sugars },
		limit:      func(t RiskThresholds) float64 { return t.SugarsG },
	},
	{
		label:      "Saturated Fat (Cholesterol/Heart)",
		unit:       "g",
		conditions: []string{"High Cholesterol", "Heart Disease"},
		value:      func(n domain.NutrientProfile) *float64 { return n.SaturatedFat },
		limit:      func(t RiskThresholds) float64 { return t.SaturatedFatG },
	},
	{
		label:      "Calories (Obesity)",
		unit:       "kcal",
		conditions: []string{"Obesity"},
		value:      func(n domain.NutrientProfile) *float64 { return n.CaloriesKcal },
		limit:      func(t RiskThresholds) float64 { return t.CaloriesKcal },
	},
}

// preferenceCheck flags a dietary preference when any forbidden keyword
// appears in the lower-cased ingredient text.
type preferenceCheck struct {
	preference string
	label      string
	keywords   []string
}

var preferenceChecks = []preferenceCheck{
	{
		preference: "Lactose Free",
		label:      "Ingredients (Lactose Free)",
		keywords:   []string{"lactose", "milk", "cheese", "butter"},
	},
	{
		preference: "Vegan",
		label:      "Ingredients (Vegan)",
		keywords:   []string{"meat", "chicken", "beef", "pork", "fish", "gelatin", "egg", "milk", "honey"},
	},
	{
		preference: "Gluten Free",
		label:      "Ingredients (Gluten Free)",
		keywords:   []string{"wheat", "barley", "rye", "malt"},
	},
	{
		preference: "Nut Free",
		label:      "Ingredients (Nut Free)",
		keywords:   []string{"peanut", "almond", "hazelnut", "walnut", "cashew", "pistachio"},
	},
}

// RiskEvaluator scores one product against an active health profile.
type RiskEvaluator struct {
	thresholds RiskThresholds
}

// NewRiskEvaluator creates an evaluator with the given threshold table.
// A zero-valued table falls back to the defaults.
func NewRiskEvaluator(thresholds RiskThresholds) *RiskEvaluator {
	if thresholds == (RiskThresholds{}) {
		thresholds = DefaultRiskThresholds()
	}
	return &RiskEvaluator{thresholds: thresholds}
}

// Evaluate walks the nutrient-threshold table and the preference keyword
// table for the profile's active entries, producing one SafetyCheckResult per
// evaluated check and the count of failed checks. A nutrient check with an
// absent value passes: absence cannot be evaluated as risk. With zero
// evaluated checks a single synthetic safe result is emitted.
func (e *RiskEvaluator) Evaluate(
	product domain.Product,
	nutrients domain.NutrientProfile,
	profile domain.ActiveProfile,
) ([]domain.SafetyCheckResult, int) {
	var results []domain.SafetyCheckResult
	failures := 0

	for _, check := range nutrientChecks {
		if !anyConditionActive(profile.Conditions, check.conditions) {
			continue
		}

		value := check.value(nutrients)
		limit := check.limit(e.thresholds)
		result := domain.SafetyCheckResult{Check: check.label, IsSafe: true, Value: value}

		switch {
		case value == nil:
			result.Detail = "value not reported; cannot evaluate"
		case *value > limit:
			result.IsSafe = false
			result.Detail = fmt.Sprintf("%.1f %s per 100g exceeds limit of %.1f %s", *value, check.unit, limit, check.unit)
			failures++
		default:
			result.Detail = fmt.Sprintf("%.1f %s per 100g within limit of %.1f %s", *value, check.unit, limit, check.unit)
		}

		results = append(results, result)
	}

	ingredients := strings.ToLower(product.IngredientsText)
	for _, check := range preferenceChecks {
		if !profile.Preferences[check.preference] {
			continue
		}

		result := domain.SafetyCheckResult{Check: check.label, IsSafe: true}
		if hit := firstKeyword(ingredients, check.keywords); hit != "" {
			result.IsSafe = false
			result.Detail = fmt.Sprintf("ingredients mention %q", hit)
			failures++
		} else {
			result.Detail = "no flagged ingredients"
		}

		results = append(results, result)
	}

	if len(results) == 0 {
		results = append(results, domain.SafetyCheckResult{
			Check:  "No active checks",
			IsSafe: true,
			Detail: "health profile has no active conditions or preferences",
		})
	}

	return results, failures
}

func anyConditionActive(active map[string]bool, conditions []string) bool {
	for _, condition := range conditions {
		if active[condition] {
			return true
		}
	}
	return false
}

// firstKeyword returns the first keyword found as a substring of text, or "".
// text must already be lower-cased.
func firstKeyword(text string, keywords []string) string {
	if text == "" {
		return ""
	}
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return keyword
		}
	}
	return ""
}
