package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/nutriscan/backend/internal/domain"
)

// kcalPerKilojoule is the fixed conversion used when only kilojoule energy is
// reported: 1 kcal = 4.184 kJ.
const kcalPerKilojoule = 4.184

// ExtractNutrients derives a NutrientProfile from a raw catalog nutriment
// map. Each field reads its primary key with legacy/alternate keys as
// fallback; values that do not parse as finite numbers stay absent.
// Deterministic, no side effects.
func ExtractNutrients(raw map[string]any) domain.NutrientProfile {
	profile := domain.NutrientProfile{
		CaloriesKcal:  nutrientValue(raw, "energy-kcal_100g", "energy-kcal"),
		Fat:           nutrientValue(raw, "fat_100g"),
		SaturatedFat:  nutrientValue(raw, "saturated-fat_100g", "saturated_fat_100g"),
		Carbohydrates: nutrientValue(raw, "carbohydrates_100g"),
		Sugars:        nutrientValue(raw, "sugars_100g"),
		Salt:          nutrientValue(raw, "salt_100g"),
		Proteins:      nutrientValue(raw, "proteins_100g"),
	}

	// Some entries only report energy in kilojoules.
	if profile.CaloriesKcal == nil {
		if kj := nutrientValue(raw, "energy-kj_100g", "energy-kj"); kj != nil {
			kcal := math.Round(*kj / kcalPerKilojoule)
			profile.CaloriesKcal = &kcal
		}
	}

	return profile
}

// nutrientValue reads the first key that holds a usable number. Upstream
// payloads mix float and string encodings for the same field.
func nutrientValue(raw map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if parsed, ok := coerceFloat(value); ok {
			return &parsed
		}
	}
	return nil
}

// coerceFloat converts a raw nutriment value to a finite float64.
func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
