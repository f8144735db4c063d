package domain

// KnownConditions lists the health conditions the risk rule set understands.
var KnownConditions = map[string]bool{
	"Hypertension":     true,
	"Diabetes":         true,
	"High Cholesterol": true,
	"Heart Disease":    true,
	"Obesity":          true,
}

// KnownPreferences lists the dietary preferences the risk rule set understands.
var KnownPreferences = map[string]bool{
	"Lactose Free": true,
	"Vegan":        true,
	"Gluten Free":  true,
	"Nut Free":     true,
}

// HealthProfile is the caller-supplied health profile. Entries mapped to false
// are treated as inactive.
type HealthProfile struct {
	Conditions  map[string]bool `json:"conditions"`
	Preferences map[string]bool `json:"preferences"`
}

// ActiveProfile is a HealthProfile reduced to its active entries. It is
// computed once per request and not mutated afterward, so the whole
// aggregation pipeline evaluates candidates against the same profile.
type ActiveProfile struct {
	Conditions  map[string]bool
	Preferences map[string]bool
}

// Active filters out entries whose value is false.
func (p HealthProfile) Active() ActiveProfile {
	active := ActiveProfile{
		Conditions:  make(map[string]bool, len(p.Conditions)),
		Preferences: make(map[string]bool, len(p.Preferences)),
	}
	for name, enabled := range p.Conditions {
		if enabled {
			active.Conditions[name] = true
		}
	}
	for name, enabled := range p.Preferences {
		if enabled {
			active.Preferences[name] = true
		}
	}
	return active
}

// Empty reports whether the profile has no active conditions or preferences.
func (p ActiveProfile) Empty() bool {
	return len(p.Conditions) == 0 && len(p.Preferences) == 0
}
