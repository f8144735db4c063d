package domain

// ScanRequest is one stateless identification request: a barcode and/or a
// free-text string produced by an external decoder, plus the health profile
// to evaluate against.
type ScanRequest struct {
	Barcode string        `json:"barcode,omitempty"`
	Text    string        `json:"text,omitempty"`
	Profile HealthProfile `json:"profile"`
}

// SafetyCheckResult is the outcome of a single risk check. Value is set for
// nutrient checks only; a nutrient check with no reported value is always
// safe (fail-open).
type SafetyCheckResult struct {
	Check  string   `json:"check"`
	IsSafe bool     `json:"is_safe"`
	Detail string   `json:"detail"`
	Value  *float64 `json:"value,omitempty"`
}

// CandidateScore wraps a candidate product with its derived data and ranking
// keys. FailureCount is recomputed independently per candidate and never
// depends on ranking order.
type CandidateScore struct {
	Product          Product
	Nutrients        NutrientProfile
	Safety           []SafetyCheckResult
	FailureCount     int
	IsStrictlyBetter bool
	HasCompleteData  bool
}

// EvaluatedProduct is the presentation shape for a product that went through
// nutrient extraction and risk evaluation.
type EvaluatedProduct struct {
	Code         string              `json:"code,omitempty"`
	Name         string              `json:"name"`
	Brand        string              `json:"brand,omitempty"`
	ImageURL     string              `json:"image_url,omitempty"`
	Nutrients    NutrientProfile     `json:"nutrients"`
	Safety       []SafetyCheckResult `json:"safety_checks"`
	FailureCount int                 `json:"failure_count"`
}

// ScanResult is the single structured output of a scan: the identified
// product with its evaluation, plus the ranked alternative list.
type ScanResult struct {
	Success      bool               `json:"success"`
	Method       string             `json:"method"`
	Product      *EvaluatedProduct  `json:"product"`
	Alternatives []EvaluatedProduct `json:"alternatives"`
}
