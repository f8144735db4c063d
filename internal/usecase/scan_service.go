package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nutriscan/backend/internal/domain"
)

// Identification methods recorded on the scan result.
const (
	MethodBarcode = "barcode"
	MethodText    = "text"
)

// ScanServiceConfig holds the policy knobs for the scan pipeline.
type ScanServiceConfig struct {
	Thresholds    RiskThresholds
	MaxResults    int
	PageSize      int
	MaxCategories int
}

// ScanService runs the full pipeline for one request: identify the product,
// evaluate it, then discover and rank alternatives.
type ScanService struct {
	catalog      domain.CatalogClient
	evaluator    *RiskEvaluator
	alternatives *AlternativeService
	maxResults   int
	logger       zerolog.Logger
}

// NewScanService wires the pipeline from a catalog client and configuration.
func NewScanService(catalog domain.CatalogClient, cfg ScanServiceConfig, logger zerolog.Logger) *ScanService {
	evaluator := NewRiskEvaluator(cfg.Thresholds)
	selector := NewCategorySelector(cfg.MaxCategories)

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxAlternatives
	}

	return &ScanService{
		catalog:      catalog,
		evaluator:    evaluator,
		alternatives: NewAlternativeService(catalog, evaluator, selector, cfg.PageSize, logger),
		maxResults:   maxResults,
		logger:       logger,
	}
}

// Scan resolves a product through the two-stage fallback (barcode lookup,
// then free-text search), evaluates it against the health profile, and
// returns the structured result with ranked alternatives. An unresolvable
// product yields ErrProductNotFound, never a partial result.
func (s *ScanService) Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResult, error) {
	if req == nil || (req.Barcode == "" && strings.TrimSpace(req.Text) == "") {
		return nil, domain.ErrInvalidRequest
	}

	profile := req.Profile.Active()

	product, method, err := s.identify(ctx, req)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	s.logger.Info().
		Str("method", method).
		Str("code", product.Code).
		Str("name", product.Name).
		Msg("product identified")

	nutrients := ExtractNutrients(product.Nutriments)
	safety, failures := s.evaluator.Evaluate(*product, nutrients, profile)

	candidates, err := s.alternatives.FindAlternatives(ctx, *product, failures, profile)
	if err != nil {
		return nil, err
	}
	ranked := Rank(candidates, s.maxResults)

	result := &domain.ScanResult{
		Success:      true,
		Method:       method,
		Product:      evaluatedProduct(*product, nutrients, safety, failures),
		Alternatives: make([]domain.EvaluatedProduct, 0, len(ranked)),
	}
	for _, candidate := range ranked {
		result.Alternatives = append(result.Alternatives,
			*evaluatedProduct(candidate.Product, candidate.Nutrients, candidate.Safety, candidate.FailureCount))
	}
	return result, nil
}

// identify resolves the product: exact code lookup first, then a free-text
// search taking the first hit. A nil product with nil error means neither
// strategy resolved anything.
func (s *ScanService) identify(ctx context.Context, req *domain.ScanRequest) (*domain.Product, string, error) {
	if req.Barcode != "" {
		product, err := s.catalog.FetchByCode(ctx, req.Barcode)
		if err != nil {
			return nil, "", err
		}
		if product != nil {
			return product, MethodBarcode, nil
		}
		s.logger.Debug().Str("barcode", req.Barcode).Msg("barcode lookup missed, trying text")
	}

	if text := strings.TrimSpace(req.Text); text != "" {
		found, err := s.catalog.SearchByName(ctx, text, 1)
		if err != nil {
			return nil, "", err
		}
		if len(found) > 0 {
			product := found[0]
			return &product, MethodText, nil
		}
	}

	return nil, "", nil
}

func evaluatedProduct(
	product domain.Product,
	nutrients domain.NutrientProfile,
	safety []domain.SafetyCheckResult,
	failures int,
) *domain.EvaluatedProduct {
	return &domain.EvaluatedProduct{
		Code:         product.Code,
		Name:         product.Name,
		Brand:        product.Brand,
		ImageURL:     product.ImageURL,
		Nutrients:    nutrients,
		Safety:       safety,
		FailureCount: failures,
	}
}
