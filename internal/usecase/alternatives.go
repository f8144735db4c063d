package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nutriscan/backend/internal/domain"
)

// DefaultPageSize is the per-category catalog page size.
const DefaultPageSize = 10

// AlternativeService assembles and scores the candidate pool for a resolved
// product: concurrent category fan-out, keyword fallback, dedup, filtering.
type AlternativeService struct {
	catalog   domain.CatalogClient
	evaluator *RiskEvaluator
	selector  *CategorySelector
	pageSize  int
	logger    zerolog.Logger
}

// NewAlternativeService creates an aggregator. A non-positive pageSize falls
// back to the default.
func NewAlternativeService(
	catalog domain.CatalogClient,
	evaluator *RiskEvaluator,
	selector *CategorySelector,
	pageSize int,
	logger zerolog.Logger,
) *AlternativeService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &AlternativeService{
		catalog:   catalog,
		evaluator: evaluator,
		selector:  selector,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// FindAlternatives produces the scored candidate pool for a resolved product.
// Category searches run concurrently, one goroutine per target; each call's
// failure contributes an empty sublist, and only caller cancellation aborts
// the whole aggregation. Results are merged in category order before the
// single-threaded dedup walk, so which duplicate survives is deterministic.
func (s *AlternativeService) FindAlternatives(
	ctx context.Context,
	product domain.Product,
	referenceFailures int,
	profile domain.ActiveProfile,
) ([]domain.CandidateScore, error) {
	targets := s.selector.Select(product)

	pools := make([][]domain.Product, len(targets))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, target := range targets {
		i, target := i, target
		group.Go(func() error {
			found, err := s.catalog.SearchByCategory(groupCtx, target, s.pageSize)
			if err != nil {
				return err
			}
			pools[i] = found
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var pool []domain.Product
	for _, sublist := range pools {
		pool = append(pool, sublist...)
	}
	s.logger.Debug().
		Strs("categories", targets).
		Int("raw_candidates", len(pool)).
		Msg("category fan-out complete")

	// No categories, or every category search came back empty: fall back to
	// a keyword search on the product's name.
	if len(pool) == 0 {
		if query := keywordQuery(product.Name); query != "" {
			found, err := s.catalog.SearchByName(ctx, query, s.pageSize)
			if err != nil {
				return nil, err
			}
			pool = found
			s.logger.Debug().Str("query", query).Int("raw_candidates", len(pool)).Msg("keyword fallback")
		}
	}

	return s.scorePool(pool, product, referenceFailures, profile), nil
}

// scorePool runs the serialized dedup-filter-score walk over the merged pool.
// The resolved product's own code is pre-seeded so it never appears among its
// own alternatives.
func (s *AlternativeService) scorePool(
	pool []domain.Product,
	product domain.Product,
	referenceFailures int,
	profile domain.ActiveProfile,
) []domain.CandidateScore {
	seen := make(map[string]bool, len(pool)+1)
	if product.Code != "" {
		seen[product.Code] = true
	}
	profileEmpty := profile.Empty()

	var accepted []domain.CandidateScore
	for _, candidate := range pool {
		if candidate.Code == "" || seen[candidate.Code] {
			s.skip(candidate, "missing or duplicate code")
			continue
		}
		seen[candidate.Code] = true

		if candidate.Name == "" || candidate.ImageURL == "" {
			s.skip(candidate, "missing name or image")
			continue
		}

		nutrients := ExtractNutrients(candidate.Nutriments)
		safety, failures := s.evaluator.Evaluate(candidate, nutrients, profile)
		if !acceptCandidate(failures, referenceFailures, profileEmpty) {
			s.skip(candidate, "more failed checks than scanned product")
			continue
		}

		accepted = append(accepted, domain.CandidateScore{
			Product:          candidate,
			Nutrients:        nutrients,
			Safety:           safety,
			FailureCount:     failures,
			IsStrictlyBetter: failures < referenceFailures,
			HasCompleteData:  nutrients.CaloriesKcal != nil,
		})
	}
	return accepted
}

// acceptCandidate is the alternative acceptance policy: a candidate passes
// when it fails fewer checks than the scanned product, the same number of
// checks (equally-scored alternatives pass on purpose), or when the profile
// has no active entries at all.
func acceptCandidate(failures, reference int, profileEmpty bool) bool {
	return profileEmpty || failures <= reference
}

// keywordQuery derives a short search query from a product name: the first
// two whitespace tokens.
func keywordQuery(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	return strings.Join(tokens, " ")
}

func (s *AlternativeService) skip(candidate domain.Product, reason string) {
	s.logger.Debug().
		Str("code", candidate.Code).
		Str("name", candidate.Name).
		Str("reason", reason).
		Msg("candidate skipped")
}
