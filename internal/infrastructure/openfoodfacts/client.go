package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/nutriscan/backend/internal/domain"
	"github.com/nutriscan/backend/internal/infrastructure/metrics"
)

// Operation labels for logs and metrics.
const (
	opFetchByCode      = "fetch_by_code"
	opSearchByName     = "search_by_name"
	opSearchByCategory = "search_by_category"
)

// searchFields is the fields allowlist sent with every search request; it
// cuts the response payload to the fields the pipeline consumes.
const searchFields = "code,product_name,brands,image_url,nutriments,ingredients_text,categories,categories_tags"

// Config holds the catalog client knobs.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the Open Food Facts API. All three operations degrade to
// an absent/empty result on transport, timeout, or decode errors; the only
// error returned to callers is context cancellation, so the aggregation
// pipeline can abort cleanly when the request is cancelled.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[[]byte]
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewClient creates a catalog client.
func NewClient(cfg Config, m *metrics.Metrics, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "NutriScan/1.0"
	}

	// Open Food Facts asks clients to stay under ~100 requests/min.
	limiter := rate.NewLimiter(rate.Limit(1.5), 8)

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "openfoodfacts",
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     cfg.BaseURL,
		userAgent:   userAgent,
		rateLimiter: limiter,
		breaker:     breaker,
		metrics:     m,
		logger:      logger,
	}
}

// productResponse is the fetch-by-code payload. Status 1 with a product
// present means found; anything else means not found.
type productResponse struct {
	Status  int             `json:"status"`
	Product *domain.Product `json:"product"`
}

// searchResponse is the search payload; a missing products array decodes to
// nil and reads as empty.
type searchResponse struct {
	Products []domain.Product `json:"products"`
}

// FetchByCode looks up a product by exact code. Returns (nil, nil) when the
// catalog does not know the code or the call failed.
func (c *Client) FetchByCode(ctx context.Context, code string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(code))

	body, err := c.get(ctx, opFetchByCode, reqURL)
	if err != nil {
		return nil, c.swallow(ctx)
	}

	var resp productResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn().Str("operation", opFetchByCode).Err(err).Msg("malformed catalog payload")
		return nil, nil
	}
	if resp.Status != 1 || resp.Product == nil {
		return nil, nil
	}
	return resp.Product, nil
}

// SearchByName runs a free-text search.
func (c *Client) SearchByName(ctx context.Context, query string, pageSize int) ([]domain.Product, error) {
	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	return c.search(ctx, opSearchByName, params, pageSize)
}

// SearchByCategory runs a category-filtered search.
func (c *Client) SearchByCategory(ctx context.Context, tag string, pageSize int) ([]domain.Product, error) {
	params := url.Values{}
	params.Set("tagtype_0", "categories")
	params.Set("tag_contains_0", "contains")
	params.Set("tag_0", tag)
	return c.search(ctx, opSearchByCategory, params, pageSize)
}

func (c *Client) search(ctx context.Context, op string, params url.Values, pageSize int) ([]domain.Product, error) {
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("fields", searchFields)

	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, op, reqURL)
	if err != nil {
		return nil, c.swallow(ctx)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn().Str("operation", op).Err(err).Msg("malformed catalog payload")
		return nil, nil
	}
	return resp.Products, nil
}

// get executes one rate-limited GET through the circuit breaker and returns
// the response body. Non-200 statuses are failures.
func (c *Client) get(ctx context.Context, op, reqURL string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		c.metrics.CatalogRequest(op, "error")
		c.logger.Warn().Str("operation", op).Err(err).Msg("catalog request failed")
		return nil, err
	}

	c.metrics.CatalogRequest(op, "ok")
	return body, nil
}

// swallow converts a failed call into the degraded no-result outcome, except
// for caller cancellation, which must propagate.
func (c *Client) swallow(ctx context.Context) error {
	return ctx.Err()
}
