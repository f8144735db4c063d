package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nutriscan/backend/internal/domain"
	"github.com/nutriscan/backend/internal/infrastructure/metrics"
)

// ScanService is the usecase the handler delegates to.
type ScanService interface {
	Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scans   ScanService
	metrics *metrics.Metrics
	strict  bool
	logger  zerolog.Logger
}

// NewHandler creates a new HTTP handler. strict controls profile boundary
// validation: unknown condition/preference keys are rejected when true
// (development) and silently dropped when false (production).
func NewHandler(scans ScanService, m *metrics.Metrics, strict bool, logger zerolog.Logger) *Handler {
	return &Handler{scans: scans, metrics: m, strict: strict, logger: logger}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutriscan-backend",
		"version": "1.0.0",
	})
}

// Scan handles product scan requests: identification, risk evaluation, and
// alternative recommendation in one response. The response is always a
// well-formed JSON document; failures carry success=false and an error
// message, never a raw fault.
func (h *Handler) Scan(c *gin.Context) {
	var req domain.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if req.Barcode == "" && strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "barcode or text is required"})
		return
	}

	if err := validateProfile(&req.Profile, h.strict); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.scans.Scan(c.Request.Context(), &req)
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		h.metrics.Scan(requestMethod(&req), "invalid")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		h.metrics.Scan(requestMethod(&req), "not_found")
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "product not found"})
	case err != nil:
		h.metrics.Scan(requestMethod(&req), "error")
		h.logger.Error().Err(err).Msg("scan failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	default:
		h.metrics.Scan(result.Method, "ok")
		c.JSON(http.StatusOK, result)
	}
}

// validateProfile checks profile keys against the known condition and
// preference names. Unknown keys are an error in strict mode and dropped
// otherwise.
func validateProfile(profile *domain.HealthProfile, strict bool) error {
	for name := range profile.Conditions {
		if !domain.KnownConditions[name] {
			if strict {
				return fmt.Errorf("%w: condition %q", domain.ErrUnknownProfileKey, name)
			}
			delete(profile.Conditions, name)
		}
	}
	for name := range profile.Preferences {
		if !domain.KnownPreferences[name] {
			if strict {
				return fmt.Errorf("%w: preference %q", domain.ErrUnknownProfileKey, name)
			}
			delete(profile.Preferences, name)
		}
	}
	return nil
}

// requestMethod labels failed scans by the strategy that would have been
// tried first.
func requestMethod(req *domain.ScanRequest) string {
	if req.Barcode != "" {
		return "barcode"
	}
	return "text"
}
