package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sartorproj/tsdiag/arma"
	"github.com/sartorproj/tsdiag/batch"
	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/diagerr"
	"github.com/sartorproj/tsdiag/diagnostic"
	"github.com/sartorproj/tsdiag/internal/cache"
	"github.com/sartorproj/tsdiag/internal/logging"
	"github.com/sartorproj/tsdiag/internal/metrics"
)

const jsonContentType = "application/json; charset=utf-8"

// Handler serves the analysis endpoints.
type Handler struct {
	logger    logging.Logger
	metrics   *metrics.Metrics
	cache     *cache.AnalysisCache
	batch     *batch.Options
	maxModels int
	version   string
	started   time.Time
}

// NewHandler creates a Handler from router options.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		logger:    logger.Named("api"),
		metrics:   opts.Metrics,
		cache:     opts.Cache,
		batch:     opts.Batch,
		maxModels: opts.MaxBatchModels,
		version:   opts.Version,
		started:   time.Now(),
	}
}

// Root lists the service endpoints.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Time Series Model Diagnostics API",
		"version": h.version,
		"endpoints": gin.H{
			"ar":        "/api/v1/ar/{check,quick,margin,suggest,compare}",
			"ma":        "/api/v1/ma/{check,quick,margin,suggest,compare}",
			"arma":      "/api/v1/arma/{check,quick}",
			"stability": "/api/v1/stability/analyze",
			"batch":     "/api/v1/batch/analyze",
			"cache":     "/api/v1/cache",
			"health":    "/health",
		},
	})
}

// Health reports liveness, the cache connection state and cache counters.
func (h *Handler) Health(c *gin.Context) {
	services := map[string]string{"cache": "disabled"}
	var status *CacheStatus
	if h.cache != nil {
		stats := h.cache.Stats()
		status = &CacheStatus{Stats: stats, HitRate: stats.HitRate()}
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("cache ping failed", logging.Err(err))
			services["cache"] = "unavailable"
		} else {
			services["cache"] = "ok"
		}
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Services:  services,
		Cache:     status,
	})
}

// ClearCache drops every cached analysis response.
func (h *Handler) ClearCache(c *gin.Context) {
	n, err := h.cache.Clear(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.logger.Info("cache cleared", logging.Int("entries", n))
	c.JSON(http.StatusOK, ClearCacheResponse{Cleared: n, Timestamp: time.Now().UTC()})
}

// Check returns the full classification of one vector.
func (h *Handler) Check(fam coeffs.Family) gin.HandlerFunc {
	return h.cached("check", fam, func(v coeffs.Vector) (any, error) {
		res, err := diagnostic.ClassifyVector(v, fam)
		if err != nil {
			return nil, err
		}
		return CheckResponse{Result: res, Timestamp: time.Now().UTC()}, nil
	})
}

// Margin returns the stability margin report of one vector.
func (h *Handler) Margin(fam coeffs.Family) gin.HandlerFunc {
	return h.cached("margin", fam, func(v coeffs.Vector) (any, error) {
		res, err := diagnostic.ClassifyVector(v, fam)
		if err != nil {
			return nil, err
		}
		rep := diagnostic.Margin(res)
		h.metrics.RecordRisk(fam.String(), string(rep.Risk))
		return MarginResponse{Margin: rep, Timestamp: time.Now().UTC()}, nil
	})
}

// Suggest returns coefficient suggestions for one vector.
func (h *Handler) Suggest(fam coeffs.Family) gin.HandlerFunc {
	return h.cached("suggest", fam, func(v coeffs.Vector) (any, error) {
		res, err := diagnostic.ClassifyVector(v, fam)
		if err != nil {
			return nil, err
		}
		return SuggestResponse{SuggestionReport: diagnostic.SuggestFor(res), Timestamp: time.Now().UTC()}, nil
	})
}

// Quick returns only the verdict of one vector.
func (h *Handler) Quick(fam coeffs.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CoefficientsRequest
		if !h.bind(c, &req) {
			return
		}

		start := time.Now()
		res, err := diagnostic.Classify(req.Coefficients, fam)
		if err != nil {
			h.metrics.RecordAnalysis(fam.String(), "quick", false, err, time.Since(start))
			h.writeError(c, err)
			return
		}
		h.metrics.RecordAnalysis(fam.String(), "quick", res.Satisfied, nil, time.Since(start))
		c.JSON(http.StatusOK, QuickResponse{Result: res.Satisfied, Timestamp: time.Now().UTC()})
	}
}

// Compare classifies and ranks several vectors of one family.
func (h *Handler) Compare(fam coeffs.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CompareRequest
		if !h.bind(c, &req) {
			return
		}
		if !h.withinLimit(c, len(req.Models)) {
			return
		}

		start := time.Now()
		cmp, err := batch.Compare(req.Models, req.ModelNames, fam, h.batch)
		if err != nil {
			h.writeError(c, err)
			return
		}
		h.metrics.RecordBatch("compare", len(req.Models))
		for _, it := range cmp.Items {
			h.metrics.RecordAnalysis(fam.String(), "compare", it.Satisfied, it.Err, time.Since(start))
		}
		c.JSON(http.StatusOK, CompareResponse{Comparison: cmp, Timestamp: time.Now().UTC()})
	}
}

// ARMACheck classifies both parts of an ARMA model.
func (h *Handler) ARMACheck(c *gin.Context) {
	var req ARMARequest
	if !h.bind(c, &req) || !h.requireBoth(c, req) {
		return
	}

	start := time.Now()
	ar, err := diagnostic.Stationarity(req.ARCoefficients)
	if err != nil {
		h.metrics.RecordAnalysis(coeffs.AR.String(), "arma_check", false, err, time.Since(start))
		h.writeError(c, err)
		return
	}
	ma, err := diagnostic.Invertibility(req.MACoefficients)
	if err != nil {
		h.metrics.RecordAnalysis(coeffs.MA.String(), "arma_check", false, err, time.Since(start))
		h.writeError(c, err)
		return
	}
	h.metrics.RecordAnalysis(coeffs.AR.String(), "arma_check", ar.Satisfied, nil, time.Since(start))
	h.metrics.RecordAnalysis(coeffs.MA.String(), "arma_check", ma.Satisfied, nil, time.Since(start))

	c.JSON(http.StatusOK, ARMACheckResponse{
		ARResult:     ar,
		MAResult:     ma,
		OverallValid: ar.Satisfied && ma.Satisfied,
		Timestamp:    time.Now().UTC(),
	})
}

// ARMAQuick returns the two ARMA verdicts.
func (h *Handler) ARMAQuick(c *gin.Context) {
	var req ARMARequest
	if !h.bind(c, &req) || !h.requireBoth(c, req) {
		return
	}

	stationary, invertible, err := arma.QuickCheck(req.ARCoefficients, req.MACoefficients)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ARMAQuickResponse{
		ARStationary: stationary,
		MAInvertible: invertible,
		OverallValid: stationary && invertible,
		Timestamp:    time.Now().UTC(),
	})
}

// StabilityAnalyze runs the full analysis on whichever parts are present.
func (h *Handler) StabilityAnalyze(c *gin.Context) {
	var req ARMARequest
	if !h.bind(c, &req) {
		return
	}

	start := time.Now()
	a, err := arma.Analyze(req.ARCoefficients, req.MACoefficients)
	if err != nil {
		h.metrics.RecordError("stability", err)
		h.writeError(c, err)
		return
	}
	h.recordAnalysis(a, "stability", time.Since(start))
	c.JSON(http.StatusOK, StabilityResponse{Analysis: a, Timestamp: time.Now().UTC()})
}

// BatchAnalyze runs the full analysis on several combined models.
func (h *Handler) BatchAnalyze(c *gin.Context) {
	var req BatchRequest
	if !h.bind(c, &req) {
		return
	}
	if !h.withinLimit(c, len(req.Models)) {
		return
	}

	start := time.Now()
	rep, err := batch.Analyze(req.Models, req.ModelNames, h.batch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.metrics.RecordBatch("analyze", len(req.Models))
	for _, r := range rep.Results {
		if r.Err != nil {
			h.metrics.RecordError("batch", r.Err)
			continue
		}
		h.recordAnalysis(r.Analysis, "batch", time.Since(start))
	}

	c.JSON(http.StatusOK, BatchResponse{
		Results:   rep.Results,
		Summary:   rep.Summary,
		Timestamp: time.Now().UTC(),
	})
}

// cached wraps a single-vector operation with the response cache. Responses
// are cached as rendered JSON, so a hit replays the original timestamp.
func (h *Handler) cached(op string, fam coeffs.Family, compute func(coeffs.Vector) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CoefficientsRequest
		if !h.bind(c, &req) {
			return
		}

		start := time.Now()
		v, err := coeffs.Normalize(req.Coefficients, fam)
		if err != nil {
			h.metrics.RecordAnalysis(fam.String(), op, false, err, time.Since(start))
			h.writeError(c, err)
			return
		}

		ctx := c.Request.Context()
		key := cache.Key(op, fam, v)
		if payload, ok := h.cache.Get(ctx, key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, jsonContentType, payload)
			return
		}

		resp, err := compute(v)
		if err != nil {
			h.metrics.RecordAnalysis(fam.String(), op, false, err, time.Since(start))
			h.writeError(c, err)
			return
		}
		h.metrics.RecordAnalysis(fam.String(), op, satisfied(resp), nil, time.Since(start))

		payload, err := json.Marshal(resp)
		if err != nil {
			h.writeError(c, err)
			return
		}
		h.cache.Set(ctx, key, payload)
		c.Header("X-Cache", "MISS")
		c.Data(http.StatusOK, jsonContentType, payload)
	}
}

func satisfied(resp any) bool {
	switch r := resp.(type) {
	case CheckResponse:
		return r.Satisfied
	case MarginResponse:
		return r.Margin.ClosestRoot == nil || r.Margin.ClosestRoot.OutsideUnitCircle
	case SuggestResponse:
		return !r.ModificationNeeded
	}
	return false
}

func (h *Handler) recordAnalysis(a *arma.Analysis, op string, d time.Duration) {
	for _, p := range []*arma.Part{a.AR, a.MA} {
		if p == nil {
			continue
		}
		fam := p.Result.Family.String()
		h.metrics.RecordAnalysis(fam, op, p.Result.Satisfied, nil, d)
		h.metrics.RecordRisk(fam, string(p.Margin.Risk))
	}
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid_request",
			Detail:    err.Error(),
			RequestID: requestID(c),
		})
		return false
	}
	return true
}

func (h *Handler) requireBoth(c *gin.Context, req ARMARequest) bool {
	if req.ARCoefficients == nil || req.MACoefficients == nil {
		h.writeError(c, diagerr.InputValue("both ar_coefficients and ma_coefficients are required"))
		return false
	}
	return true
}

func (h *Handler) withinLimit(c *gin.Context, n int) bool {
	if h.maxModels > 0 && n > h.maxModels {
		h.writeError(c, diagerr.InputValue("batch of %d models exceeds the limit of %d", n, h.maxModels))
		return false
	}
	return true
}

// writeError maps err to a status code by its diagerr kind.
func (h *Handler) writeError(c *gin.Context, err error) {
	kind := diagerr.KindOf(err)
	status := http.StatusInternalServerError
	switch {
	case diagerr.IsInput(err):
		status = http.StatusBadRequest
	case diagerr.IsNumerical(err):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("analysis failed", logging.Err(err), logging.String("request_id", requestID(c)))
		h.metrics.RecordError("http", err)
	}
	c.JSON(status, ErrorResponse{
		Error:     kind.String(),
		Detail:    err.Error(),
		RequestID: requestID(c),
	})
}
