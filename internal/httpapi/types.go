package httpapi

import (
	"time"

	"github.com/sartorproj/tsdiag/arma"
	"github.com/sartorproj/tsdiag/batch"
	"github.com/sartorproj/tsdiag/diagnostic"
	"github.com/sartorproj/tsdiag/internal/cache"
)

// CoefficientsRequest carries one coefficient vector, either a JSON array of
// numbers or a delimited string.
type CoefficientsRequest struct {
	Coefficients any `json:"coefficients" binding:"required"`
}

// CompareRequest carries several vectors of one family.
type CompareRequest struct {
	Models     []any    `json:"models" binding:"required"`
	ModelNames []string `json:"model_names"`
}

// ARMARequest carries both parts of an ARMA model.
type ARMARequest struct {
	ARCoefficients any `json:"ar_coefficients"`
	MACoefficients any `json:"ma_coefficients"`
}

// BatchRequest carries combined models.
type BatchRequest struct {
	Models     []batch.Model `json:"models" binding:"required"`
	ModelNames []string      `json:"model_names"`
}

// CheckResponse is the body of a check reply.
type CheckResponse struct {
	*diagnostic.Result
	Timestamp time.Time `json:"timestamp"`
}

// MarginResponse is the body of a margin reply.
type MarginResponse struct {
	Margin    *diagnostic.MarginReport `json:"margin"`
	Timestamp time.Time                `json:"timestamp"`
}

// SuggestResponse is the body of a suggest reply.
type SuggestResponse struct {
	*diagnostic.SuggestionReport
	Timestamp time.Time `json:"timestamp"`
}

// QuickResponse carries only the verdict.
type QuickResponse struct {
	Result    bool      `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// CompareResponse is the ranking of a compare request.
type CompareResponse struct {
	*batch.Comparison
	Timestamp time.Time `json:"timestamp"`
}

// ARMACheckResponse holds the classification of both ARMA parts.
type ARMACheckResponse struct {
	ARResult     *diagnostic.Result `json:"ar_result"`
	MAResult     *diagnostic.Result `json:"ma_result"`
	OverallValid bool               `json:"overall_valid"`
	Timestamp    time.Time          `json:"timestamp"`
}

// ARMAQuickResponse holds the verdicts of both ARMA parts.
type ARMAQuickResponse struct {
	ARStationary bool      `json:"ar_stationary"`
	MAInvertible bool      `json:"ma_invertible"`
	OverallValid bool      `json:"overall_valid"`
	Timestamp    time.Time `json:"timestamp"`
}

// StabilityResponse wraps a combined ARMA analysis.
type StabilityResponse struct {
	Analysis  *arma.Analysis `json:"analysis"`
	Timestamp time.Time      `json:"timestamp"`
}

// BatchResponse holds per-model results and the batch summary.
type BatchResponse struct {
	Results   []batch.ModelResult `json:"results"`
	Summary   batch.Summary       `json:"summary"`
	Timestamp time.Time           `json:"timestamp"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Services  map[string]string `json:"services"`
	Cache     *CacheStatus      `json:"cache,omitempty"`
}

// CacheStatus reports the response cache counters.
type CacheStatus struct {
	cache.Stats
	HitRate float64 `json:"hit_rate"`
}

// ClearCacheResponse reports how many cache entries were removed.
type ClearCacheResponse struct {
	Cleared   int       `json:"cleared"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}
