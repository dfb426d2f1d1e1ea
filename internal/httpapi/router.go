package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sartorproj/tsdiag/batch"
	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/internal/cache"
	"github.com/sartorproj/tsdiag/internal/logging"
	"github.com/sartorproj/tsdiag/internal/metrics"
)

// Options wires the router dependencies. Metrics and Cache may be nil.
type Options struct {
	Logger         logging.Logger
	Metrics        *metrics.Metrics
	Cache          *cache.AnalysisCache
	Batch          *batch.Options
	MaxBatchModels int
	MetricsPath    string
	Version        string
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	router := gin.New()
	router.Use(RequestID(), Recovery(logger), AccessLog(logger.Named("http")), CORS())
	if opts.Metrics != nil {
		router.Use(Metrics(opts.Metrics))
	}

	SetupRoutes(router, NewHandler(opts), opts)
	return router
}

// SetupRoutes registers the service routes on router.
func SetupRoutes(router *gin.Engine, h *Handler, opts Options) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(opts.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	for _, fam := range []coeffs.Family{coeffs.AR, coeffs.MA} {
		g := v1.Group("/" + strings.ToLower(fam.String()))
		g.POST("/check", h.Check(fam))
		g.POST("/quick", h.Quick(fam))
		g.POST("/margin", h.Margin(fam))
		g.POST("/suggest", h.Suggest(fam))
		g.POST("/compare", h.Compare(fam))
	}

	armaGroup := v1.Group("/arma")
	{
		armaGroup.POST("/check", h.ARMACheck)
		armaGroup.POST("/quick", h.ARMAQuick)
	}

	v1.POST("/stability/analyze", h.StabilityAnalyze)
	v1.POST("/batch/analyze", h.BatchAnalyze)
	v1.DELETE("/cache", h.ClearCache)
}
