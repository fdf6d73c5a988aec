package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-photo-feedback/internal/config"
	"go-photo-feedback/internal/critique"
	apperrors "go-photo-feedback/internal/errors"
	"go-photo-feedback/internal/logger"
	"go-photo-feedback/internal/observer"
	"go-photo-feedback/internal/service"
	"go-photo-feedback/pkg/models"
)

// Handler carries the dependencies the HTTP layer needs.
type Handler struct {
	service service.PhotoFeedbackService
	critic  critique.PromptCritic
	metrics *observer.MetricsObserver
	cfg     *config.Config
}

// NewHandler builds the gin router. critic may be nil, in which case the
// critique endpoint reports that the feature is disabled.
func NewHandler(
	svc service.PhotoFeedbackService,
	critic critique.PromptCritic,
	metrics *observer.MetricsObserver,
	cfg *config.Config,
) http.Handler {
	h := &Handler{service: svc, critic: critic, metrics: metrics, cfg: cfg}

	r := gin.Default()
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", h.healthCheck)
	r.GET("/metrics", h.getMetrics)

	v1 := r.Group("/v1")
	{
		v1.POST("/analyze", h.analyzePhoto)
		v1.POST("/analyze/batch", h.analyzeBatch)
		v1.POST("/analyze/sharpness", h.scoreOne(h.sharpness))
		v1.POST("/analyze/exposure", h.scoreOne(h.exposure))
		v1.POST("/analyze/expression", h.scoreOne(h.expression))
		v1.GET("/analyses/:id", h.getAnalysis)
		v1.GET("/analyses", h.listAnalyses)
		v1.POST("/critique", h.critiquePrompt)
	}

	return r
}

func (h *Handler) analyzePhoto(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
	defer cancel()

	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	logger.WithFields(logrus.Fields{
		"url": req.URL,
		"ip":  c.ClientIP(),
	}).Info("Processing photo analysis request")

	resp, err := h.service.AnalyzePhoto(ctx, req.URL)
	if err != nil {
		respondError(c, statusCode(ctx, err), "photo analysis failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) analyzeBatch(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
	defer cancel()

	var req models.BatchAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	logger.WithFields(logrus.Fields{
		"photos": len(req.URLs),
		"ip":     c.ClientIP(),
	}).Info("Processing batch analysis request")

	resp, err := h.service.AnalyzeBatch(ctx, req.URLs)
	if err != nil {
		respondError(c, statusCode(ctx, err), "batch analysis failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// scoreOne adapts a single-scorer service call into a handler. The three
// single-score endpoints only differ in which scorer they invoke.
func (h *Handler) scoreOne(score func(ctx context.Context, url string) (interface{}, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
		defer cancel()

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		result, err := score(ctx, req.URL)
		if err != nil {
			respondError(c, statusCode(ctx, err), "scoring failed", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func (h *Handler) sharpness(ctx context.Context, url string) (interface{}, error) {
	return h.service.ScoreSharpness(ctx, url)
}

func (h *Handler) exposure(ctx context.Context, url string) (interface{}, error) {
	return h.service.ScoreExposure(ctx, url)
}

func (h *Handler) expression(ctx context.Context, url string) (interface{}, error) {
	return h.service.ScoreExpression(ctx, url)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	resp, err := h.service.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "failed to load analysis", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	photoURL := c.Query("photo_url")
	if photoURL == "" {
		respondError(c, http.StatusBadRequest, "missing query parameter",
			apperrors.NewValidationError("photo_url query parameter is required", nil))
		return
	}

	resp, err := h.service.ListAnalyses(c.Request.Context(), photoURL)
	if err != nil {
		respondError(c, apperrors.GetStatusCode(err), "failed to list analyses", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) critiquePrompt(c *gin.Context) {
	if h.critic == nil {
		respondError(c, http.StatusNotImplemented, "prompt critique is not configured",
			errors.New("no critique backend configured"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
	defer cancel()

	var req models.CritiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format", err)
		return
	}

	text, err := h.critic.Critique(ctx, req.Prompt, req.Answer)
	if err != nil {
		respondError(c, statusCode(ctx, err), "critique failed", err)
		return
	}

	c.JSON(http.StatusOK, models.CritiqueResponse{Critique: text})
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) getMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetMetrics())
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, apperrors.GetStatusCode(err), "request processing failed", err)
		}
	}
}

// statusCode maps an error to an HTTP status, preferring context timeouts
// over the generic 500 fallback.
func statusCode(ctx context.Context, err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
