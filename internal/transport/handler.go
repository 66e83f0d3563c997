package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-doc-inspector/internal/config"
	apperrors "go-doc-inspector/internal/errors"
	"go-doc-inspector/internal/logger"
	"go-doc-inspector/internal/observer"
	"go-doc-inspector/internal/repository"
	"go-doc-inspector/internal/service"
	"go-doc-inspector/pkg/models"
)

// NewHandler wires the HTTP API. repo and metrics may be nil; the history
// and metrics routes then report the feature as disabled.
func NewHandler(
	imageService service.ImageAnalysisService,
	documentService service.DocumentAnalysisService,
	repo repository.AnalysisRepository,
	metrics *observer.MetricsObserver,
	cfg *config.Config,
) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzeImage(imageService, cfg))
	r.POST("/analyze/document", analyzeDocument(documentService, cfg))
	r.GET("/history", listHistory(repo))
	r.GET("/history/:id", getHistory(repo))
	r.GET("/metrics", getMetrics(metrics))

	return r
}

func analyzeImage(svc service.ImageAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing image analysis request")

		var req models.AnalyzeImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		response, err := svc.AnalyzeImage(ctx, req)
		if err != nil {
			respondError(c, determineStatusCode(err), "image analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"is_blurry":          response.Result.IsBlurry,
			"method":             response.Result.Method,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Image analysis completed")

		c.JSON(http.StatusOK, response)
	}
}

func analyzeDocument(svc service.DocumentAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.DocumentTimeout)
		defer cancel()

		var req models.AnalyzeDocumentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		response, err := svc.AnalyzeDocument(ctx, req)
		if err != nil {
			respondError(c, determineStatusCode(err), "document analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"pages":              response.Result.PagesAnalyzed,
			"quality_good":       response.Result.IsQualityGood,
			"is_scanned":         response.Result.IsScanned,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Document analysis completed")

		c.JSON(http.StatusOK, response)
	}
}

func listHistory(repo repository.AnalysisRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if repo == nil {
			respondError(c, http.StatusNotImplemented, "history persistence disabled", nil)
			return
		}

		limit := 20
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				respondError(c, http.StatusBadRequest, "limit must be a positive integer", err)
				return
			}
			limit = parsed
		}

		records, err := repo.ListRecent(c.Request.Context(), limit)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not list history", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"records": records})
	}
}

func getHistory(repo repository.AnalysisRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if repo == nil {
			respondError(c, http.StatusNotImplemented, "history persistence disabled", nil)
			return
		}

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid history id", err)
			return
		}

		record, err := repo.GetDocumentAnalysis(c.Request.Context(), id)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not load history record", err)
			return
		}
		if record == nil {
			respondError(c, http.StatusNotFound, "history record not found", nil)
			return
		}

		c.JSON(http.StatusOK, record)
	}
}

func getMetrics(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			respondError(c, http.StatusNotImplemented, "metrics collection disabled", nil)
			return
		}
		c.JSON(http.StatusOK, metrics.GetMetrics())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
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
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
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

	body := models.ErrorResponse{Error: http.StatusText(code), Message: message}
	if err != nil {
		body.Message = fmt.Sprintf("%s: %v", message, err)
	}
	c.AbortWithStatusJSON(code, body)
}
