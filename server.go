package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/quotes_backend/config"
	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/pdfs"
	"bitbucket.org/mmdatafocus/quotes_backend/tpl"
	"bitbucket.org/mmdatafocus/quotes_backend/utils"
)

// app wires the handlers to their capabilities: the injectable record store
// and the export pipeline. Tests substitute fakes for both.
type app struct {
	store   models.QuoteStore
	exports *exportService
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, ginErr := range c.Errors {
			cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			logger.WithFields(logrus.Fields{
				"module":        "server",
				"path":          c.Request.URL.Path,
				"correlationId": cid,
			}).Error(ginErr.Error())
		}
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func newRouter(a *app, logger *logrus.Logger) *gin.Engine {
	r := gin.New()

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})

	corsConfig := cors.DefaultConfig()
	// In production, require an explicit allowlist; allow all otherwise.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	r.Use(cors.New(corsConfig))

	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.POST("/quotes/export", a.exportQuoteHandler())
	r.GET("/exports/:id", a.downloadExportHandler())
	r.POST("/quotes/excel", a.exportExcelHandler())
	r.POST("/quotes/stamp", a.uploadStampHandler())

	r.GET("/records", a.listRecordsHandler())
	r.POST("/records", a.saveRecordHandler())
	r.GET("/records/:id", a.getRecordHandler())
	r.DELETE("/records/:id", a.deleteRecordHandler())
	r.DELETE("/records", a.deleteAllRecordsHandler())

	r.NoRoute(customNotFoundHandler)
	return r
}

func main() {
	logger := config.GetLogger()

	// Graceful drain on SIGTERM/interrupt.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	a := &app{
		store:   models.NewDefaultQuoteStore(),
		exports: newExportService(pdfs.NewExporter(tpl.NewRenderer())),
	}

	srv := &http.Server{
		Addr:    ":" + config.GetPort(),
		Handler: newRouter(a, logger),
	}

	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"module": "server"}).Fatal(err.Error())
		}
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			config.LogError(logger, "server", "main", "graceful shutdown", nil, err)
		}
	}
}
