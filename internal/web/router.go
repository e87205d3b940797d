// Package web serves the browser front end and its JSON session API.
package web

import (
	"embed"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amishk599/resumeiq/internal/config"
	"github.com/amishk599/resumeiq/internal/session"
)

//go:embed static
var staticFiles embed.FS

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(ctrl *session.Controller, cfg config.ServerConfig, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := gin.New()
	r.Use(requestID(), accessLog(logger), recovery(logger))
	if mw := corsMiddleware(cfg.CORSOrigins); mw != nil {
		r.Use(mw)
	}

	NewHandler(ctrl, logger).RegisterRoutes(r.Group("/api"))

	page, err := fs.ReadFile(staticFiles, "static/index.html")
	if err != nil {
		panic("web: embedded index.html missing: " + err.Error())
	}
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	return r
}
