// Package server exposes the scan service over HTTP.
//
// Endpoints:
//
//	GET  /health             liveness probe
//	POST /api/scan           scan and rank strategies for a ticker
//	GET  /api/quote/:ticker  spot price lookup
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/contactkeval/option-scan/internal/data"
	"github.com/contactkeval/option-scan/internal/scan"
	"github.com/contactkeval/option-scan/internal/strategy"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server wraps the gin engine and the scan service.
type Server struct {
	svc    *scan.Service
	router *gin.Engine
	log    zerolog.Logger
}

// New builds the HTTP layer. gin runs in release mode; request logging goes
// through the injected zerolog logger instead of gin's default writer.
func New(svc *scan.Service, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{svc: svc, router: router, log: log}

	router.GET("/health", s.health)
	api := router.Group("/api")
	{
		api.POST("/scan", s.scan)
		api.GET("/quote/:ticker", s.quote)
	}

	return s
}

// Router exposes the underlying handler for tests and custom servers.
func (s *Server) Router() http.Handler { return s.router }

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("starting HTTP server")
	return s.router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "option-scan",
		"version":   Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) scan(c *gin.Context) {
	var req scan.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	resp, err := s.svc.Scan(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, strategy.ErrInvalidScreenExpression) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		s.log.Error().Err(err).Str("ticker", req.Ticker).Msg("scan failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) quote(c *gin.Context) {
	ticker := data.NormalizeTicker(c.Param("ticker"))

	price, err := s.svc.Quote(c.Request.Context(), ticker)
	if err != nil {
		s.log.Error().Err(err).Str("ticker", ticker).Msg("quote failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"ticker":    ticker,
			"price":     price,
			"timestamp": time.Now().Format(time.RFC3339),
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
