// Package server exposes the composer and scorer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roberthamel/optiprompt/internal/catalog"
	"github.com/roberthamel/optiprompt/internal/generate"
	"github.com/roberthamel/optiprompt/internal/metrics"
	"github.com/roberthamel/optiprompt/internal/prompt"
	"github.com/roberthamel/optiprompt/internal/quality"
	"github.com/roberthamel/optiprompt/internal/tokens"
)

// Server serves the prompt API over a template registry.
type Server struct {
	registry *catalog.Registry
	logger   *log.Logger
	engine   *gin.Engine
}

// New builds a server. A nil logger uses the package default.
func New(registry *catalog.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{registry: registry, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/templates", s.listTemplates)
	v1.GET("/templates/:id", s.getTemplate)
	v1.GET("/techniques", s.listTechniques)
	v1.POST("/compose", s.compose)
	v1.POST("/evaluate", s.evaluate)
	v1.POST("/generate", s.generate)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// Request is the body of the compose, evaluate and generate endpoints.
// TemplateID falls back to form.templateId and then the default template;
// nil options mean the defaults.
type Request struct {
	Form       prompt.FormData `json:"form"`
	TemplateID string          `json:"templateId"`
	Options    *prompt.Options `json:"options"`
}

// ComposeResponse is returned by /v1/compose.
type ComposeResponse struct {
	Prompt string `json:"prompt"`
	Tokens int    `json:"tokens"`
}

// GenerateResponse is returned by /v1/generate.
type GenerateResponse struct {
	Prompt        string                 `json:"prompt"`
	Tokens        int                    `json:"tokens"`
	Metrics       prompt.QualityMetrics  `json:"metrics"`
	Optimizations []quality.Optimization `json:"optimizations"`
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"error": message,
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listTemplates(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		templates := s.registry.ByCategory(prompt.Category(category))
		if templates == nil {
			templates = []prompt.Template{}
		}
		c.JSON(http.StatusOK, templates)
		return
	}
	c.JSON(http.StatusOK, s.registry.All())
}

func (s *Server) getTemplate(c *gin.Context) {
	tmpl, err := s.registry.ByID(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (s *Server) listTechniques(c *gin.Context) {
	c.JSON(http.StatusOK, prompt.Techniques)
}

// bind decodes and resolves a request, writing the error response itself.
func (s *Server) bind(c *gin.Context) (*prompt.FormData, *prompt.Template, prompt.Options, bool) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, nil, prompt.Options{}, false
	}

	opts := prompt.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}
	if opts.Technique == "" {
		opts.Technique = prompt.ZeroShot
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = prompt.FormatText
	}
	if !opts.Technique.Valid() {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("unknown technique: %s", opts.Technique))
		return nil, nil, opts, false
	}
	if !opts.OutputFormat.Valid() {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("unknown output format: %s", opts.OutputFormat))
		return nil, nil, opts, false
	}

	id := req.TemplateID
	if id == "" {
		id = req.Form.TemplateID
	}
	if id == "" {
		id = catalog.DefaultTemplateID
	}
	tmpl, err := s.registry.ByID(id)
	if err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return nil, nil, opts, false
	}
	req.Form.TemplateID = id
	return &req.Form, &tmpl, opts, true
}

func (s *Server) composePrompt(fd *prompt.FormData, tmpl *prompt.Template, opts prompt.Options) (string, int) {
	start := time.Now()
	p := generate.Compose(fd, tmpl, opts)
	elapsed := time.Since(start)
	metrics.RecordCompose(string(opts.Technique), elapsed)
	n := tokens.Estimate(p)
	s.logger.Debug("composed", "template", tmpl.ID, "technique", opts.Technique, "tokens", n, "duration", elapsed)
	return p, n
}

func (s *Server) score(fd *prompt.FormData, tmpl *prompt.Template, opts prompt.Options) prompt.QualityMetrics {
	m := quality.Evaluate(fd, tmpl, opts)
	metrics.RecordQuality(string(m.Level), m.Total)
	s.logger.Debug("evaluated", "template", tmpl.ID, "total", m.Total, "level", m.Level)
	return m
}

func (s *Server) compose(c *gin.Context) {
	fd, tmpl, opts, ok := s.bind(c)
	if !ok {
		return
	}
	p, n := s.composePrompt(fd, tmpl, opts)
	c.JSON(http.StatusOK, ComposeResponse{Prompt: p, Tokens: n})
}

func (s *Server) evaluate(c *gin.Context) {
	fd, tmpl, opts, ok := s.bind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.score(fd, tmpl, opts))
}

func (s *Server) generate(c *gin.Context) {
	fd, tmpl, opts, ok := s.bind(c)
	if !ok {
		return
	}
	p, n := s.composePrompt(fd, tmpl, opts)
	c.JSON(http.StatusOK, GenerateResponse{
		Prompt:        p,
		Tokens:        n,
		Metrics:       s.score(fd, tmpl, opts),
		Optimizations: quality.Optimize(fd, opts),
	})
}
