// Package server is the HTTP transport over the scoring pipeline. It owns
// payload validation, the error-payload contract, the optional result cache
// and history store, and the metrics endpoint. The pipeline underneath is
// transport-agnostic.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/history"
	"credit-scoring-service/internal/pipeline"
	"credit-scoring-service/internal/scorecache"
)

type Server struct {
	pipeline       *pipeline.Pipeline
	cache          *scorecache.Cache // nil when disabled
	history        *history.Store    // nil when disabled
	scoringTimeout time.Duration
	logger         logger.Logger
}

type Options struct {
	Cache          *scorecache.Cache
	History        *history.Store
	ScoringTimeout time.Duration
}

func New(pl *pipeline.Pipeline, opts Options, log logger.Logger) *Server {
	timeout := opts.ScoringTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Server{
		pipeline:       pl,
		cache:          opts.Cache,
		history:        opts.History,
		scoringTimeout: timeout,
		logger:         log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/score", s.handleScore)
		if s.history != nil {
			v1.GET("/history", s.handleHistory)
		}
	}

	return r
}
