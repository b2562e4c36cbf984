// Package server exposes the session lifecycle over HTTP.
package server

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/varix/internal/correction"
	"github.com/abhisek/varix/internal/extract"
	"github.com/abhisek/varix/internal/session"
)

// SessionService is the slice of session.Service the transport needs.
type SessionService interface {
	Start(ctx context.Context, questionText string) (*session.Session, error)
	Regenerate(ctx context.Context, id string) (*session.Session, error)
	Submit(ctx context.Context, id string, answers map[int]string) (*correction.Report, error)
	Get(ctx context.Context, id string) (*session.Session, error)
}

// Server wires the HTTP routes to the session service.
type Server struct {
	svc       SessionService
	extractor extract.Extractor
	logger    *slog.Logger
}

// New creates a Server.
func New(svc SessionService, extractor extract.Extractor, logger *slog.Logger) *Server {
	return &Server{svc: svc, extractor: extractor, logger: logger}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/healthz", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/session/start", s.startSession)
		v1.GET("/session/:id", s.getSession)
		v1.POST("/session/:id/regenerate", s.regenerateSession)
		v1.POST("/session/:id/submit", s.submitAnswers)
	}
	return r
}
