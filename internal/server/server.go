// Package server exposes a workspace over a small JSON API plus read-only HTML board pages.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"kanban-cli/internal/session"
)

const shutdownTimeout = 5 * time.Second

// Server serializes every dispatch on mu; the hierarchy owner has a single writer.
type Server struct {
	mu   sync.Mutex
	sess *session.Session
	log  *log.Logger
	e    *echo.Echo
}

func New(sess *session.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(GzipRequestMiddleware())
	e.Use(middleware.BodyLimit("1M"))

	s := &Server{sess: sess, log: logger, e: e}
	Register(e, s)
	return s
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, s *Server) {
	e.GET("/healthz", healthz())
	e.GET("/api/state", getState(s))
	e.GET("/api/boards/:boardId", getBoard(s))
	e.POST("/api/actions", postAction(s))
	e.POST("/api/actions/batch", postActionBatch(s))
	e.GET("/api/activity", getActivity(s))

	e.GET("/boards/:boardId", redirectBoardIndex())
	e.GET("/boards/:boardId/index.md", getBoardPage(s))
	e.GET("/boards/:boardId/tasks/:file", getTaskPage(s))
}

func (s *Server) Handler() http.Handler { return s.e }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down kanban API")
		return s.e.Shutdown(sctx)
	}
}
