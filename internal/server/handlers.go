package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getState(s *Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		st := s.sess.Hier.Snapshot()
		s.mu.Unlock()
		return c.JSON(http.StatusOK, dataResponse{Data: st})
	}
}

func getBoard(s *Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("boardId")
		s.mu.Lock()
		b, _, ok := model.FindBoard(s.sess.Hier.Current(), id)
		if ok {
			b = b.Clone()
		}
		s.mu.Unlock()
		if !ok {
			return c.JSON(http.StatusNotFound, errorResponse{Error: mutate.NotFoundError{Kind: "board", ID: id}.Error()})
		}
		return c.JSON(http.StatusOK, dataResponse{Data: b})
	}
}

func postAction(s *Server) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		metrics := newActionRequestMetrics(s.log, "/api/actions")
		defer func() { metrics.Log(c.Response().Status, err) }()

		decodeStart := time.Now()
		raw, err := io.ReadAll(c.Request().Body)
		if err != nil {
			metrics.SetErrorStage("read_body")
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "read body: " + err.Error()})
		}
		a, err := mutate.DecodeAction(raw)
		metrics.ObserveDecode(time.Since(decodeStart))
		if err != nil {
			metrics.SetErrorStage("decode")
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		metrics.SetActions(1)

		st, err := s.dispatch(c, metrics, a)
		if err != nil {
			return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, dataResponse{Data: st})
	}
}

type batchErrorResponse struct {
	Error   string      `json:"error"`
	Index   int         `json:"index"`
	Applied int         `json:"applied"`
	Data    model.State `json:"data"`
}

// postActionBatch applies a JSON array of action envelopes in order. The first failure stops the
// batch; actions before it stay applied and the response reports how many were.
func postActionBatch(s *Server) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		metrics := newActionRequestMetrics(s.log, "/api/actions/batch")
		defer func() { metrics.Log(c.Response().Status, err) }()

		decodeStart := time.Now()
		var raws []json.RawMessage
		dec := sonic.ConfigStd.NewDecoder(c.Request().Body)
		if err := dec.Decode(&raws); err != nil {
			metrics.SetErrorStage("decode")
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body: expected an array of actions"})
		}
		actions := make([]mutate.Action, 0, len(raws))
		for i, raw := range raws {
			a, err := mutate.DecodeAction(raw)
			if err != nil {
				metrics.SetErrorStage("decode")
				return c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("action %d: %s", i, err.Error())})
			}
			actions = append(actions, a)
		}
		metrics.ObserveDecode(time.Since(decodeStart))
		metrics.SetActions(len(actions))

		st := s.snapshot()
		for i, a := range actions {
			next, err := s.dispatch(c, metrics, a)
			if err != nil {
				return c.JSON(statusFor(err), batchErrorResponse{Error: err.Error(), Index: i, Applied: i, Data: st})
			}
			st = next
		}
		return c.JSON(http.StatusOK, dataResponse{Data: st})
	}
}

func (s *Server) snapshot() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Hier.Snapshot()
}

// dispatch applies one action under the server lock and records it in metrics.
func (s *Server) dispatch(c echo.Context, metrics *actionRequestMetrics, a mutate.Action) (model.State, error) {
	start := time.Now()
	s.mu.Lock()
	st, applied, err := s.sess.Dispatch(c.Request().Context(), a)
	s.mu.Unlock()
	metrics.ObserveDispatch(time.Since(start))

	if err != nil {
		status := statusFor(err)
		metrics.SetErrorStage("dispatch")
		s.log.WithFields(log.Fields{"type": a.Type(), "status": status}).Warn(err.Error())
		return model.State{}, err
	}
	metrics.AddApplied()
	s.log.WithField("type", applied.Type()).Debug("action applied")
	return st, nil
}

func getActivity(s *Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 0
		if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			}
			limit = n
		}
		acts, err := s.sess.Backend.ListActivity(c.Request().Context(), session.ActivityLimit(limit))
		if err != nil {
			s.log.WithError(err).Error("list activity")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "list activity failed"})
		}
		return c.JSON(http.StatusOK, dataResponse{Data: acts})
	}
}

// statusFor maps core errors onto HTTP statuses; anything else is a storage failure.
func statusFor(err error) int {
	switch {
	case mutate.IsNotFound(err):
		return http.StatusNotFound
	case mutate.IsInvalidIndex(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
