package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"go-preplan/internal/controller"
	"go-preplan/pkg/logger"
	"go-preplan/pkg/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type submitted struct {
	ID string `json:"id"`
}

type executionStatus struct {
	Status models.ExecutionStatus  `json:"status"`
	Error  string                  `json:"error,omitempty"`
	Result *models.ExecutionResult `json:"result,omitempty"`
}

type planSummary struct {
	PlanID      string `json:"plan_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       int    `json:"steps"`
}

type Server struct {
	ctrl            *controller.Controller
	server          *http.Server
	state           *requestsCache
	timeout         time.Duration
	defaultStrategy string
}

func New(ctrl *controller.Controller, addr string, timeout time.Duration, defaultStrategy string) *Server {
	s := &Server{
		ctrl:            ctrl,
		state:           newRequestsCache(),
		timeout:         timeout,
		defaultStrategy: defaultStrategy,
	}

	r := chi.NewRouter()
	r.Use(logMiddleware())

	r.Post("/executions", s.submitExecution)
	r.Get("/executions/{id}", s.getExecution)
	r.Get("/plans", s.listPlans)
	r.Get("/plans/{id}/complexity", s.classifyPlan)

	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

func (s *Server) submitExecution(w http.ResponseWriter, r *http.Request) {
	log.Debug().Msg("new execution request")
	req := controller.Request{}
	if err := unmarshalRequestBody(r, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		log.Debug().Msg("cannot parse body")
		render.JSON(w, r, errorResponse{Error: "unable to parse body"})
		return
	}
	if req.Scenario == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "scenario is required"})
		return
	}
	if req.Strategy == "" {
		req.Strategy = s.defaultStrategy
	}

	id := uuid.New()
	s.state.add(id)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		result, err := s.ctrl.Process(ctx, req)
		if err != nil && result == nil {
			log.Error().Err(err).Str(logger.RequestIDField, id.String()).Msg("execution request failed")
			s.state.fail(id, err.Error())
			return
		}
		s.state.complete(id, result)
	}()

	log.Debug().Str(logger.RequestIDField, id.String()).Msg("execution has been started")
	render.JSON(w, r, submitted{ID: id.String()})
}

func (s *Server) getExecution(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		log.Debug().Msg("cannot parse id")
		render.JSON(w, r, errorResponse{Error: "unable to parse id"})
		return
	}

	e, found := s.state.get(id)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		log.Debug().Str(logger.RequestIDField, idParam).Msg("cannot find id")
		return
	}

	render.JSON(w, r, executionStatus{
		Status: e.status,
		Error:  e.err,
		Result: e.result,
	})
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	all := s.ctrl.Plans()
	out := make([]planSummary, 0, len(all))
	for _, p := range all {
		out = append(out, planSummary{
			PlanID:      p.PlanID,
			Title:       p.Title,
			Description: p.Description,
			Steps:       len(p.Steps),
		})
	}
	render.JSON(w, r, out)
}

func (s *Server) classifyPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")
	analysis, err := s.ctrl.Classify(planID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: err.Error()})
		return
	}
	render.JSON(w, r, analysis)
}

func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	log.Info().Msg("http server started")
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

func logMiddleware() func(http.Handler) http.Handler {
	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.UserAgentHandler("agent"))
	c = c.Append(hlog.RefererHandler("referer"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Int("size", size).
			Int("status", status).
			Int64("duration", duration.Milliseconds()).
			Msg("REQ")
	}))

	return c.Then
}

func unmarshalRequestBody(req *http.Request, output interface{}) error {
	if req.Body == nil {
		return errors.New("invalid body in request")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err = req.Body.Close(); err != nil {
		return err
	}
	if err = json.Unmarshal(body, &output); err != nil {
		return err
	}

	return nil
}
