// Package server exposes a viewer session over HTTP so a map client can
// drive the time control and fetch the attached layers as GeoJSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/runnerr0/timemap/internal/classify"
	"github.com/runnerr0/timemap/internal/config"
	"github.com/runnerr0/timemap/internal/render"
	"github.com/runnerr0/timemap/internal/timeline"
	"github.com/runnerr0/timemap/internal/viewer"
)

const (
	defaultTimeout  = 5 * time.Second
	shutdownTimeout = time.Second
)

// Server serves one session. Layers must be the Port the session was
// built with.
type Server struct {
	session *viewer.Session
	layers  *render.Layers
	mapCfg  config.MapConfig
}

// New returns a server for session.
func New(session *viewer.Session, layers *render.Layers, mapCfg config.MapConfig) *Server {
	return &Server{session: session, layers: layers, mapCfg: mapCfg}
}

// DomainResponse describes the control and the static map setup.
type DomainResponse struct {
	Enabled  bool                   `json:"enabled"`
	Mode     string                 `json:"mode"`
	Min      float64                `json:"min"`
	Max      float64                `json:"max"`
	Step     float64                `json:"step"`
	Initial  float64                `json:"initial"`
	Label    string                 `json:"label"`
	Times    []float64              `json:"times,omitempty"`
	Legend   []classify.VisualClass `json:"legend"`
	Center   [2]float64             `json:"center"`
	Zoom     int                    `json:"zoom"`
	Basemaps []config.BasemapConfig `json:"basemaps"`
}

// TimeResponse is the frame of a move together with the layers it left.
type TimeResponse struct {
	viewer.Frame
	Layers render.FeatureCollection `json:"layers"`
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/domain", s.domainHandler).Methods(http.MethodGet)
	api.HandleFunc("/time", s.getTimeHandler).Methods(http.MethodGet)
	api.HandleFunc("/time", s.setTimeHandler).Methods(http.MethodPost)
	api.HandleFunc("/layers", s.layersHandler).Methods(http.MethodGet)
	return r
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       defaultTimeout,
		ReadHeaderTimeout: defaultTimeout,
		WriteTimeout:      defaultTimeout,
	}

	go closeOnContext(ctx, srv)

	log.Info().Str("addr", ln.Addr().String()).Msg("serving")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func closeOnContext(ctx context.Context, srv *http.Server) {
	<-ctx.Done()

	timeout, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(timeout); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"enabled": s.session.Enabled(),
	})
}

func (s *Server) domainHandler(w http.ResponseWriter, _ *http.Request) {
	resp := DomainResponse{
		Mode:     string(s.session.Options().Mode),
		Legend:   s.session.Options().Classes.Classes(),
		Center:   s.mapCfg.Center,
		Zoom:     s.mapCfg.Zoom,
		Basemaps: s.mapCfg.Basemaps,
	}
	if ctl := s.session.Control(); ctl != nil {
		resp.Enabled = true
		resp.Min = ctl.Min()
		resp.Max = ctl.Max()
		resp.Step = ctl.Step()
		resp.Initial = ctl.Initial()
		resp.Label = timeline.Label(ctl.TimeAt(ctl.Initial()))
		if ctl.Domain().Mode == timeline.Discrete {
			resp.Times, _ = ctl.Stops()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getTimeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("value") {
		s.setTimeHandler(w, r)
		return
	}
	var resp TimeResponse
	ok := s.session.CurrentWith(func(f viewer.Frame) {
		resp = TimeResponse{Frame: f, Layers: s.layers.GeoJSON()}
	})
	if !ok {
		writeError(w, http.StatusConflict, "no time selected")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) setTimeHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("value")
	if raw == "" {
		raw = r.FormValue("value")
	}
	pos, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(pos) || math.IsInf(pos, 0) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid value %q", raw))
		return
	}

	var resp TimeResponse
	ok := s.session.MoveWith(pos, func(f viewer.Frame) {
		resp = TimeResponse{Frame: f, Layers: s.layers.GeoJSON()}
	})
	if !ok {
		writeError(w, http.StatusConflict, "time control is disabled")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) layersHandler(w http.ResponseWriter, _ *http.Request) {
	var fc render.FeatureCollection
	s.session.With(func() { fc = s.layers.GeoJSON() })
	writeJSON(w, http.StatusOK, fc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
