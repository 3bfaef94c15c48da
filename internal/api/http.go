package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"acc-orientation/internal/engine"
	"acc-orientation/internal/geometry/vector"
	"acc-orientation/internal/orientation"
)

type Server struct {
	eng    *engine.Engine
	router *chi.Mux
}

func NewServer(eng *engine.Engine) *Server {
	s := &Server{eng: eng, router: chi.NewRouter()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.Get("/health", s.health)
	s.router.Get("/state", s.state)
	s.router.Get("/orientation", s.orientationState)

	s.router.Post("/command/calibrate", s.calibrateCmd)
	s.router.Post("/command/measure", s.measureCmd)

	s.router.Post("/command/pause", s.pauseCmd)
	s.router.Post("/command/resume", s.resumeCmd)

	s.router.Get("/stream", s.streamSSE)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, st)
}

func (s *Server) orientationState(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	if !st.Calibrated {
		http.Error(w, "not calibrated", http.StatusConflict)
		return
	}
	writeJSON(w, st.Orientation)
}

func (s *Server) calibrateCmd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Up      vector.Vec3 `json:"up"`
		UpFront vector.Vec3 `json:"upFront"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	// Reject degenerate references at the edge so the caller learns why;
	// the engine revalidates when it applies the command.
	if _, err := orientation.Find(body.Up, body.UpFront); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.eng.Submit(engine.CalibrateCommand{
		At:      time.Now(),
		Up:      body.Up,
		UpFront: body.UpFront,
	})

	writeJSON(w, map[string]any{"status": "accepted", "type": "calibrate"})
}

func (s *Server) measureCmd(w http.ResponseWriter, r *http.Request) {
	var body vector.Vec3
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	s.eng.Submit(engine.MeasureCommand{
		At:     time.Now(),
		Sample: body,
	})

	writeJSON(w, map[string]any{"status": "accepted", "type": "measure"})
}

func (s *Server) pauseCmd(w http.ResponseWriter, r *http.Request) {
	s.eng.Submit(engine.PauseCommand{At: time.Now()})
	writeJSON(w, map[string]any{"status": "accepted", "type": "pause"})
}

func (s *Server) resumeCmd(w http.ResponseWriter, r *http.Request) {
	s.eng.Submit(engine.ResumeCommand{At: time.Now()})
	writeJSON(w, map[string]any{"status": "accepted", "type": "resume"})
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			b, _ := json.Marshal(st)
			fmt.Fprintf(w, "event: state\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
