package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"rae-verb-notes/internal/config"
	"rae-verb-notes/internal/crawler"
	"rae-verb-notes/internal/metrics"
	"rae-verb-notes/internal/models"
	"rae-verb-notes/internal/notes"
	"rae-verb-notes/pkg/logger"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"verbnotes.yaml"`
	Addr    string `short:"a" help:"Listen address" default:":8080"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
}

func main() {
	kong.Parse(&CLI, kong.Name("verbnotes-server"), kong.Description("Preview verb notes over HTTP."))
	l := logger.NewWithWriter(os.Stderr, CLI.Verbose)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		l.Errorf("load configuration: %v", err)
		os.Exit(1)
	}

	rec := metrics.NewPrometheusRecorder(nil)
	client := crawler.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.DialTimeout, cfg.HTTP.SizeCap).WithUserAgent(cfg.HTTP.UserAgent)
	p := notes.NewPipeline(client, cfg, rec, l)

	srv := &http.Server{
		Addr:         CLI.Addr,
		Handler:      logRequest(l, newMux(p, rec)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Infof("server listening on %s", CLI.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}

func newMux(p *notes.Pipeline, rec *metrics.PrometheusRecorder) *http.ServeMux {
	mux := http.NewServeMux()

	// one lookup at a time, like the batch runner
	sem := make(chan struct{}, 1)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// GET /notes/{verb} -> rendered note, nothing is written to disk
	mux.HandleFunc("GET /notes/{verb}", func(w http.ResponseWriter, r *http.Request) {
		verb := r.PathValue("verb")
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
		case <-r.Context().Done():
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
		defer cancel()

		note, res := p.Lookup(ctx, verb)
		rec.ObserveLookup(res)
		switch res.Failure {
		case models.FailureNone:
		case models.FailureEntryNotFound:
			writeJSON(w, http.StatusNotFound, res)
			return
		case models.FailureNetwork, models.FailureBadResponse:
			writeJSON(w, http.StatusBadGateway, res)
			return
		default:
			writeJSON(w, http.StatusBadRequest, res)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(note.Render()))
	})

	mux.Handle("GET /metrics", rec.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		l.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
