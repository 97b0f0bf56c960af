// Package server exposes the local UI surface over HTTP: session status,
// the toast queue, the notification panel and a websocket stream of
// profile snapshots.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exchangeclient/src/engine"
	"exchangeclient/src/model"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"
)

func Router(e *engine.Engine) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("/healthcheck error")
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		profile, ok := e.Bus().Current()
		if !ok {
			writeJSON(w, http.StatusOK, map[string]interface{}{"signed_in": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"signed_in": true,
			"profile":   profile,
		})
	})

	r.Get("/toasts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, e.Toasts())
	})

	r.Delete("/toasts/{key}", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if !e.DismissToast(key) {
			http.Error(w, "toast not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/notifications", func(w http.ResponseWriter, r *http.Request) {
		feed, err := e.Panel().Feed(r.Context())
		if err != nil {
			logger.WithError(err).Error("notification feed fetch failed")
			http.Error(w, "feed unavailable", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, feed)
	})

	r.Patch("/notifications/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := e.Panel().MarkRead(r.Context(), id); err != nil {
			logger.WithError(err).WithField("id", id).Error("mark read failed")
			http.Error(w, "mark read failed", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Patch("/notifications/mark-all-read", func(w http.ResponseWriter, r *http.Request) {
		if err := e.Panel().MarkAllRead(r.Context()); err != nil {
			logger.WithError(err).Error("mark all read failed")
			http.Error(w, "mark all read failed", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/orders", func(w http.ResponseWriter, r *http.Request) {
		var order model.Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			http.Error(w, "invalid order payload", http.StatusBadRequest)
			return
		}
		result := e.SubmitOrder(r.Context(), order)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"state":                     result.State,
			"confirmation":              result.Confirmation,
			"failure":                   result.Failure,
			"redirect_to_address_entry": result.RedirectToAddressEntry,
		})
	})

	r.Get("/stream", streamHandler(e))

	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("response encoding failed")
	}
}

// listenAddr resolves the listen address, falling back to the package
// config when the caller passes no port.
func listenAddr(port string) string {
	if port == "" {
		port = GetConfig().Port
		logger.WithField("port", port).Warn("no port provided, using configured default")
	}
	return ":" + port
}

// StartServer runs the UI surface until SIGINT or SIGTERM, then shuts
// down gracefully. An empty port falls back to the PORT env var.
func StartServer(e *engine.Engine, port string) {
	addr := listenAddr(port)
	srv := &http.Server{
		Addr:    addr,
		Handler: Router(e),
	}

	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
