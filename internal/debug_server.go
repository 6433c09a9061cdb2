package internal

import (
	"buzzboard/domain"
	"buzzboard/observability"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

type SnapshotProvider func() domain.BoardSnapshot
type StatsProvider func() observability.Stats

type inspectPage struct {
	Snapshot domain.BoardSnapshot `json:"snapshot"`
	Stats    observability.Stats  `json:"stats"`
}

// InspectHandler serves the current board snapshot and counters as
// JSON, for diagnosing a live process without touching the charts.
func InspectHandler(snapshots SnapshotProvider, stats StatsProvider) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		page := inspectPage{Snapshot: snapshots()}
		if stats != nil {
			page.Stats = stats()
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

// StartDebugServer runs the inspector in the background. The returned
// server is shut down by the caller on exit.
func StartDebugServer(log *slog.Logger, port int, snapshots SnapshotProvider, stats StatsProvider) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: InspectHandler(snapshots, stats),
	}
	go func() {
		log.Info("Inspector listening", "addr", fmt.Sprintf("http://localhost:%d/inspect", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("Inspector stopped", "error", err)
		}
	}()
	return server
}
