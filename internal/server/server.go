package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/dagcheck/internal/ctxlog"
	"github.com/specialistvlad/dagcheck/internal/pipeline"
)

// Options configures the handler returned by NewHandler.
type Options struct {
	// AllowedOrigins lists the origins trusted for cross-origin requests.
	// "*" trusts every origin.
	AllowedOrigins []string
	// MaxBodyBytes caps the size of a pipeline payload.
	MaxBodyBytes int64
	// Realtime, when set, is mounted under /socket.io/.
	Realtime http.Handler
}

// NewHandler builds the application's HTTP handler.
func NewHandler(logger *slog.Logger, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleRoot)
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("POST /pipelines/parse", parseHandler(opts.MaxBodyBytes))

	api := withCORS(opts.AllowedOrigins, withRequestLogging(logger, mux))
	if opts.Realtime == nil {
		return api
	}

	// The Socket.IO transport applies its own CORS policy and needs the raw
	// ResponseWriter to upgrade connections.
	root := http.NewServeMux()
	root.Handle("/socket.io/", opts.Realtime)
	root.Handle("/", api)
	return root
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"Ping": "Pong"})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func parseHandler(maxBodyBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.FromContext(r.Context())

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.Warn("Pipeline payload rejected: too large.", "limit_bytes", tooLarge.Limit)
				writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": "Request body too large"})
				return
			}
			logger.Warn("Failed to read pipeline payload.", "error", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Failed to read request body"})
			return
		}

		graph, err := pipeline.Decode(body)
		if err != nil {
			var verr *pipeline.ValidationError
			if errors.As(err, &verr) {
				logger.Info("Pipeline payload rejected.", "problems", len(verr.Details))
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": verr.Details})
				return
			}
			logger.Error("Unexpected error decoding pipeline payload.", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal Server Error"})
			return
		}

		report := pipeline.Parse(graph)
		logger.Debug("Pipeline parsed.", "nodes", report.Nodes, "edges", report.Edges, "is_dag", report.IsDAG)
		writeJSON(w, http.StatusOK, report)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
