// Package realtime exposes the acyclicity checker over Socket.IO. Clients emit
// a "parse" event carrying the same payload as POST /pipelines/parse and get
// the report back as a "parsed" event, or the validation problems as a
// "parse_error" event.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/specialistvlad/dagcheck/internal/ctxlog"
	"github.com/specialistvlad/dagcheck/internal/pipeline"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// Event names used by the transport.
const (
	EventParse      = "parse"
	EventParsed     = "parsed"
	EventParseError = "parse_error"
)

// Server wraps a Socket.IO server bound to the checker.
type Server struct {
	ctx  context.Context
	io   *socket.Server
	opts *socket.ServerOptions
}

// New creates a Socket.IO server that trusts the given origins. The logger
// carried by ctx is used for connection and event logging.
func New(ctx context.Context, allowedOrigins []string) *Server {
	origins := make([]any, len(allowedOrigins))
	for i, o := range allowedOrigins {
		origins[i] = o
	}

	opts := socket.DefaultServerOptions()
	opts.SetServeClient(false)
	opts.SetCors(&types.Cors{
		Origin:      origins,
		Credentials: true,
	})

	s := &Server{
		ctx:  ctx,
		io:   socket.NewServer(nil, opts),
		opts: opts,
	}
	s.io.On("connection", s.onConnection)
	return s
}

// Handler returns the http.Handler to mount under /socket.io/.
func (s *Server) Handler() http.Handler {
	return s.io.ServeHandler(s.opts)
}

// Close disconnects every client and stops the server.
func (s *Server) Close() {
	s.io.Close(nil)
}

func (s *Server) onConnection(clients ...any) {
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		return
	}
	logger := ctxlog.FromContext(s.ctx).With("transport", "socket.io", "sid", client.Id())
	logger.Debug("Client connected.")

	client.On(EventParse, func(args ...any) {
		if len(args) == 0 {
			logger.Info("Parse event without payload.")
			s.emit(client, EventParseError, []pipeline.Detail{{
				Loc:  []any{"body"},
				Msg:  "Field required",
				Type: "missing",
			}})
			return
		}

		graph, err := pipeline.FromValue(args[0])
		if err != nil {
			var verr *pipeline.ValidationError
			if !errors.As(err, &verr) {
				logger.Error("Unexpected error decoding pipeline payload.", "error", err)
				return
			}
			logger.Info("Pipeline payload rejected.", "problems", len(verr.Details))
			s.emit(client, EventParseError, verr.Details)
			return
		}

		report := pipeline.Parse(graph)
		logger.Debug("Pipeline parsed.", "nodes", report.Nodes, "edges", report.Edges, "is_dag", report.IsDAG)
		s.emit(client, EventParsed, report)
	})

	client.On("disconnect", func(reason ...any) {
		logger.Debug("Client disconnected.", "reason", fmt.Sprint(reason...))
	})
}

// emit sends v as plain JSON-shaped data so the wire format matches the HTTP
// responses field for field.
func (s *Server) emit(client *socket.Socket, event string, v any) {
	logger := ctxlog.FromContext(s.ctx)

	raw, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode event payload.", "event", event, "error", err)
		return
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		logger.Error("Failed to encode event payload.", "event", event, "error", err)
		return
	}
	if err := client.Emit(event, plain); err != nil {
		logger.Warn("Failed to emit event.", "event", event, "error", err)
	}
}
