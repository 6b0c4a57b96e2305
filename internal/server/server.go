package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/citygrid/eventsim/internal/catalog"
)

const (
	// sseWriteTimeout is the maximum time allowed for a single SSE write
	// operation. This prevents goroutine leaks when clients are slow or
	// disconnected. Must be <= shutdown timeout to ensure clean shutdown.
	sseWriteTimeout = 5 * time.Second

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "City Dashboard SSE Test Server"

	// titlePlaceholder is the marker in HTML that gets replaced with the
	// actual title.
	titlePlaceholder = "{{.Title}}"
)

// Server handles HTTP requests for the event simulator.
//
// Server provides four endpoints:
//   - GET /: Serves the embedded info page HTML
//   - GET /events: Server-Sent Events stream of randomized canned events
//   - GET /healthz: Liveness probe
//   - GET /metrics: Prometheus metrics
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	port       int
	assets     fs.FS
	title      string
	minDelay   time.Duration
	maxDelay   time.Duration
	httpServer *http.Server
	done       chan struct{}
	logger     *slog.Logger
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - port: TCP port to listen on
//   - assets: Embedded filesystem containing the info page (may be nil)
//   - title: Info page title (defaults to "City Dashboard SSE Test Server" if empty)
//   - minDelay, maxDelay: Bounds of the random pause between emissions
//   - logger: Logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(port int, assets fs.FS, title string, minDelay, maxDelay time.Duration, logger *slog.Logger) *Server {
	return &Server{
		port:     port,
		assets:   assets,
		title:    title,
		minDelay: minDelay,
		maxDelay: maxDelay,
		logger:   logger,
	}
}

// Handler returns the fully routed HTTP handler for the server.
//
// Exposed separately from [Server.Start] so tests can exercise the routing
// through httptest without binding a real port.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// permissive CORS so a browser dashboard on another origin can subscribe
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(metricsMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/events", s.handleEvents)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown with a 5-second
// timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: s.Handler(),
		// BaseContext derives all request contexts from the server context.
		// When ctx is cancelled, all request contexts are also cancelled,
		// which ends every open stream loop and unblocks shutdown.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// Done returns a channel that is closed once the server has finished its
// graceful shutdown. Only valid after a successful [Server.Start].
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// handleIndex serves the static info page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.assets == nil {
		http.Error(w, "Info page not found", http.StatusInternalServerError)
		return
	}

	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "Info page not found", http.StatusInternalServerError)
		return
	}

	// apply title substitution with HTML escaping to prevent XSS
	title := s.title
	if title == "" {
		title = defaultTitle
	}
	safeTitle := html.EscapeString(title)
	rendered := strings.ReplaceAll(string(content), titlePlaceholder, safeTitle)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(rendered)); err != nil {
		s.logger.Error("failed to write info page response", "error", err)
	}
}

// handleEvents streams randomized catalog events via Server-Sent Events.
//
// The first frame is always the fixed connection greeting, written before the
// first random delay. After that the loop runs until the client disconnects
// or the server shuts down: sleep a uniform random [minDelay, maxDelay],
// pick and randomize one catalog template, write it as a "data:" frame, flush.
//
// The handler uses write deadlines to prevent goroutine leaks when clients
// are slow or disconnected. Without deadlines, a blocked Fprintf call would
// prevent the handler from detecting context cancellation.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	// check if flushing is supported
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	// ResponseController provides deadline-aware write and flush operations.
	rc := http.NewResponseController(w)

	// track if write deadlines are supported (may not be for some
	// ResponseWriter impls, httptest recorders included)
	deadlinesSupported := true

	// writeFrame writes one SSE data frame with a deadline so a dead peer
	// cannot block the loop forever.
	writeFrame := func(data []byte) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}

		// ResponseController.Flush respects the write deadline
		return rc.Flush()
	}

	// set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	streamID := uuid.NewString()
	streamsActive.Inc()
	defer streamsActive.Dec()
	streamsTotal.Inc()

	s.logger.Info("client connected",
		"stream_id", streamID,
		"remote", r.RemoteAddr,
	)

	// connection greeting goes out immediately so the client can confirm the
	// stream is live without waiting out the first delay
	greeting, err := json.Marshal(catalog.Greeting())
	if err == nil {
		if err := writeFrame(greeting); err != nil {
			s.logger.Info("client disconnected", "stream_id", streamID)
			return
		}
		eventsTotal.WithLabelValues(string(catalog.EventLogMessage)).Inc()
	}

	// each stream gets its own generator: no locking against other streams
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	timer := time.NewTimer(catalog.Delay(rnd, s.minDelay, s.maxDelay))
	defer timer.Stop()

	sent := 0
	for {
		select {
		case <-r.Context().Done():
			// request context is derived from the server context via
			// BaseContext, so this fires on both client disconnect AND
			// server shutdown
			s.logger.Info("client disconnected",
				"stream_id", streamID,
				"events_sent", sent,
			)
			return

		case <-timer.C:
			ev := catalog.Pick(rnd)
			data, err := json.Marshal(ev)
			if err != nil {
				// well-formed templates should never hit this; skip the
				// emission rather than killing the stream
				eventsSkipped.Inc()
				s.logger.Warn("skipping unserializable event",
					"stream_id", streamID,
					"type", ev.Type,
					"error", err,
				)
			} else {
				if err := writeFrame(data); err != nil {
					s.logger.Info("client disconnected",
						"stream_id", streamID,
						"events_sent", sent,
					)
					return
				}
				sent++
				eventsTotal.WithLabelValues(string(ev.Type)).Inc()
				s.logger.Debug("event sent",
					"stream_id", streamID,
					"type", ev.Type,
					"seq", sent,
				)
			}

			timer.Reset(catalog.Delay(rnd, s.minDelay, s.maxDelay))
		}
	}
}
