package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pikachuaaaa/RPGBot/internal/command"
	"github.com/pikachuaaaa/RPGBot/internal/event"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
	"github.com/pikachuaaaa/RPGBot/internal/parser"
	"github.com/pikachuaaaa/RPGBot/pkg/types"
)

// ServerConfig holds HTTP gateway configuration.
type ServerConfig struct {
	Hostname    string
	Port        int
	CORS        []string
	ReadTimeout time.Duration
}

// NewServerConfig converts the file configuration, filling in defaults.
func NewServerConfig(cfg *types.ServerConfig) *ServerConfig {
	sc := &ServerConfig{
		Hostname:    "127.0.0.1",
		Port:        8080,
		ReadTimeout: 30 * time.Second,
	}
	if cfg == nil {
		return sc
	}
	if cfg.Hostname != "" {
		sc.Hostname = cfg.Hostname
	}
	if cfg.Port != 0 {
		sc.Port = cfg.Port
	}
	sc.CORS = cfg.CORS
	return sc
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Hostname, c.Port)
}

// Server is the HTTP and WebSocket gateway.
type Server struct {
	config     *ServerConfig
	router     *chi.Mux
	httpSrv    *http.Server
	dispatcher *Dispatcher
	bus        *event.Bus
}

// NewServer creates a server. bus may be nil, in which case /events is not
// served.
func NewServer(cfg *ServerConfig, d *Dispatcher, bus *event.Bus) *Server {
	if cfg == nil {
		cfg = NewServerConfig(nil)
	}
	s := &Server{
		config:     cfg,
		router:     chi.NewRouter(),
		dispatcher: d,
		bus:        bus,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	origins := s.config.CORS
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Get("/health", s.health)
	r.Get("/command", s.listCommands)
	r.Post("/message", s.postMessage)
	r.Post("/parse", s.parseMessage)

	r.Get("/ws", s.chatSocket)
	if s.bus != nil {
		r.Get("/events", s.eventSocket)
	}
}

// requestLogger logs each request through the application logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		logging.Debug().
			Str("requestID", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// Start listens and serves until Shutdown.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:        s.config.Addr(),
		Handler:     s.router,
		ReadTimeout: s.config.ReadTimeout,
	}
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router returns the Chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// MessageRequest is the body of POST /message and POST /parse, and the frame
// clients send over /ws.
type MessageRequest struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
	Author  string `json:"author,omitempty"`
	Bot     bool   `json:"bot,omitempty"`
}

func (req MessageRequest) message(gateway string, send SendFunc) *Message {
	msg := NewMessage(gateway, req.Text, send)
	msg.Channel = req.Channel
	msg.Author = req.Author
	msg.Bot = req.Bot
	return msg
}

// ParamInfo describes a command parameter in listings.
type ParamInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// CommandInfo describes a registered command in listings.
type CommandInfo struct {
	Prefix      string      `json:"prefix"`
	Name        string      `json:"name"`
	Usage       string      `json:"usage"`
	Description string      `json:"description,omitempty"`
	Params      []ParamInfo `json:"params"`
}

// DescribeCommand converts a command for listings.
func DescribeCommand(cmd *command.Command) CommandInfo {
	info := CommandInfo{
		Prefix:      cmd.Prefix,
		Name:        cmd.Name,
		Usage:       cmd.Usage(),
		Description: cmd.Description,
		Params:      make([]ParamInfo, 0, len(cmd.Params)),
	}
	for _, p := range cmd.Params {
		info.Params = append(info.Params, ParamInfo{
			Name:     p.Name,
			Type:     p.Type.String(),
			Required: !p.HasDefault,
			Default:  p.Default,
		})
	}
	return info
}

// ParseResponse is the body returned by POST /parse.
type ParseResponse struct {
	Handled bool           `json:"handled"`
	Command string         `json:"command,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"commands": len(s.dispatcher.Parser().Commands()),
	})
}

func (s *Server) listCommands(w http.ResponseWriter, r *http.Request) {
	cmds := s.dispatcher.Parser().Commands()
	out := make([]CommandInfo, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, DescribeCommand(cmd))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}

	msg := req.message(GatewayHTTP, nil)
	writeJSON(w, http.StatusOK, s.dispatcher.Dispatch(r.Context(), msg))
}

// parseMessage matches a message without running the command.
func (s *Server) parseMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}

	msg := req.message(GatewayHTTP, nil)
	inv, ok, err := s.dispatcher.Parser().Match(msg.Text, msg)
	if err != nil {
		details := map[string]any{"kind": parser.Kind(err)}
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) && syntaxErr.Pos >= 0 {
			details["pos"] = syntaxErr.Pos
		}
		var notFound *parser.CommandNotFoundError
		if errors.As(err, &notFound) && notFound.Suggestion != "" {
			details["suggestion"] = notFound.Suggestion
		}
		writeErrorWithDetails(w, http.StatusUnprocessableEntity, ErrCodeParseError, err.Error(), details)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, ParseResponse{Handled: false})
		return
	}

	args := make(map[string]any, len(inv.Args))
	for k, v := range inv.Args {
		if k != inv.Command.ContextParam {
			args[k] = v
		}
	}
	writeJSON(w, http.StatusOK, ParseResponse{
		Handled: true,
		Command: inv.Command.FullName(),
		Args:    args,
	})
}
