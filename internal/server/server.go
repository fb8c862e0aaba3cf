package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yuvalshat/project_butler/internal/agent"
	"github.com/yuvalshat/project_butler/internal/conversation"
	"github.com/yuvalshat/project_butler/internal/gcal"
)

// CalendarAgent is the scheduling pipeline behind the "cl" prefix.
type CalendarAgent interface {
	ProcessMessage(ctx context.Context, message, carryOver string) ([]agent.Response, error)
}

// TasksAgent is the Things link builder behind the "th" prefix.
type TasksAgent interface {
	ProcessMessage(ctx context.Context, message, carryOver string) []agent.Response
}

// ChatAgent handles everything without a routed prefix.
type ChatAgent interface {
	ProcessMessage(ctx context.Context, message string) []agent.Response
}

type Server struct {
	gcalClient    *gcal.Client
	session       *conversation.Session
	calendarAgent CalendarAgent
	tasksAgent    TasksAgent
	chatAgent     ChatAgent
	httpSrv       *http.Server
	port          int
}

// Config holds the server's collaborators.
type Config struct {
	GCalClient    *gcal.Client
	Session       *conversation.Session
	CalendarAgent CalendarAgent
	TasksAgent    TasksAgent
	ChatAgent     ChatAgent
	Port          int
}

func New(cfg Config) *Server {
	s := &Server{
		gcalClient:    cfg.GCalClient,
		session:       cfg.Session,
		calendarAgent: cfg.CalendarAgent,
		tasksAgent:    cfg.TasksAgent,
		chatAgent:     cfg.ChatAgent,
		port:          cfg.Port,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", s.handleHealthCheck)

	// Conversation API
	mux.HandleFunc("POST /api/message", s.handleMessage)
	mux.HandleFunc("GET /api/conversation", s.handleGetConversation)
	mux.HandleFunc("DELETE /api/conversation", s.handleClearConversation)

	// Google OAuth
	mux.HandleFunc("GET /api/auth/status", s.handleAuthStatus)
	mux.HandleFunc("GET /api/auth/url", s.handleAuthURL)
	mux.HandleFunc("GET /oauth/callback", s.handleOAuthCallback)
}

func (s *Server) Start() error {
	fmt.Printf("HTTP server listening on :%d\n", s.port)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the underlying handler (for tests)
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
