// Package server exposes the course over a JSON HTTP API. Handlers produce
// the view records of the progress engine and answer store; HTML and PDF
// presentation belong to downstream clients.
package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/example/ctcourse/internal/auth"
	"github.com/example/ctcourse/internal/config"
	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/internal/database"
	"github.com/example/ctcourse/internal/project"
)

// Server wires the application services to HTTP routes.
type Server struct {
	cfg     *config.Config
	auth    *auth.Service
	engine  *course.Engine
	answers *project.Service
	users   *database.UserRepository
	logger  *zap.Logger
}

// New creates a server over the given services.
func New(
	cfg *config.Config,
	authService *auth.Service,
	engine *course.Engine,
	answers *project.Service,
	users *database.UserRepository,
	logger *zap.Logger,
) *Server {
	return &Server{
		cfg:     cfg,
		auth:    authService,
		engine:  engine,
		answers: answers,
		users:   users,
		logger:  logger,
	}
}

// Handler returns the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	mux.Handle("GET /api/me", s.requireAuth(s.handleMe))
	mux.Handle("PUT /api/me", s.requireAuth(s.handleUpdateProfile))
	mux.Handle("GET /api/progress", s.requireAuth(s.handleProgress))
	mux.Handle("GET /api/modules", s.requireAuth(s.handleModules))
	mux.Handle("GET /api/modules/{slug}", s.requireAuth(s.handleModule))
	mux.Handle("POST /api/modules/{slug}/answers", s.requireAuth(s.handleSubmitAnswers))
	mux.Handle("POST /api/modules/{slug}/complete", s.requireAuth(s.handleCompleteModule))
	mux.Handle("GET /api/summary", s.requireAuth(s.handleSummary))
	mux.Handle("GET /api/certificate", s.requireAuth(s.handleCertificate))
	mux.Handle("GET /api/certificate/download", s.requireAuth(s.handleCertificateDownload))

	mux.Handle("GET /api/admin/progress-report", s.requireAuth(s.requireAdmin(s.handleProgressReport)))

	return s.logRequests(mux)
}
