package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/drafting"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/importer"
	"github.com/jonathan/resume-studio/internal/jobs"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/pagination"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/jonathan/resume-studio/internal/storage"
	"github.com/jonathan/resume-studio/internal/types"
)

// Drafter is the AI drafting surface the handlers depend on.
type Drafter interface {
	Generate(ctx context.Context, jobDescription string, existing *types.ResumeData) (*types.ResumeData, error)
	Analyze(ctx context.Context, resume *types.ResumeData, jobDescription string) (*types.AnalysisReport, error)
	Compose(ctx context.Context, name, linkedin, talents string) (string, error)
	Enhance(ctx context.Context, resumeText string) (string, error)
	Refine(ctx context.Context, resume *types.ResumeData) (string, error)
}

// Exporter renders a resume to a PDF document.
type Exporter interface {
	ExportPDF(ctx context.Context, resume *types.ResumeData) ([]byte, error)
}

// ProfileImporter pulls a public profile page into resume form.
type ProfileImporter interface {
	ImportResume(ctx context.Context, profileURL string) (*types.ResumeData, error)
}

// JobSearcher queries external job listings.
type JobSearcher interface {
	Search(ctx context.Context, query, location string, pageNum int) (*jobs.SearchResult, error)
}

// ResumeStore is the subset of the storage layer the resume handlers need.
type ResumeStore interface {
	SaveResume(ctx context.Context, ownerID uuid.UUID, id *uuid.UUID, title string, data *types.ResumeData) (*storage.Record, error)
	ListResumes(ctx context.Context, ownerID uuid.UUID) ([]storage.RecordSummary, error)
	GetResume(ctx context.Context, ownerID, id uuid.UUID) (*storage.Record, error)
	DeleteResume(ctx context.Context, ownerID, id uuid.UUID) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *storage.Store
	resumes     ResumeStore
	drafter     Drafter
	exporter    Exporter
	importer    ProfileImporter
	jobs        JobSearcher
	sessions    *SessionRegistry
	sequencer   *drafting.Sequencer
	inflight    *inflightGuard
	searchGroup singleflight.Group
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	store, err := storage.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Server{
		store:     store,
		resumes:   store,
		sessions:  NewSessionRegistry(),
		sequencer: drafting.NewSequencer(),
		inflight:  newInflightGuard(),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// AI-backed features stay disabled without an API key; their routes
	// respond 503.
	if cfg.GeminiAPIKey != "" {
		drafter, err := drafting.NewFromAPIKey(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create drafting service: %w", err)
		}
		s.drafter = drafter

		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create import client: %w", err)
		}
		s.importer = importer.NewService(client, cfg.ChromePath, cfg.ChromePath != "")
	}

	s.exporter = export.NewService(pagination.NewRenderer(nil), export.NewPDFRenderer(cfg.ChromePath))

	if cfg.JobsAppID != "" && cfg.JobsAPIKey != "" {
		s.jobs = jobs.NewClient(cfg.JobsAPIURL, cfg.JobsAppID, cfg.JobsAPIKey)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // AI drafting and PDF export are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router with the middleware chain applied.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", protected(s.handleUpdatePassword))

	// Editing sessions
	mux.Handle("POST /sessions", protected(s.handleCreateSession))
	mux.Handle("DELETE /sessions/{id}", protected(s.handleDeleteSession))
	mux.Handle("GET /sessions/{id}/resume", protected(s.handleGetSessionResume))
	mux.Handle("PATCH /sessions/{id}/resume", protected(s.handleMergeSessionResume))
	mux.Handle("POST /sessions/{id}/reset", protected(s.handleResetSession))

	// Field editing
	mux.Handle("PUT /sessions/{id}/personal-info", protected(s.handleSetPersonalInfo))
	mux.Handle("PATCH /sessions/{id}/personal-info", protected(s.handleUpdatePersonalField))
	mux.Handle("PUT /sessions/{id}/summary", protected(s.handleUpdateSummary))

	mux.Handle("POST /sessions/{id}/experiences", protected(s.handleAddExperience))
	mux.Handle("PATCH /sessions/{id}/experiences/{entry_id}", protected(s.handleUpdateExperience))
	mux.Handle("DELETE /sessions/{id}/experiences/{entry_id}", protected(s.handleRemoveExperience))
	mux.Handle("PUT /sessions/{id}/experiences/{entry_id}/current", protected(s.handleSetExperienceCurrent))
	mux.Handle("POST /sessions/{id}/experiences/{entry_id}/responsibilities", protected(s.handleAppendResponsibility))
	mux.Handle("PUT /sessions/{id}/experiences/{entry_id}/responsibilities/{pos}", protected(s.handleUpdateResponsibility))
	mux.Handle("DELETE /sessions/{id}/experiences/{entry_id}/responsibilities/{pos}", protected(s.handleRemoveResponsibility))
	mux.Handle("POST /sessions/{id}/experiences/{entry_id}/responsibilities/reorder", protected(s.handleReorderResponsibilities))

	mux.Handle("POST /sessions/{id}/education", protected(s.handleAddEducation))
	mux.Handle("PATCH /sessions/{id}/education/{entry_id}", protected(s.handleUpdateEducation))
	mux.Handle("DELETE /sessions/{id}/education/{entry_id}", protected(s.handleRemoveEducation))

	mux.Handle("POST /sessions/{id}/skills", protected(s.handleAddSkill))
	mux.Handle("PUT /sessions/{id}/skills", protected(s.handleSetSkills))
	mux.Handle("DELETE /sessions/{id}/skills", protected(s.handleRemoveSkill))
	mux.Handle("POST /sessions/{id}/certifications", protected(s.handleAddCertification))
	mux.Handle("DELETE /sessions/{id}/certifications", protected(s.handleRemoveCertification))

	// Rendered views
	mux.Handle("GET /sessions/{id}/preview", protected(s.handlePreview))
	mux.Handle("GET /sessions/{id}/document", protected(s.handleDocument))
	mux.Handle("GET /sessions/{id}/export", protected(s.handleExport))

	// AI drafting
	mux.Handle("POST /sessions/{id}/generate", protected(s.handleGenerate))
	mux.Handle("POST /sessions/{id}/analyze", protected(s.handleAnalyze))
	mux.Handle("POST /sessions/{id}/enhance", protected(s.handleEnhance))
	mux.Handle("POST /sessions/{id}/refine", protected(s.handleRefine))
	mux.Handle("POST /sessions/{id}/compose", protected(s.handleCompose))

	// Saved resumes
	mux.Handle("POST /resumes", protected(s.handleSaveResume))
	mux.Handle("GET /resumes", protected(s.handleListResumes))
	mux.Handle("GET /resumes/{id}", protected(s.handleGetResume))
	mux.Handle("DELETE /resumes/{id}", protected(s.handleDeleteResume))
	mux.Handle("POST /resumes/{id}/load", protected(s.handleLoadResume))

	// Import and job search
	mux.Handle("POST /import/linkedin", protected(s.handleImportLinkedIn))
	mux.Handle("GET /jobs", protected(s.handleSearchJobs))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if closer, ok := s.drafter.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			log.Printf("Error closing drafting service: %v", err)
		}
	}

	if s.store != nil {
		s.store.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword handles password update requests for the
// authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorStatus maps the error through HTTPStatus and writes the response.
// 5xx causes are logged but not leaked to the client.
func (s *Server) errorStatus(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
		message = http.StatusText(status)
	}
	s.errorResponse(w, status, message)
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
