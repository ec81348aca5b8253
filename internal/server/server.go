// Package server provides the HTTP REST API for the compliance agent.
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

	"github.com/nadim/adgm-agent/internal/config"
	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/knowledge"
	"github.com/nadim/adgm-agent/internal/llm"
	"github.com/nadim/adgm-agent/internal/pipeline"
	"github.com/nadim/adgm-agent/internal/server/middleware"
	"github.com/nadim/adgm-agent/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       db.AnalysisStore
	kb          *knowledge.Store
	runner      *pipeline.Runner
	apiKey      string
	databaseURL string
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	// Closers for optional services, released on shutdown
	kbIndex   *knowledge.PGIndex
	embedder  *knowledge.GeminiEmbedder
	llmClient llm.Client
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
}

// New creates a new server instance. The database is required; the
// knowledge store and LLM analyzer are optional and the analysis
// pipeline degrades to structural checks when they are missing.
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:          database,
		store:       database,
		apiKey:      cfg.APIKey,
		databaseURL: cfg.DatabaseURL,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Optional knowledge store backed by the same database
	if cfg.APIKey != "" {
		s.initKnowledge(cfg)
		s.initAnalyzer(cfg)
	}

	var analyzer *llm.Analyzer
	if s.llmClient != nil {
		analyzer = llm.NewAnalyzer(s.llmClient)
	}
	s.runner = pipeline.NewRunner(s.store, s.kb, analyzer)

	// Setup router
	mux := http.NewServeMux()

	// Document analysis endpoints
	mux.HandleFunc("POST /documents", s.handleUploadDocument)
	mux.HandleFunc("POST /documents/stream", s.handleUploadDocumentStream)
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	mux.HandleFunc("DELETE /documents/{id}", s.handleDeleteDocument)
	mux.HandleFunc("GET /documents/{id}/report", s.handleGetReport)

	// Synchronous validation of supplied content
	mux.HandleFunc("POST /validate", s.handleValidate)

	// Checklist and knowledge base endpoints
	mux.HandleFunc("POST /checklist", s.handleChecklist)
	mux.HandleFunc("GET /knowledge/stats", s.handleKnowledgeStats)
	mux.HandleFunc("GET /documents/summary", s.handleSummaryStats)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication endpoints; password changes require a valid token
	authMW := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("PUT /auth/password", authMW(http.HandlerFunc(s.handleUpdatePassword)))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for LLM-backed analysis
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// initKnowledge wires the pgvector-backed knowledge store. Failures are
// logged and leave the server in degraded mode.
func (s *Server) initKnowledge(cfg Config) {
	index, err := knowledge.NewPGIndex(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: knowledge index unavailable: %v", err)
		return
	}

	embedder, err := knowledge.NewGeminiEmbedder(context.Background(), cfg.APIKey, "")
	if err != nil {
		log.Printf("Warning: embedder unavailable: %v", err)
		index.Close()
		return
	}

	s.kbIndex = index
	s.embedder = embedder
	s.kb = knowledge.NewStore(embedder, index)
	if !s.kb.Initialize(context.Background()) {
		log.Printf("Warning: knowledge store degraded, structural checks only")
	}
}

// initAnalyzer wires the LLM client. Failures are logged and leave the
// server in degraded mode.
func (s *Server) initAnalyzer(cfg Config) {
	client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		log.Printf("Warning: LLM client unavailable: %v", err)
		return
	}
	s.llmClient = client
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

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.embedder != nil {
		_ = s.embedder.Close()
	}
	if s.kbIndex != nil {
		s.kbIndex.Close()
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			// Set rate limit headers
			s.setRateLimitHeaders(w, info)
			// Return 429 Too Many Requests
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
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

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests for the
// authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	s.authHandler.UpdatePassword(w, r)
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
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

	// Log rate limit hit
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
