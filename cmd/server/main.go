package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/clearlineins/underwriting/internal/logger"
	"github.com/clearlineins/underwriting/internal/metrics"
	"github.com/clearlineins/underwriting/underwriting"
)

const defaultConfigPath = "config/tables.yaml"

type Server struct {
	db      *sql.DB // nil when configuration is file-backed
	engine  *underwriting.Engine
	metrics *metrics.Metrics
	router  *chi.Mux
}

func NewServer(engine *underwriting.Engine, db *sql.DB) *Server {
	s := &Server{
		db:      db,
		engine:  engine,
		metrics: metrics.New(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/api/v1/health", s.handleHealth)

	// Evaluation
	r.Post("/api/v1/evaluate", s.handleEvaluate)
	r.Get("/api/v1/decisions/{decisionId}", s.handleGetDecision)

	// Read-only configuration listing
	r.Route("/api/v1/config", func(r chi.Router) {
		r.Get("/states", s.handleListStateOverrides)
		r.Get("/conditions", s.handleListDeclineConditions)
		r.Get("/scenarios", s.handleListGiScenarios)
	})

	// Prometheus metrics
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			s.respondJSON(w, r, http.StatusServiceUnavailable, ErrorResponse{Error: "database unreachable"})
			return
		}
	}
	s.respondJSON(w, r, http.StatusOK, HealthResponse{Status: "healthy"})
}

// Evaluation handler
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req underwriting.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	start := time.Now()
	resp, err := s.engine.Evaluate(&req)
	if err != nil {
		var vErr *underwriting.ValidationError
		if errors.As(err, &vErr) {
			s.respondJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: vErr.Fields})
			return
		}
		var dErr *underwriting.DateFormatError
		if errors.As(err, &dErr) {
			s.respondJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: dErr.Error(), Fields: []string{dErr.Field}})
			return
		}
		logger.Error("evaluation failed", "error", err)
		s.respondJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: "evaluation failed"})
		return
	}

	s.metrics.ObserveEvaluation(string(resp.Status), time.Since(start))
	logger.Info("application evaluated",
		"decisionId", resp.DecisionID,
		"status", resp.Status,
		"underwritingRequired", resp.UnderwritingRequired,
	)
	s.respondJSON(w, r, http.StatusOK, resp)
}

// Decision lookup handler
func (s *Server) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	decisionID := chi.URLParam(r, "decisionId")

	resp, ok := s.engine.GetDecision(decisionID)
	if !ok {
		s.respondJSON(w, r, http.StatusNotFound, ErrorResponse{Error: "decision not found"})
		return
	}
	s.respondJSON(w, r, http.StatusOK, resp)
}

// Configuration listing handlers
func (s *Server) handleListStateOverrides(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, StateOverridesResponse{
		StateOverrides: s.engine.Tables().ListStateOverrides(),
	})
}

func (s *Server) handleListDeclineConditions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, DeclineConditionsResponse{
		DeclineConditions: s.engine.Tables().ListDeclineConditions(),
	})
}

func (s *Server) handleListGiScenarios(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, GiScenariosResponse{
		GiScenarios: s.engine.Tables().ListGiScenarios(),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
	if routePattern := chi.RouteContext(r.Context()).RoutePattern(); routePattern != "" {
		s.metrics.ObserveRequest(routePattern, status)
	}
}

// loadTables assembles the configuration tables from PostgreSQL when
// DATABASE_URL is set, otherwise from the YAML file at CONFIG_PATH.
func loadTables() (*underwriting.Tables, *sql.DB, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}

		tables, err := underwriting.LoadTables(underwriting.NewPostgresConfigStore(db))
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("configuration loaded from database")
		return tables, db, nil
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	tables, err := underwriting.LoadTables(underwriting.NewFileConfigStore(path))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("configuration loaded from file", "path", path)
	return tables, nil, nil
}

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	tables, db, err := loadTables()
	if err != nil {
		logger.Fatal("failed to load configuration tables", "error", err)
	}
	if db != nil {
		defer db.Close()
	}

	repoConfig := underwriting.DefaultRepositoryConfig()
	if ttlStr := os.Getenv("DECISION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			logger.Fatal("invalid DECISION_TTL", "value", ttlStr, "error", err)
		}
		repoConfig.TTL = ttl
	}

	repo := underwriting.NewInMemoryDecisionRepository(repoConfig)
	engine := underwriting.NewEngine(tables, repo)
	server := NewServer(engine, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		logger.Info("server starting", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
