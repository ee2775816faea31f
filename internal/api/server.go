package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quillworks/mimic/internal/intake"
	"github.com/quillworks/mimic/internal/store"
	"github.com/quillworks/mimic/internal/styletransfer"
)

// Orchestrator is the style-transfer surface the handlers drive.
type Orchestrator interface {
	Analyze(ctx context.Context, title, body string) (*store.StyleRecord, error)
	AnalyzeFromSources(ctx context.Context, urls []string) ([]intake.Note, *styletransfer.BatchResult, error)
	Rewrite(ctx context.Context, styleID int64, userTask string, wordCount int) (*styletransfer.RewriteResult, error)
	CreateTopic(ctx context.Context, t store.Topic) (*store.Topic, error)
}

// Catalog is the persistence surface the read/update handlers use directly.
type Catalog interface {
	GetStyle(ctx context.Context, id int64) (*store.StyleRecord, error)
	ListStyles(ctx context.Context) ([]store.StyleRecord, error)
	ListStylesByCategory(ctx context.Context, category string) ([]store.StyleRecord, error)
	UpdateStyle(ctx context.Context, id int64, upd store.StyleUpdate) (*store.StyleRecord, error)
	DeleteStyle(ctx context.Context, id int64) error

	GetTopic(ctx context.Context, id int64) (*store.Topic, error)
	ListTopics(ctx context.Context, level *int, parentID *int64) ([]store.Topic, error)
	Hierarchy(ctx context.Context) ([]*store.TopicNode, error)
	UpdateTopic(ctx context.Context, id int64, upd store.TopicUpdate) (*store.Topic, error)
	DeleteTopic(ctx context.Context, id int64) error
	AssociateStyle(ctx context.Context, topicID, styleID int64) (*store.Association, error)
	DissociateStyle(ctx context.Context, topicID, styleID int64) error
	AssociatedStyles(ctx context.Context, topicID int64) ([]store.StyleRecord, error)

	GetGenerationRecord(ctx context.Context, id int64) (*store.GenerationRecord, error)
	ListGenerationRecords(ctx context.Context) ([]store.GenerationRecord, error)
}

type Server struct {
	router  *chi.Mux
	port    int
	orch    Orchestrator
	catalog Catalog
	logger  *slog.Logger
	http    *http.Server
}

func NewServer(port int, apiToken string, orch Orchestrator, catalog Catalog, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		orch:    orch,
		catalog: catalog,
		logger:  logger,
		http:    &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: router},
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/mimic/status", s.status)

	router.Route("/api/v1/style", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Post("/analyze", s.analyze)
		r.Post("/analyze-urls", s.analyzeURLs)
		r.Post("/rewrite", s.rewrite)
	})

	router.Route("/api/v1/styles", func(r chi.Router) {
		r.Get("/", s.listStyles)
		r.Get("/{id}", s.getStyle)
		r.With(BearerAuthMiddleware(apiToken)).Put("/{id}", s.updateStyle)
		r.With(BearerAuthMiddleware(apiToken)).Delete("/{id}", s.deleteStyle)
	})

	router.Route("/api/v1/topics", func(r chi.Router) {
		r.Get("/", s.listTopics)
		r.Get("/hierarchy", s.topicHierarchy)
		r.Get("/{id}", s.getTopic)
		r.Get("/{id}/styles", s.associatedStyles)
		r.With(BearerAuthMiddleware(apiToken)).Post("/", s.createTopic)
		r.With(BearerAuthMiddleware(apiToken)).Put("/{id}", s.updateTopic)
		r.With(BearerAuthMiddleware(apiToken)).Delete("/{id}", s.deleteTopic)
		r.With(BearerAuthMiddleware(apiToken)).Post("/{id}/styles/{styleID}", s.associateStyle)
		r.With(BearerAuthMiddleware(apiToken)).Delete("/{id}/styles/{styleID}", s.dissociateStyle)
	})

	router.Route("/api/v1/records", func(r chi.Router) {
		r.Get("/", s.listRecords)
		r.Get("/{id}", s.getRecord)
	})

	return s
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"agent":  "mimic",
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
