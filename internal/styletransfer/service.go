package styletransfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quillworks/mimic/internal/agent"
	"github.com/quillworks/mimic/internal/bus"
	"github.com/quillworks/mimic/internal/intake"
	"github.com/quillworks/mimic/internal/store"
)

// ErrLevelMismatch rejects a topic whose level is not exactly one below its
// parent (roots must be level 1).
var ErrLevelMismatch = errors.New("topic level must be exactly one below its parent")

// Catalog is the slice of the style store the orchestrator needs.
type Catalog interface {
	CreateStyle(ctx context.Context, rec store.StyleRecord) (*store.StyleRecord, error)
	GetStyle(ctx context.Context, id int64) (*store.StyleRecord, error)
	CreateTopic(ctx context.Context, t store.Topic) (*store.Topic, error)
	GetTopic(ctx context.Context, id int64) (*store.Topic, error)
}

// Publisher is the fire-and-forget audit event sink. *bus.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

// Service composes the two agents with the style store: analyze extracts and
// persists a style, rewrite reconstitutes a stored style into a synthesis
// prompt.
type Service struct {
	analyzer *agent.StyleAnalyzer
	writer   *agent.Copywriter
	catalog  Catalog
	fetcher  intake.Fetcher
	pub      Publisher // nil disables audit events
	logger   *slog.Logger
}

func New(analyzer *agent.StyleAnalyzer, writer *agent.Copywriter, catalog Catalog, fetcher intake.Fetcher, pub Publisher, logger *slog.Logger) *Service {
	return &Service{
		analyzer: analyzer,
		writer:   writer,
		catalog:  catalog,
		fetcher:  fetcher,
		pub:      pub,
		logger:   logger,
	}
}

// Analyze runs style extraction on one post and persists the result. The
// stored sample_content is the full composed analysis task, not the bare
// body, so the exact analyzed input is reproducible. On extraction failure
// nothing is written.
func (s *Service) Analyze(ctx context.Context, title, body string) (*store.StyleRecord, error) {
	fields, err := s.analyzer.ExtractStyle(ctx, title, body)
	if err != nil {
		return nil, err
	}

	rec, err := s.catalog.CreateStyle(ctx, store.StyleRecord{
		StyleName:     fields.StyleName,
		FeatureDesc:   fields.FeatureDesc,
		Category:      fields.Category,
		SampleTitle:   title,
		SampleContent: agent.AnalysisTask(title, body),
	})
	if err != nil {
		return nil, fmt.Errorf("persist style: %w", err)
	}

	s.logger.Info("style analyzed",
		"style_id", rec.ID,
		"style_name", rec.StyleName,
		"category", rec.Category,
	)
	return rec, nil
}

// RewriteResult is one successful synthesis plus the style context it used.
type RewriteResult struct {
	Post      *agent.GeneratedPost
	StyleName string
	WordCount int
}

// Rewrite looks up a stored style and synthesizes a new post in it. A zero
// wordCount derives the target from the stored sample length. On success an
// audit event is published best-effort; a publish failure is logged, never
// surfaced.
func (s *Service) Rewrite(ctx context.Context, styleID int64, userTask string, wordCount int) (*RewriteResult, error) {
	rec, err := s.catalog.GetStyle(ctx, styleID)
	if err != nil {
		return nil, err
	}

	if wordCount <= 0 {
		wordCount = len([]rune(rec.SampleContent))
	}

	start := time.Now()
	post, err := s.writer.Synthesize(ctx, agent.StyleSpec{
		StyleName:   rec.StyleName,
		FeatureDesc: rec.FeatureDesc,
		WordCount:   wordCount,
		Exemplar:    rec.SampleContent,
	}, userTask)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start).Seconds()

	s.logger.Info("rewrite complete",
		"style_id", styleID,
		"style_name", rec.StyleName,
		"word_count", wordCount,
		"elapsed", elapsed,
	)

	if s.pub != nil {
		evt := bus.RewriteCompleted{
			EventID:       uuid.NewString(),
			StyleID:       styleID,
			StyleName:     rec.StyleName,
			UserTask:      userTask,
			WordCount:     wordCount,
			Title:         post.Title,
			Content:       post.Content,
			Tags:          post.Tags,
			ExecutionTime: elapsed,
		}
		if err := s.pub.Publish(bus.SubjectRewriteCompleted, evt); err != nil {
			s.logger.Error("failed to publish rewrite audit event",
				"event_id", evt.EventID,
				"style_id", styleID,
				"error", err,
			)
		}
	}

	return &RewriteResult{Post: post, StyleName: rec.StyleName, WordCount: wordCount}, nil
}

// CreateTopic enforces the level invariant the store deliberately does not:
// roots are level 1, children sit exactly one level below their parent.
func (s *Service) CreateTopic(ctx context.Context, t store.Topic) (*store.Topic, error) {
	if t.ParentID == 0 {
		if t.Level != 1 {
			return nil, fmt.Errorf("root topic must be level 1, got %d: %w", t.Level, ErrLevelMismatch)
		}
		return s.catalog.CreateTopic(ctx, t)
	}

	parent, err := s.catalog.GetTopic(ctx, t.ParentID)
	if err != nil {
		return nil, err
	}
	if t.Level != parent.Level+1 {
		return nil, fmt.Errorf("parent is level %d, child must be level %d, got %d: %w",
			parent.Level, parent.Level+1, t.Level, ErrLevelMismatch)
	}
	return s.catalog.CreateTopic(ctx, t)
}
