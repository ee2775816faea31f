package styletransfer

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/quillworks/mimic/internal/agent"
	"github.com/quillworks/mimic/internal/intake"
	"github.com/quillworks/mimic/internal/store"
)

// BatchItem is one successfully analyzed and persisted note.
type BatchItem struct {
	Note     intake.Note
	Analysis agent.StyleFields
	Record   *store.StyleRecord
}

// BatchResult is the outcome of a batch analysis: the successes in input
// order plus a count of notes skipped over per-item failures.
type BatchResult struct {
	Items   []BatchItem
	Skipped int
}

// AnalyzeBatch fans style extraction across the given notes. A single note's
// extraction or persistence failure is logged and skipped; it never aborts
// the rest. Extraction calls run serially (each is its own LLM round trip);
// persistence of the successes is fanned out and joined before returning.
func (s *Service) AnalyzeBatch(ctx context.Context, notes []intake.Note) *BatchResult {
	batchRef := "batch-" + uuid.New().String()[:8]
	s.logger.Info("starting batch analysis", "batch_ref", batchRef, "notes", len(notes))

	type pending struct {
		note   intake.Note
		fields *agent.StyleFields
	}

	var extracted []pending
	skipped := 0
	for i, note := range notes {
		fields, err := s.analyzer.ExtractStyle(ctx, note.Title, note.Content)
		if err != nil {
			s.logger.Error("extraction failed, skipping note",
				"batch_ref", batchRef,
				"index", i,
				"url", note.URL,
				"error", err,
			)
			skipped++
			continue
		}
		extracted = append(extracted, pending{note: note, fields: fields})
	}

	records := make([]*store.StyleRecord, len(extracted))
	var wg sync.WaitGroup
	for i, p := range extracted {
		wg.Add(1)
		go func(i int, p pending) {
			defer wg.Done()
			rec, err := s.catalog.CreateStyle(ctx, store.StyleRecord{
				StyleName:     p.fields.StyleName,
				FeatureDesc:   p.fields.FeatureDesc,
				Category:      p.fields.Category,
				SampleTitle:   p.note.Title,
				SampleContent: agent.AnalysisTask(p.note.Title, p.note.Content),
			})
			if err != nil {
				s.logger.Error("persistence failed, skipping note",
					"batch_ref", batchRef,
					"url", p.note.URL,
					"error", err,
				)
				return
			}
			records[i] = rec
		}(i, p)
	}
	wg.Wait()

	result := &BatchResult{}
	for i, p := range extracted {
		if records[i] == nil {
			skipped++
			continue
		}
		result.Items = append(result.Items, BatchItem{
			Note:     p.note,
			Analysis: *p.fields,
			Record:   records[i],
		})
	}
	result.Skipped = skipped

	s.logger.Info("batch analysis complete",
		"batch_ref", batchRef,
		"analyzed", len(result.Items),
		"skipped", result.Skipped,
	)
	return result
}

// AnalyzeFromSources fetches notes from the intake collaborator and runs a
// batch analysis over them. The batch as a whole fails only when intake
// itself returns nothing.
func (s *Service) AnalyzeFromSources(ctx context.Context, urls []string) ([]intake.Note, *BatchResult, error) {
	notes, err := s.fetcher.FetchNotes(ctx, urls)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, nil, fmt.Errorf("intake returned no notes for %d urls", len(urls))
	}

	return notes, s.AnalyzeBatch(ctx, notes), nil
}
