package styletransfer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quillworks/mimic/internal/intake"
)

func threeNotes() []intake.Note {
	return []intake.Note{
		{URL: "https://example.com/n/1", Title: "秋季进补指南", Content: "正文一"},
		{URL: "https://example.com/n/2", Title: "失眠自救", Content: "正文二"},
		{URL: "https://example.com/n/3", Title: "晨跑打卡", Content: "正文三"},
	}
}

func TestAnalyzeBatch_SkipsFailedExtraction(t *testing.T) {
	backend := &fakeBackend{fn: func(user string) (string, error) {
		if strings.Contains(user, "失眠自救") {
			return "prose reply with no tool call", nil
		}
		return analyzerReply("叙事风", "第一人称叙事", "生活-日常"), nil
	}}
	catalog := newFakeCatalog()
	svc := newService(backend, catalog, nil, nil)

	result := svc.AnalyzeBatch(context.Background(), threeNotes())
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", result.Skipped)
	}
	// Successes keep input order.
	if result.Items[0].Note.Title != "秋季进补指南" || result.Items[1].Note.Title != "晨跑打卡" {
		t.Errorf("expected successes in input order, got %q then %q",
			result.Items[0].Note.Title, result.Items[1].Note.Title)
	}
	if len(catalog.styles) != 2 {
		t.Errorf("expected 2 persisted records, got %d", len(catalog.styles))
	}
}

func TestAnalyzeBatch_SkipsFailedPersistence(t *testing.T) {
	backend := &fakeBackend{fn: func(user string) (string, error) {
		if strings.Contains(user, "失眠自救") {
			return analyzerReply("治愈系", "温柔劝导", "生活-情绪"), nil
		}
		return analyzerReply("叙事风", "第一人称叙事", "生活-日常"), nil
	}}
	catalog := newFakeCatalog()
	catalog.failStyleNames["治愈系"] = true
	svc := newService(backend, catalog, nil, nil)

	result := svc.AnalyzeBatch(context.Background(), threeNotes())
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", result.Skipped)
	}
	for _, item := range result.Items {
		if item.Record == nil || item.Record.ID == 0 {
			t.Errorf("expected persisted record for %q", item.Note.Title)
		}
	}
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	svc := newService(&fakeBackend{fn: func(string) (string, error) {
		t.Fatal("analyzer must not run for an empty batch")
		return "", nil
	}}, newFakeCatalog(), nil, nil)

	result := svc.AnalyzeBatch(context.Background(), nil)
	if len(result.Items) != 0 || result.Skipped != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestAnalyzeFromSources(t *testing.T) {
	backend := &fakeBackend{fn: func(string) (string, error) {
		return analyzerReply("叙事风", "第一人称叙事", "生活-日常"), nil
	}}
	fetcher := &fixedFetcher{notes: threeNotes()}
	svc := newService(backend, newFakeCatalog(), fetcher, nil)

	notes, result, err := svc.AnalyzeFromSources(context.Background(), []string{"u1", "u2", "u3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 3 {
		t.Errorf("expected 3 fetched notes, got %d", len(notes))
	}
	if len(result.Items) != 3 {
		t.Errorf("expected 3 analyzed items, got %d", len(result.Items))
	}
}

func TestAnalyzeFromSources_FetchError(t *testing.T) {
	fetchErr := errors.New("upstream timeout")
	svc := newService(&fakeBackend{fn: func(string) (string, error) { return "", nil }},
		newFakeCatalog(), &fixedFetcher{err: fetchErr}, nil)

	_, _, err := svc.AnalyzeFromSources(context.Background(), []string{"u1"})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestAnalyzeFromSources_NoNotes(t *testing.T) {
	svc := newService(&fakeBackend{fn: func(string) (string, error) { return "", nil }},
		newFakeCatalog(), &fixedFetcher{}, nil)

	_, _, err := svc.AnalyzeFromSources(context.Background(), []string{"u1"})
	if err == nil {
		t.Fatal("expected error when intake returns nothing")
	}
}
