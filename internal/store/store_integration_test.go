//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	if err := Migrate(ctx, dbURL); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_StyleRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateStyle(ctx, StyleRecord{
		StyleName:     "integration style",
		FeatureDesc:   "terse and direct",
		Category:      "test-integration",
		SampleTitle:   "a title",
		SampleContent: "the original sample text",
	})
	if err != nil {
		t.Fatalf("CreateStyle failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected non-zero style ID")
	}
	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM style_records WHERE id = $1", created.ID)
	})

	got, err := s.GetStyle(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetStyle failed: %v", err)
	}
	if got.StyleName != "integration style" {
		t.Errorf("expected style name, got %q", got.StyleName)
	}
	if got.SampleContent != "the original sample text" {
		t.Errorf("expected sample content, got %q", got.SampleContent)
	}

	newName := "renamed style"
	updated, err := s.UpdateStyle(ctx, created.ID, StyleUpdate{StyleName: &newName})
	if err != nil {
		t.Fatalf("UpdateStyle failed: %v", err)
	}
	if updated.StyleName != "renamed style" {
		t.Errorf("expected renamed style, got %q", updated.StyleName)
	}
	if updated.FeatureDesc != "terse and direct" {
		t.Errorf("expected untouched feature desc, got %q", updated.FeatureDesc)
	}
}

func TestIntegration_GetStyle_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetStyle(context.Background(), 99999999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIntegration_TopicReferentialGuard(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	parent, err := s.CreateTopic(ctx, Topic{Name: "guard parent", Level: 1})
	if err != nil {
		t.Fatalf("CreateTopic parent failed: %v", err)
	}
	child, err := s.CreateTopic(ctx, Topic{Name: "guard child", Level: 2, ParentID: parent.ID})
	if err != nil {
		t.Fatalf("CreateTopic child failed: %v", err)
	}
	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM topics WHERE id IN ($1, $2)", child.ID, parent.ID)
	})

	err = s.DeleteTopic(ctx, parent.ID)
	var refErr *ReferentialIntegrityError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferentialIntegrityError, got %v", err)
	}
	if refErr.Children != 1 {
		t.Errorf("expected 1 child, got %d", refErr.Children)
	}

	// Parent and child are both still there.
	if _, err := s.GetTopic(ctx, parent.ID); err != nil {
		t.Errorf("parent should survive blocked delete: %v", err)
	}
	if _, err := s.GetTopic(ctx, child.ID); err != nil {
		t.Errorf("child should survive blocked delete: %v", err)
	}

	// Childless delete goes through.
	if err := s.DeleteTopic(ctx, child.ID); err != nil {
		t.Fatalf("DeleteTopic child failed: %v", err)
	}
	if err := s.DeleteTopic(ctx, parent.ID); err != nil {
		t.Fatalf("DeleteTopic parent failed: %v", err)
	}
}

func TestIntegration_AssociationIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	topic, err := s.CreateTopic(ctx, Topic{Name: "assoc topic", Level: 1})
	if err != nil {
		t.Fatalf("CreateTopic failed: %v", err)
	}
	style, err := s.CreateStyle(ctx, StyleRecord{
		StyleName: "assoc style", FeatureDesc: "d", Category: "c", SampleContent: "s",
	})
	if err != nil {
		t.Fatalf("CreateStyle failed: %v", err)
	}
	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM topic_style_associations WHERE topic_id = $1", topic.ID)
		s.pool.Exec(ctx, "DELETE FROM topics WHERE id = $1", topic.ID)
		s.pool.Exec(ctx, "DELETE FROM style_records WHERE id = $1", style.ID)
	})

	first, err := s.AssociateStyle(ctx, topic.ID, style.ID)
	if err != nil {
		t.Fatalf("AssociateStyle failed: %v", err)
	}
	second, err := s.AssociateStyle(ctx, topic.ID, style.ID)
	if err != nil {
		t.Fatalf("second AssociateStyle failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same association row, got %d and %d", first.ID, second.ID)
	}

	styles, err := s.AssociatedStyles(ctx, topic.ID)
	if err != nil {
		t.Fatalf("AssociatedStyles failed: %v", err)
	}
	if len(styles) != 1 {
		t.Errorf("expected exactly 1 associated style, got %d", len(styles))
	}

	if err := s.DissociateStyle(ctx, topic.ID, style.ID); err != nil {
		t.Fatalf("DissociateStyle failed: %v", err)
	}
	if err := s.DissociateStyle(ctx, topic.ID, style.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second dissociate, got %v", err)
	}
}

func TestIntegration_GenerationRecords(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	rec, err := s.CreateGenerationRecord(ctx, GenerationRecord{
		StyleName:     "audit style",
		UserTask:      "write a launch post",
		WordCount:     140,
		Title:         "t",
		Content:       "c",
		Tags:          "#x #y",
		ExecutionTime: 1.25,
	})
	if err != nil {
		t.Fatalf("CreateGenerationRecord failed: %v", err)
	}
	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM generation_records WHERE id = $1", rec.ID)
	})

	got, err := s.GetGenerationRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetGenerationRecord failed: %v", err)
	}
	if got.UserTask != "write a launch post" {
		t.Errorf("expected user task, got %q", got.UserTask)
	}
	if got.ExecutionTime != 1.25 {
		t.Errorf("expected execution time 1.25, got %f", got.ExecutionTime)
	}
}
