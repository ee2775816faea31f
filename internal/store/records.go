package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GenerationRecord is the append-only audit trail of one synthesis
// invocation. Never mutated after creation.
type GenerationRecord struct {
	ID            int64     `json:"id"`
	StyleName     string    `json:"style_name"`
	UserTask      string    `json:"user_task"`
	WordCount     int       `json:"word_count"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Tags          string    `json:"tags"`
	ExecutionTime float64   `json:"execution_time"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Store) CreateGenerationRecord(ctx context.Context, rec GenerationRecord) (*GenerationRecord, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO generation_records (style_name, user_task, word_count, title, content, tags, execution_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		rec.StyleName, rec.UserTask, rec.WordCount, rec.Title, rec.Content, rec.Tags, rec.ExecutionTime,
	)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert generation_record: %w", err)
	}
	return &rec, nil
}

func (s *Store) GetGenerationRecord(ctx context.Context, id int64) (*GenerationRecord, error) {
	var rec GenerationRecord
	err := s.pool.QueryRow(ctx, `
		SELECT id, style_name, user_task, word_count, title, content, tags, execution_time, created_at
		FROM generation_records WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.StyleName, &rec.UserTask, &rec.WordCount, &rec.Title, &rec.Content, &rec.Tags, &rec.ExecutionTime, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("generation record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select generation_record: %w", err)
	}
	return &rec, nil
}

func (s *Store) ListGenerationRecords(ctx context.Context) ([]GenerationRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, style_name, user_task, word_count, title, content, tags, execution_time, created_at
		FROM generation_records ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select generation_records: %w", err)
	}
	defer rows.Close()

	var out []GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		if err := rows.Scan(&rec.ID, &rec.StyleName, &rec.UserTask, &rec.WordCount, &rec.Title, &rec.Content, &rec.Tags, &rec.ExecutionTime, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan generation_record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
