package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// StyleRecord is a persisted style fingerprint. sample_content holds the full
// composed analysis task that produced it, reused as the few-shot exemplar
// during synthesis.
type StyleRecord struct {
	ID            int64     `json:"id"`
	StyleName     string    `json:"style_name"`
	FeatureDesc   string    `json:"feature_desc"`
	Category      string    `json:"category"`
	SampleTitle   string    `json:"sample_title"`
	SampleContent string    `json:"sample_content"`
	CreatedAt     time.Time `json:"created_at"`
}

// StyleUpdate names the fields an explicit update may touch. Nil means leave
// unchanged.
type StyleUpdate struct {
	StyleName   *string
	FeatureDesc *string
	Category    *string
	SampleTitle *string
}

// CreateStyle persists a new style record in a single atomic insert.
func (s *Store) CreateStyle(ctx context.Context, rec StyleRecord) (*StyleRecord, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO style_records (style_name, feature_desc, category, sample_title, sample_content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		rec.StyleName, rec.FeatureDesc, rec.Category, rec.SampleTitle, rec.SampleContent,
	)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert style_record: %w", err)
	}
	return &rec, nil
}

func (s *Store) GetStyle(ctx context.Context, id int64) (*StyleRecord, error) {
	var rec StyleRecord
	err := s.pool.QueryRow(ctx, `
		SELECT id, style_name, feature_desc, category, sample_title, sample_content, created_at
		FROM style_records WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.StyleName, &rec.FeatureDesc, &rec.Category, &rec.SampleTitle, &rec.SampleContent, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("style %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select style_record: %w", err)
	}
	return &rec, nil
}

func (s *Store) ListStyles(ctx context.Context) ([]StyleRecord, error) {
	return s.queryStyles(ctx, `
		SELECT id, style_name, feature_desc, category, sample_title, sample_content, created_at
		FROM style_records ORDER BY id`)
}

func (s *Store) ListStylesByCategory(ctx context.Context, category string) ([]StyleRecord, error) {
	return s.queryStyles(ctx, `
		SELECT id, style_name, feature_desc, category, sample_title, sample_content, created_at
		FROM style_records WHERE category = $1 ORDER BY id`, category)
}

func (s *Store) queryStyles(ctx context.Context, query string, args ...any) ([]StyleRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select style_records: %w", err)
	}
	defer rows.Close()

	var out []StyleRecord
	for rows.Next() {
		var rec StyleRecord
		if err := rows.Scan(&rec.ID, &rec.StyleName, &rec.FeatureDesc, &rec.Category, &rec.SampleTitle, &rec.SampleContent, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan style_record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpdateStyle applies the non-nil fields of upd and returns the updated row.
func (s *Store) UpdateStyle(ctx context.Context, id int64, upd StyleUpdate) (*StyleRecord, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE style_records SET
			style_name   = COALESCE($2, style_name),
			feature_desc = COALESCE($3, feature_desc),
			category     = COALESCE($4, category),
			sample_title = COALESCE($5, sample_title)
		WHERE id = $1
		RETURNING id, style_name, feature_desc, category, sample_title, sample_content, created_at`,
		id, upd.StyleName, upd.FeatureDesc, upd.Category, upd.SampleTitle,
	)
	var rec StyleRecord
	err := row.Scan(&rec.ID, &rec.StyleName, &rec.FeatureDesc, &rec.Category, &rec.SampleTitle, &rec.SampleContent, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("style %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update style_record: %w", err)
	}
	return &rec, nil
}

// DeleteStyle removes a style record and any topic associations pointing at it.
func (s *Store) DeleteStyle(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM topic_style_associations WHERE style_id = $1`, id); err != nil {
		return fmt.Errorf("delete associations: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM style_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete style_record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("style %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
