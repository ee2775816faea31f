package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Topic is a hierarchical classification node, levels 1 (root) to 3 (leaf).
// ParentID 0 means root; stored as SQL NULL.
type Topic struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	ParentID    int64     `json:"parent_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TopicNode is a topic with its resolved children, used by Hierarchy.
type TopicNode struct {
	Topic
	Children []*TopicNode `json:"children"`
}

// Association is one topic↔style link.
type Association struct {
	ID        int64     `json:"id"`
	TopicID   int64     `json:"topic_id"`
	StyleID   int64     `json:"style_id"`
	CreatedAt time.Time `json:"created_at"`
}

func nullableParent(parentID int64) any {
	if parentID == 0 {
		return nil
	}
	return parentID
}

func (s *Store) CreateTopic(ctx context.Context, t Topic) (*Topic, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO topics (name, level, parent_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		t.Name, t.Level, nullableParent(t.ParentID), t.Description,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert topic: %w", err)
	}
	return &t, nil
}

func (s *Store) GetTopic(ctx context.Context, id int64) (*Topic, error) {
	var t Topic
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, level, COALESCE(parent_id, 0), description, created_at
		FROM topics WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Level, &t.ParentID, &t.Description, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("topic %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select topic: %w", err)
	}
	return &t, nil
}

// TopicUpdate names the fields an update may touch; nil leaves unchanged.
type TopicUpdate struct {
	Name        *string
	Description *string
}

func (s *Store) UpdateTopic(ctx context.Context, id int64, upd TopicUpdate) (*Topic, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE topics SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, level, COALESCE(parent_id, 0), description, created_at`,
		id, upd.Name, upd.Description,
	)
	var t Topic
	err := row.Scan(&t.ID, &t.Name, &t.Level, &t.ParentID, &t.Description, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("topic %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	return &t, nil
}

// DeleteTopic removes a childless, unassociated topic. A topic still holding
// children or style associations fails with ReferentialIntegrityError and is
// left untouched.
func (s *Store) DeleteTopic(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var children, associations int
	err = tx.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM topics WHERE parent_id = $1),
			(SELECT count(*) FROM topic_style_associations WHERE topic_id = $1)`,
		id,
	).Scan(&children, &associations)
	if err != nil {
		return fmt.Errorf("count references: %w", err)
	}
	if children > 0 || associations > 0 {
		return &ReferentialIntegrityError{TopicID: id, Children: children, Associations: associations}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListTopics filters by level and/or parent when the pointers are non-nil.
func (s *Store) ListTopics(ctx context.Context, level *int, parentID *int64) ([]Topic, error) {
	query := `
		SELECT id, name, level, COALESCE(parent_id, 0), description, created_at
		FROM topics
		WHERE ($1::int IS NULL OR level = $1)
		  AND ($2::bigint IS NULL OR COALESCE(parent_id, 0) = $2)
		ORDER BY id`
	rows, err := s.pool.Query(ctx, query, level, parentID)
	if err != nil {
		return nil, fmt.Errorf("select topics: %w", err)
	}
	defer rows.Close()
	return scanTopics(rows)
}

// ChildTopics is the explicit child lookup by parent id, no lazy traversal.
func (s *Store) ChildTopics(ctx context.Context, parentID int64) ([]Topic, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, level, COALESCE(parent_id, 0), description, created_at
		FROM topics WHERE parent_id = $1 ORDER BY id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("select child topics: %w", err)
	}
	defer rows.Close()
	return scanTopics(rows)
}

// Hierarchy loads every topic in one query and assembles the tree in memory,
// avoiding per-node child queries.
func (s *Store) Hierarchy(ctx context.Context) ([]*TopicNode, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, level, COALESCE(parent_id, 0), description, created_at
		FROM topics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select topics: %w", err)
	}
	defer rows.Close()

	topics, err := scanTopics(rows)
	if err != nil {
		return nil, err
	}
	return BuildHierarchy(topics), nil
}

// BuildHierarchy assembles a parent/child tree from a flat topic list.
// Orphans (non-zero parent that is absent from the list) are dropped.
func BuildHierarchy(topics []Topic) []*TopicNode {
	nodes := make(map[int64]*TopicNode, len(topics))
	for _, t := range topics {
		nodes[t.ID] = &TopicNode{Topic: t, Children: []*TopicNode{}}
	}
	var roots []*TopicNode
	for _, t := range topics {
		node := nodes[t.ID]
		if t.ParentID == 0 {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[t.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots
}

func scanTopics(rows pgx.Rows) ([]Topic, error) {
	var out []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Level, &t.ParentID, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AssociateStyle links a style to a topic. Idempotent: an existing link is
// returned unchanged, never duplicated.
func (s *Store) AssociateStyle(ctx context.Context, topicID, styleID int64) (*Association, error) {
	if _, err := s.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}
	if _, err := s.GetStyle(ctx, styleID); err != nil {
		return nil, err
	}

	// The no-op DO UPDATE makes the conflicting row visible to RETURNING,
	// so a fresh insert and an existing link resolve in one statement.
	var a Association
	err := s.pool.QueryRow(ctx, `
		INSERT INTO topic_style_associations (topic_id, style_id)
		VALUES ($1, $2)
		ON CONFLICT (topic_id, style_id) DO UPDATE SET topic_id = EXCLUDED.topic_id
		RETURNING id, topic_id, style_id, created_at`,
		topicID, styleID,
	).Scan(&a.ID, &a.TopicID, &a.StyleID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert association: %w", err)
	}
	return &a, nil
}

func (s *Store) DissociateStyle(ctx context.Context, topicID, styleID int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM topic_style_associations WHERE topic_id = $1 AND style_id = $2`,
		topicID, styleID,
	)
	if err != nil {
		return fmt.Errorf("delete association: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("association topic %d style %d: %w", topicID, styleID, ErrNotFound)
	}
	return nil
}

func (s *Store) AssociatedStyles(ctx context.Context, topicID int64) ([]StyleRecord, error) {
	return s.queryStyles(ctx, `
		SELECT r.id, r.style_name, r.feature_desc, r.category, r.sample_title, r.sample_content, r.created_at
		FROM style_records r
		JOIN topic_style_associations a ON a.style_id = r.id
		WHERE a.topic_id = $1
		ORDER BY r.id`, topicID)
}
