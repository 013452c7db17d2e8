package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-studio/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var ErrNotFound = errors.New("resume not found")

// ResumesRepo stores resume records in postgres. Content and
// parsed_sections are JSONB columns.
type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

func (r *ResumesRepo) Save(ctx context.Context, rec *domain.ResumeRecord) error {
	now := time.Now().UTC()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	contentB, err := json.Marshal(nonNil(rec.Content))
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	parsedB, err := json.Marshal(nonNil(rec.ParsedSections))
	if err != nil {
		return fmt.Errorf("encode parsed sections: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes (id, user_id, title, template_id, content, parsed_sections, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, title = EXCLUDED.title, template_id = EXCLUDED.template_id, content = EXCLUDED.content, parsed_sections = EXCLUDED.parsed_sections, updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.UserID, rec.Title, rec.TemplateID, contentB, parsedB, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert resume %s: %w", rec.ID, err)
	}
	return nil
}

func (r *ResumesRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ResumeRecord, error) {
	var (
		rec              domain.ResumeRecord
		contentB, parsed []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, title, template_id, content, parsed_sections, created_at, updated_at
		FROM resumes WHERE id = $1`, id).
		Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TemplateID, &contentB, &parsed, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load resume %s: %w", id, err)
	}
	if err := json.Unmarshal(contentB, &rec.Content); err != nil {
		return nil, fmt.Errorf("decode resume %s content: %w", id, err)
	}
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &rec.ParsedSections); err != nil {
			return nil, fmt.Errorf("decode resume %s parsed sections: %w", id, err)
		}
	}
	return &rec, nil
}

func (r *ResumesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ResumeRecord, error) {
	var out []domain.ResumeRecord
	err := queryJSON(ctx, r.pool, &out,
		`SELECT coalesce(json_agg(row_to_json(r) ORDER BY r.updated_at DESC), '[]') FROM resumes r WHERE r.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes for %s: %w", userID, err)
	}
	return out, nil
}

func (r *ResumesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resume %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nonNil(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
