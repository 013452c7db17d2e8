package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"resume-studio/internal/domain"

	"github.com/google/uuid"
)

// MemoryResumes keeps records in process. The server falls back to it
// when no database is configured.
type MemoryResumes struct {
	mu      sync.RWMutex
	records map[uuid.UUID]domain.ResumeRecord
}

func NewMemoryResumes() *MemoryResumes {
	return &MemoryResumes{records: map[uuid.UUID]domain.ResumeRecord{}}
}

func (m *MemoryResumes) Save(ctx context.Context, rec *domain.ResumeRecord) error {
	now := time.Now().UTC()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.records[rec.ID]; ok {
		rec.CreatedAt = prev.CreatedAt
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	stored, err := clone(*rec)
	if err != nil {
		return err
	}
	m.records[rec.ID] = stored
	return nil
}

func (m *MemoryResumes) Get(ctx context.Context, id uuid.UUID) (*domain.ResumeRecord, error) {
	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out, err := clone(rec)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MemoryResumes) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ResumeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.ResumeRecord{}
	for _, rec := range m.records {
		if rec.UserID != userID {
			continue
		}
		cp, err := clone(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *MemoryResumes) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

// clone deep-copies the JSON sections so callers never share maps with the
// store.
func clone(rec domain.ResumeRecord) (domain.ResumeRecord, error) {
	for _, m := range []*map[string]interface{}{&rec.Content, &rec.ParsedSections} {
		if *m == nil {
			continue
		}
		b, err := json.Marshal(*m)
		if err != nil {
			return rec, err
		}
		var cp map[string]interface{}
		if err := json.Unmarshal(b, &cp); err != nil {
			return rec, err
		}
		*m = cp
	}
	return rec, nil
}
