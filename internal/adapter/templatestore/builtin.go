package templatestore

import (
	"context"
	"errors"
	"fmt"

	"resume-studio/internal/domain"
	"resume-studio/internal/metrics"
	"resume-studio/templates"
)

var ErrTemplateNotFound = errors.New("template not found")

// Builtin serves the templates embedded in the binary.
type Builtin struct {
	order []domain.Template
	byID  map[string]domain.Template
}

func NewBuiltin() (*Builtin, error) {
	all, err := templates.All()
	if err != nil {
		return nil, err
	}
	b := &Builtin{order: all, byID: make(map[string]domain.Template, len(all))}
	for _, t := range all {
		b.byID[t.ID] = t
	}
	return b, nil
}

func (b *Builtin) Get(ctx context.Context, id string) (*domain.Template, error) {
	t, ok := b.byID[id]
	if !ok {
		metrics.TemplateFetches.WithLabelValues("builtin", "miss").Inc()
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	metrics.TemplateFetches.WithLabelValues("builtin", "ok").Inc()
	return &t, nil
}

func (b *Builtin) List(ctx context.Context) ([]domain.Template, error) {
	out := make([]domain.Template, len(b.order))
	copy(out, b.order)
	return out, nil
}
