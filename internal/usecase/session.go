package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-studio/internal/domain"
	"resume-studio/internal/model"

	"github.com/google/uuid"
)

// ErrSuperseded is returned for a template load whose result arrived after
// a newer selection was made. The result is discarded.
var ErrSuperseded = errors.New("template request superseded")

// TemplateSource loads template markup by id.
type TemplateSource interface {
	Get(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
}

// State is what a client needs to redraw a session.
type State struct {
	ID         string `json:"id"`
	TemplateID string `json:"template_id"`
	Loading    bool   `json:"loading"`
	LoadError  string `json:"load_error,omitempty"`
	Output     Output `json:"output"`
}

// Session is one live preview: a document, a selected template and the
// last render. Every change replaces the whole output; the key changes
// whenever the document or template does.
type Session struct {
	id        string
	previewer *Previewer
	templates TemplateSource

	mu         sync.Mutex
	doc        *model.Document
	templateID string
	tpl        *domain.Template
	key        uint64
	generation uint64
	loading    bool
	loadErr    string
	out        Output

	// lastUsed is read and written by the owning Sessions under its lock.
	lastUsed time.Time
}

func NewSession(id string, previewer *Previewer, templates TemplateSource) *Session {
	s := &Session{id: id, previewer: previewer, templates: templates, doc: model.EmptyDocument()}
	s.rerender()
	return s
}

func (s *Session) ID() string { return s.id }

// SetDocument swaps in doc and re-renders. The key moves only when doc is
// a different value from the current one.
func (s *Session) SetDocument(doc *model.Document) State {
	if doc == nil {
		doc = model.EmptyDocument()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc != s.doc {
		s.doc = doc
		s.key++
	}
	s.rerender()
	return s.state()
}

// SelectTemplate loads id and re-renders with it. Only the most recent
// selection applies: an older call that finishes later gets ErrSuperseded.
// A failed load is not an error here; it is reported in State.LoadError
// and can be retried.
func (s *Session) SelectTemplate(ctx context.Context, id string) (State, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.templateID = id
	s.loading = true
	s.loadErr = ""
	s.mu.Unlock()

	tpl, err := s.templates.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return State{}, ErrSuperseded
	}
	s.loading = false
	s.key++
	if err != nil {
		s.tpl = nil
		s.loadErr = "Failed to load template: " + err.Error()
		s.out = s.previewer.Failure(Output{Key: s.key, TemplateID: id}, s.loadErr)
		return s.state(), nil
	}
	s.tpl = tpl
	s.rerender()
	return s.state(), nil
}

// Retry repeats the last template selection.
func (s *Session) Retry(ctx context.Context) (State, error) {
	s.mu.Lock()
	id := s.templateID
	s.mu.Unlock()
	if id == "" {
		return s.State(), nil
	}
	return s.SelectTemplate(ctx, id)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	return State{
		ID:         s.id,
		TemplateID: s.templateID,
		Loading:    s.loading,
		LoadError:  s.loadErr,
		Output:     s.out,
	}
}

// rerender must be called with mu held.
func (s *Session) rerender() {
	if s.loadErr != "" {
		s.out = s.previewer.Failure(Output{Key: s.key, TemplateID: s.templateID}, s.loadErr)
		return
	}
	if s.tpl == nil {
		s.out = s.previewer.Failure(Output{Key: s.key, TemplateID: s.templateID}, "No template selected")
		return
	}
	s.out = s.previewer.Render(s.key, s.tpl, s.doc)
}

// DefaultSessionTTL is how long an untouched session is kept.
const DefaultSessionTTL = 30 * time.Minute

// Sessions is the registry of live previews. A session that has not been
// fetched for longer than the idle TTL is dropped.
type Sessions struct {
	previewer *Previewer
	templates TemplateSource
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

type SessionsOption func(*Sessions)

// WithIdleTTL sets the idle lifetime. Zero or less keeps sessions until
// they are deleted.
func WithIdleTTL(ttl time.Duration) SessionsOption {
	return func(r *Sessions) { r.ttl = ttl }
}

func WithSessionClock(now func() time.Time) SessionsOption {
	return func(r *Sessions) {
		if now != nil {
			r.now = now
		}
	}
}

func NewSessions(previewer *Previewer, templates TemplateSource, opts ...SessionsOption) *Sessions {
	r := &Sessions{
		previewer: previewer,
		templates: templates,
		ttl:       DefaultSessionTTL,
		now:       time.Now,
		sessions:  map[string]*Session{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Sessions) Create() *Session {
	s := NewSession(uuid.NewString(), r.previewer, r.templates)
	r.mu.Lock()
	s.lastUsed = r.now()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

// Get returns a live session and marks it used. An expired session is
// removed and reported as missing.
func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(s, now) {
		delete(r.sessions, id)
		return nil, false
	}
	s.lastUsed = now
	return s, true
}

func (r *Sessions) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Sweep drops every expired session and returns how many were removed.
func (r *Sessions) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Sessions) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Sessions) expired(s *Session, now time.Time) bool {
	return r.ttl > 0 && now.Sub(s.lastUsed) > r.ttl
}
