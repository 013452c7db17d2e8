package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-studio/internal/adapter/repository"
	"resume-studio/internal/adapter/templatestore"
	"resume-studio/internal/domain"
	"resume-studio/internal/model"
	"resume-studio/internal/usecase"
	"resume-studio/templates"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ResumeStore persists resume records.
type ResumeStore interface {
	Save(ctx context.Context, rec *domain.ResumeRecord) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ResumeRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ResumeRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	templates usecase.TemplateSource
	previewer *usecase.Previewer
	sessions  *usecase.Sessions
	resumes   ResumeStore
	logger    *zap.Logger
	devErrors bool
}

type Deps struct {
	Templates usecase.TemplateSource
	Previewer *usecase.Previewer
	Resumes   ResumeStore
	// Sessions defaults to a registry with the default idle TTL.
	Sessions *usecase.Sessions
	Logger   *zap.Logger
	// DevErrors exposes wrapped error text in responses.
	DevErrors bool
}

func NewHandler(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Sessions == nil {
		d.Sessions = usecase.NewSessions(d.Previewer, d.Templates)
	}
	return &Handler{
		templates: d.Templates,
		previewer: d.Previewer,
		sessions:  d.Sessions,
		resumes:   d.Resumes,
		logger:    d.Logger,
		devErrors: d.DevErrors,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/templates", h.ListTemplates)
	api.Get("/templates/:id", h.GetTemplate)

	api.Post("/resumes/normalize", h.Normalize)
	api.Post("/resumes/validate", h.Validate)
	api.Post("/resumes/legacy", h.Legacy)
	api.Post("/preview", h.Preview)

	api.Post("/resumes", h.CreateResume)
	api.Get("/resumes/:id", h.GetResume)
	api.Put("/resumes/:id", h.UpdateResume)
	api.Delete("/resumes/:id", h.DeleteResume)
	api.Get("/resumes/:id/backup", h.BackupResume)
	api.Get("/resumes/:id/preview", h.PreviewResume)
	api.Get("/users/:userId/resumes", h.ListUserResumes)

	api.Post("/sessions", h.CreateSession)
	api.Get("/sessions/:id", h.GetSession)
	api.Put("/sessions/:id/document", h.UpdateSessionDocument)
	api.Put("/sessions/:id/template/:templateId", h.SelectSessionTemplate)
	api.Post("/sessions/:id/retry", h.RetrySession)
	api.Delete("/sessions/:id", h.DeleteSession)
}

// documentInput names where the data came from so the matching
// normalizer entry point is used.
type documentInput struct {
	Source string          `json:"source"`
	Data   json.RawMessage `json:"data"`
}

func (in documentInput) normalize() (*model.Document, error) {
	var v interface{}
	if len(in.Data) > 0 {
		if err := json.Unmarshal(in.Data, &v); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	switch in.Source {
	case "", "legacy":
		return usecase.FromLegacyFlat(v), nil
	case "persisted", "document":
		return usecase.FromPersistedRecord(v), nil
	case "empty":
		return usecase.EmptyDocument(), nil
	}
	return nil, fmt.Errorf("unknown source %q", in.Source)
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	list, err := h.templates.List(c.UserContext())
	if err != nil {
		h.logger.Error("list templates", zap.Error(err))
		return h.fail(c, fiber.StatusBadGateway, "Failed to load templates", err)
	}
	return h.ok(c, fiber.StatusOK, "Templates", list)
}

func (h *Handler) GetTemplate(c *fiber.Ctx) error {
	tpl, err := h.templates.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.templateError(c, err)
	}
	return h.ok(c, fiber.StatusOK, "Template", tpl)
}

func (h *Handler) templateError(c *fiber.Ctx, err error) error {
	if errors.Is(err, templatestore.ErrTemplateNotFound) {
		return h.fail(c, fiber.StatusNotFound, "Template not found", err)
	}
	return h.fail(c, fiber.StatusBadGateway, "Failed to load template", err)
}

func (h *Handler) Normalize(c *fiber.Ctx) error {
	var in documentInput
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	doc, err := in.normalize()
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	return h.ok(c, fiber.StatusOK, "Normalized", fiber.Map{
		"document":   doc,
		"validation": model.Validate(doc),
	})
}

func (h *Handler) Validate(c *fiber.Ctx) error {
	var doc model.Document
	if err := c.BodyParser(&doc); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	return h.ok(c, fiber.StatusOK, "Validated", model.Validate(&doc))
}

func (h *Handler) Legacy(c *fiber.Ctx) error {
	var doc model.Document
	if err := c.BodyParser(&doc); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	return h.ok(c, fiber.StatusOK, "Converted", usecase.ToLegacyFlat(&doc))
}

type previewRequest struct {
	documentInput
	TemplateID string `json:"template_id"`
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	doc, err := req.normalize()
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	return h.render(c, req.TemplateID, doc)
}

// render answers with both outputs. A template that cannot be loaded is
// reported inside the output, like any other render failure.
func (h *Handler) render(c *fiber.Ctx, templateID string, doc *model.Document) error {
	if templateID == "" {
		templateID = templates.DefaultID
	}
	tpl, err := h.templates.Get(c.UserContext(), templateID)
	if errors.Is(err, templatestore.ErrTemplateNotFound) {
		return h.fail(c, fiber.StatusNotFound, "Template not found", err)
	}
	if err != nil {
		out := h.previewer.Failure(usecase.Output{Key: 1, TemplateID: templateID}, "Failed to load template: "+err.Error())
		return h.ok(c, fiber.StatusOK, "Preview", out)
	}
	return h.ok(c, fiber.StatusOK, "Preview", h.previewer.Render(1, tpl, doc))
}

type resumeRequest struct {
	documentInput
	UserID     string `json:"user_id"`
	Title      string `json:"title"`
	TemplateID string `json:"template_id"`
}

type resumeView struct {
	Record     *domain.ResumeRecord   `json:"record"`
	Document   *model.Document        `json:"document"`
	Validation model.ValidationResult `json:"validation"`
}

func (h *Handler) view(rec *domain.ResumeRecord) resumeView {
	doc := usecase.FromPersistedRecord(rec.Persisted())
	return resumeView{Record: rec, Document: doc, Validation: model.Validate(doc)}
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	var req resumeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid user_id", err)
	}
	doc, err := req.normalize()
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}

	rec := &domain.ResumeRecord{ID: uuid.New(), UserID: uid}
	if err := h.apply(rec, req, doc); err != nil {
		return h.fail(c, fiber.StatusUnprocessableEntity, "document does not match the resume schema", err)
	}
	if err := h.resumes.Save(c.UserContext(), rec); err != nil {
		h.logger.Error("save resume", zap.String("id", rec.ID.String()), zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "Failed to save resume", err)
	}
	return h.ok(c, fiber.StatusCreated, "Resume saved", h.view(rec))
}

func (h *Handler) UpdateResume(c *fiber.Ctx) error {
	rec, err := h.loadResume(c)
	if rec == nil {
		return err
	}
	var req resumeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	doc, err := req.normalize()
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	if req.Title == "" {
		req.Title = rec.Title
	}
	if req.TemplateID == "" {
		req.TemplateID = rec.TemplateID
	}
	if err := h.apply(rec, req, doc); err != nil {
		return h.fail(c, fiber.StatusUnprocessableEntity, "document does not match the resume schema", err)
	}
	if err := h.resumes.Save(c.UserContext(), rec); err != nil {
		h.logger.Error("update resume", zap.String("id", rec.ID.String()), zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "Failed to save resume", err)
	}
	return h.ok(c, fiber.StatusOK, "Resume updated", h.view(rec))
}

// apply copies doc and the request metadata onto rec. The title falls
// back to the person's name and then to "Resume".
func (h *Handler) apply(rec *domain.ResumeRecord, req resumeRequest, doc *model.Document) error {
	if err := model.ValidateShape(doc); err != nil {
		return err
	}
	content := usecase.ToPersistedRecord(doc)
	parsed, _ := content["parsed_sections"].(map[string]interface{})

	title := req.Title
	if title == "" {
		title = doc.Personal.FullName
	}
	if title == "" {
		title = "Resume"
	}
	templateID := req.TemplateID
	if templateID == "" {
		templateID = templates.DefaultID
	}

	rec.Title = title
	rec.TemplateID = templateID
	rec.Content = content
	rec.ParsedSections = parsed
	return nil
}

func (h *Handler) loadResume(c *fiber.Ctx) (*domain.ResumeRecord, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, h.fail(c, fiber.StatusBadRequest, "invalid resume id", err)
	}
	rec, err := h.resumes.Get(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, h.fail(c, fiber.StatusNotFound, "Resume not found", err)
	}
	if err != nil {
		h.logger.Error("load resume", zap.String("id", id.String()), zap.Error(err))
		return nil, h.fail(c, fiber.StatusInternalServerError, "Failed to load resume", err)
	}
	return rec, nil
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	rec, err := h.loadResume(c)
	if rec == nil {
		return err
	}
	return h.ok(c, fiber.StatusOK, "Resume", h.view(rec))
}

func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid resume id", err)
	}
	err = h.resumes.Delete(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return h.fail(c, fiber.StatusNotFound, "Resume not found", err)
	}
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Failed to delete resume", err)
	}
	return h.ok(c, fiber.StatusOK, "Resume deleted", nil)
}

// BackupResume downloads the stored record in the persisted shape, which
// the normalize endpoint accepts back with source "persisted".
func (h *Handler) BackupResume(c *fiber.Ctx) error {
	rec, err := h.loadResume(c)
	if rec == nil {
		return err
	}
	backup := rec.Persisted()
	backup["user_id"] = rec.UserID.String()
	backup["exported_at"] = time.Now().UTC().Format(time.RFC3339)

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="resume-%s.json"`, rec.ID))
	return c.Status(fiber.StatusOK).JSON(backup)
}

func (h *Handler) PreviewResume(c *fiber.Ctx) error {
	rec, err := h.loadResume(c)
	if rec == nil {
		return err
	}
	templateID := c.Query("template", rec.TemplateID)
	return h.render(c, templateID, usecase.FromPersistedRecord(rec.Persisted()))
}

func (h *Handler) ListUserResumes(c *fiber.Ctx) error {
	uid, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid userId", err)
	}
	list, err := h.resumes.ListByUser(c.UserContext(), uid)
	if err != nil {
		h.logger.Error("list resumes", zap.String("user", uid.String()), zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "Failed to list resumes", err)
	}
	return h.ok(c, fiber.StatusOK, "Resumes", list)
}
