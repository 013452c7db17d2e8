package http

import (
	"errors"

	"resume-studio/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type sessionRequest struct {
	documentInput
	TemplateID string `json:"template_id"`
}

func (h *Handler) session(c *fiber.Ctx) (*usecase.Session, error) {
	s, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return nil, h.fail(c, fiber.StatusNotFound, "Session not found", nil)
	}
	return s, nil
}

// CreateSession starts a live preview. Document and template are both
// optional in the body.
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req sessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
		}
	}
	doc, err := req.normalize()
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}

	s := h.sessions.Create()
	state := s.SetDocument(doc)
	if req.TemplateID != "" {
		if state, err = s.SelectTemplate(c.UserContext(), req.TemplateID); err != nil {
			return h.sessionError(c, err)
		}
	}
	return h.ok(c, fiber.StatusCreated, "Session created", state)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	return h.ok(c, fiber.StatusOK, "Session", s.State())
}

func (h *Handler) UpdateSessionDocument(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	var in documentInput
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	doc, err := in.normalize()
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	return h.ok(c, fiber.StatusOK, "Document updated", s.SetDocument(doc))
}

func (h *Handler) SelectSessionTemplate(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	state, err := s.SelectTemplate(c.UserContext(), utils.CopyString(c.Params("templateId")))
	if err != nil {
		return h.sessionError(c, err)
	}
	return h.ok(c, fiber.StatusOK, "Template selected", state)
}

func (h *Handler) RetrySession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	state, err := s.Retry(c.UserContext())
	if err != nil {
		return h.sessionError(c, err)
	}
	return h.ok(c, fiber.StatusOK, "Template reloaded", state)
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	if !h.sessions.Delete(c.Params("id")) {
		return h.fail(c, fiber.StatusNotFound, "Session not found", nil)
	}
	return h.ok(c, fiber.StatusOK, "Session closed", nil)
}

func (h *Handler) sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrSuperseded) {
		return h.fail(c, fiber.StatusConflict, "A newer template selection is in progress", err)
	}
	return h.fail(c, fiber.StatusInternalServerError, "Session update failed", err)
}
