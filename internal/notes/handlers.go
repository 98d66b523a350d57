package notes

import (
	"errors"

	"proptrack-backend/internal/middleware"
	"proptrack-backend/internal/pkg/listquery"
	"proptrack-backend/internal/pkg/response"
	"proptrack-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// POST /api/v1/notes
func (h *Handlers) CreateNote(c *fiber.Ctx) error {
	var p CreatePayload
	if err := c.BodyParser(&p); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	note, err := h.Service.CreateNote(c.Context(), p)
	if err != nil {
		return fail(c, err)
	}
	return response.SuccessCreated(c, "Note created successfully", note, nil)
}

// GET /api/v1/notes
func (h *Handlers) ListNotes(c *fiber.Ctx) error {
	f := ListFilter{
		Params:    listquery.Parse(c),
		AssetID:   c.Query("asset_id"),
		ProjectID: c.Query("project_id"),
		CaseID:    c.Query("case_id"),
	}
	items, total, err := h.Service.ListNotes(c.Context(), f)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Notes fetched successfully", items, response.NewPageMeta(f.Page, f.Limit, total))
}

// GET /api/v1/notes/:id
func (h *Handlers) GetNote(c *fiber.Ctx) error {
	noteID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid note id", fiber.StatusBadRequest, nil)
	}
	note, err := h.Service.GetNote(c.Context(), noteID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Note fetched successfully", note, nil)
}

// PUT /api/v1/notes/:id
func (h *Handlers) UpdateNote(c *fiber.Ctx) error {
	noteID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid note id", fiber.StatusBadRequest, nil)
	}
	var p UpdatePayload
	if err := c.BodyParser(&p); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	note, err := h.Service.UpdateNote(c.Context(), noteID, p)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Note updated successfully", note, nil)
}

// DELETE /api/v1/notes/:id
func (h *Handlers) DeleteNote(c *fiber.Ctx) error {
	noteID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid note id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteNote(c.Context(), noteID); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Note deleted successfully", nil, nil)
}

func fail(c *fiber.Ctx, err error) error {
	if fe, ok := validation.AsFieldErrors(err); ok {
		return response.Error(c, "Validation failed", fiber.StatusBadRequest, fiber.Map{"errors": fe})
	}
	switch {
	case errors.Is(err, ErrNoteNotFound), errors.Is(err, ErrAssetNotFound),
		errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrCaseNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, listquery.ErrBadRefID):
		return response.Error(c, "Invalid reference filter", fiber.StatusBadRequest, nil)
	}
	log.Error().Str("trace_id", middleware.GetTraceID(c)).Err(err).Msg("Note operation failed")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
