package cases

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

// POST /api/v1/cases
func (h *Handlers) CreateCase(c *fiber.Ctx) error {
	var p CreatePayload
	if err := c.BodyParser(&p); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	record, err := h.Service.CreateCase(c.Context(), p)
	if err != nil {
		return fail(c, err)
	}
	return response.SuccessCreated(c, "Case created successfully", record, nil)
}

// GET /api/v1/cases
func (h *Handlers) ListCases(c *fiber.Ctx) error {
	f := ListFilter{
		Params:    listquery.Parse(c),
		AssetID:   c.Query("asset_id"),
		ProjectID: c.Query("project_id"),
	}
	items, total, err := h.Service.ListCases(c.Context(), f)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Cases fetched successfully", items, response.NewPageMeta(f.Page, f.Limit, total))
}

// GET /api/v1/cases/:id
func (h *Handlers) GetCase(c *fiber.Ctx) error {
	caseID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid case id", fiber.StatusBadRequest, nil)
	}
	record, err := h.Service.GetCase(c.Context(), caseID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Case fetched successfully", record, nil)
}

// PUT /api/v1/cases/:id
func (h *Handlers) UpdateCase(c *fiber.Ctx) error {
	caseID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid case id", fiber.StatusBadRequest, nil)
	}
	var p UpdatePayload
	if err := c.BodyParser(&p); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	record, err := h.Service.UpdateCase(c.Context(), caseID, p)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Case updated successfully", record, nil)
}

// DELETE /api/v1/cases/:id
func (h *Handlers) DeleteCase(c *fiber.Ctx) error {
	caseID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid case id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteCase(c.Context(), caseID); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Case deleted successfully", nil, nil)
}

func fail(c *fiber.Ctx, err error) error {
	if fe, ok := validation.AsFieldErrors(err); ok {
		return response.Error(c, "Validation failed", fiber.StatusBadRequest, fiber.Map{"errors": fe})
	}
	switch {
	case errors.Is(err, ErrCaseNotFound), errors.Is(err, ErrAssetNotFound), errors.Is(err, ErrProjectNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, listquery.ErrBadRefID):
		return response.Error(c, "Invalid reference filter", fiber.StatusBadRequest, nil)
	}
	log.Error().Str("trace_id", middleware.GetTraceID(c)).Err(err).Msg("Case operation failed")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
