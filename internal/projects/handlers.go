package projects

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

// POST /api/v1/projects
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	var p CreatePayload
	if err := c.BodyParser(&p); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.CreateProject(c.Context(), p)
	if err != nil {
		return fail(c, err)
	}
	return response.SuccessCreated(c, "Project created successfully", project, nil)
}

// GET /api/v1/projects
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	f := ListFilter{
		Params:  listquery.Parse(c),
		AssetID: c.Query("asset_id"),
	}
	items, total, err := h.Service.ListProjects(c.Context(), f)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Projects fetched successfully", items, response.NewPageMeta(f.Page, f.Limit, total))
}

// GET /api/v1/projects/:id
func (h *Handlers) GetProject(c *fiber.Ctx) error {
	projectID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.GetProject(c.Context(), projectID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Project fetched successfully", project, nil)
}

// PUT /api/v1/projects/:id
func (h *Handlers) UpdateProject(c *fiber.Ctx) error {
	projectID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	var p UpdatePayload
	if err := c.BodyParser(&p); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.UpdateProject(c.Context(), projectID, p)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Project updated successfully", project, nil)
}

// DELETE /api/v1/projects/:id
func (h *Handlers) DeleteProject(c *fiber.Ctx) error {
	projectID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteProject(c.Context(), projectID); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Project deleted successfully", nil, nil)
}

type assignRequest struct {
	AssetID   string `json:"asset_id"`
	ProjectID string `json:"project_id"`
}

func (r assignRequest) ids() (assetID, projectID string, ok bool) {
	return r.AssetID, r.ProjectID, r.AssetID != "" && r.ProjectID != ""
}

// POST /api/v1/projects/assign-asset
func (h *Handlers) AssignAsset(c *fiber.Ctx) error {
	var body assignRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "asset_id and project_id are required", fiber.StatusBadRequest, nil)
	}
	rawAsset, rawProject, ok := body.ids()
	if !ok {
		return response.Error(c, "asset_id and project_id are required", fiber.StatusBadRequest, nil)
	}
	assetID, err := validation.ParseUUID(rawAsset)
	if err != nil {
		return response.Error(c, "Invalid asset id", fiber.StatusBadRequest, nil)
	}
	projectID, err := validation.ParseUUID(rawProject)
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.AssignAsset(c.Context(), assetID, projectID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Asset assigned to project successfully", project, nil)
}

// POST /api/v1/projects/unassign-asset
func (h *Handlers) UnassignAsset(c *fiber.Ctx) error {
	var body assignRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "asset_id and project_id are required", fiber.StatusBadRequest, nil)
	}
	rawAsset, rawProject, ok := body.ids()
	if !ok {
		return response.Error(c, "asset_id and project_id are required", fiber.StatusBadRequest, nil)
	}
	assetID, err := validation.ParseUUID(rawAsset)
	if err != nil {
		return response.Error(c, "Invalid asset id", fiber.StatusBadRequest, nil)
	}
	projectID, err := validation.ParseUUID(rawProject)
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.UnassignAsset(c.Context(), assetID, projectID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Asset unassigned from project successfully", project, nil)
}

func fail(c *fiber.Ctx, err error) error {
	if fe, ok := validation.AsFieldErrors(err); ok {
		return response.Error(c, "Validation failed", fiber.StatusBadRequest, fiber.Map{"errors": fe})
	}
	switch {
	case errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrAssetNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, ErrNotAssigned):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, listquery.ErrBadRefID):
		return response.Error(c, "Invalid asset_id filter", fiber.StatusBadRequest, nil)
	}
	log.Error().Str("trace_id", middleware.GetTraceID(c)).Err(err).Msg("Project operation failed")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
