package assets

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

// POST /api/v1/assets
func (h *Handlers) CreateAsset(c *fiber.Ctx) error {
	var p CreatePayload
	if err := c.BodyParser(&p); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	asset, err := h.Service.CreateAsset(c.Context(), p)
	if err != nil {
		return fail(c, err)
	}
	return response.SuccessCreated(c, "Asset created successfully", asset, nil)
}

// GET /api/v1/assets
func (h *Handlers) ListAssets(c *fiber.Ctx) error {
	p := listquery.Parse(c)
	assets, total, err := h.Service.ListAssets(c.Context(), p)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Assets fetched successfully", assets, response.NewPageMeta(p.Page, p.Limit, total))
}

// GET /api/v1/assets/map-markers
func (h *Handlers) MapMarkers(c *fiber.Ctx) error {
	markers, err := h.Service.MapMarkers(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Map markers fetched successfully", markers, nil)
}

// GET /api/v1/assets/:id
func (h *Handlers) GetAsset(c *fiber.Ctx) error {
	assetID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid asset id", fiber.StatusBadRequest, nil)
	}
	asset, err := h.Service.GetAsset(c.Context(), assetID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Asset fetched successfully", asset, nil)
}

// PUT /api/v1/assets/:id
func (h *Handlers) UpdateAsset(c *fiber.Ctx) error {
	assetID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid asset id", fiber.StatusBadRequest, nil)
	}
	var p UpdatePayload
	if err := c.BodyParser(&p); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	asset, err := h.Service.UpdateAsset(c.Context(), assetID, p)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Asset updated successfully", asset, nil)
}

// DELETE /api/v1/assets/:id
func (h *Handlers) DeleteAsset(c *fiber.Ctx) error {
	assetID, err := validation.ParseUUID(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid asset id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteAsset(c.Context(), assetID); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Asset deleted successfully", nil, nil)
}

func fail(c *fiber.Ctx, err error) error {
	if fe, ok := validation.AsFieldErrors(err); ok {
		return response.Error(c, "Validation failed", fiber.StatusBadRequest, fiber.Map{"errors": fe})
	}
	if errors.Is(err, ErrAssetNotFound) {
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	}
	log.Error().Str("trace_id", middleware.GetTraceID(c)).Err(err).Msg("Asset operation failed")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
