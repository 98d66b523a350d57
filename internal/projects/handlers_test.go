package projects

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"proptrack-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProjectApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Asset{}, &models.Project{}, &models.Case{}, &models.Note{}))

	h := &Handlers{Service: &Service{DB: db}}
	app := fiber.New()
	app.Post("/api/v1/projects", h.CreateProject)
	app.Get("/api/v1/projects", h.ListProjects)
	app.Post("/api/v1/projects/assign-asset", h.AssignAsset)
	app.Post("/api/v1/projects/unassign-asset", h.UnassignAsset)
	app.Get("/api/v1/projects/:id", h.GetProject)
	app.Put("/api/v1/projects/:id", h.UpdateProject)
	app.Delete("/api/v1/projects/:id", h.DeleteProject)
	return app, db
}

func postProjectJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}) *http.Response {
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAssignAssetEndpoint(t *testing.T) {
	app, db := setupProjectApp(t)

	asset := models.Asset{Name: "Lot H", Status: models.AssetStatusActive}
	project := models.Project{Name: "Grading", Status: models.ProjectStatusPlanning}
	require.NoError(t, db.Create(&asset).Error)
	require.NoError(t, db.Create(&project).Error)

	resp := postProjectJSON(t, app, "/api/v1/projects/assign-asset", map[string]interface{}{
		"asset_id":   asset.AssetID.String(),
		"project_id": project.ProjectID.String(),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Data models.Project `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NotNil(t, envelope.Data.AssetID)
	assert.Equal(t, asset.AssetID, *envelope.Data.AssetID)
	assert.NotNil(t, envelope.Data.AssignedAt)
}

func TestAssignAssetEndpoint_RequiresBothIDs(t *testing.T) {
	app, _ := setupProjectApp(t)

	resp := postProjectJSON(t, app, "/api/v1/projects/assign-asset", map[string]interface{}{
		"asset_id": uuid.New().String(),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAssignAssetEndpoint_UnknownAsset(t *testing.T) {
	app, db := setupProjectApp(t)

	project := models.Project{Name: "Grading", Status: models.ProjectStatusPlanning}
	require.NoError(t, db.Create(&project).Error)

	resp := postProjectJSON(t, app, "/api/v1/projects/assign-asset", map[string]interface{}{
		"asset_id":   uuid.New().String(),
		"project_id": project.ProjectID.String(),
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUnassignAssetEndpoint_NotAssigned(t *testing.T) {
	app, db := setupProjectApp(t)

	asset := models.Asset{Name: "Lot I", Status: models.AssetStatusActive}
	project := models.Project{Name: "Grading", Status: models.ProjectStatusPlanning}
	require.NoError(t, db.Create(&asset).Error)
	require.NoError(t, db.Create(&project).Error)

	resp := postProjectJSON(t, app, "/api/v1/projects/unassign-asset", map[string]interface{}{
		"asset_id":   asset.AssetID.String(),
		"project_id": project.ProjectID.String(),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListProjects_BadAssetFilter(t *testing.T) {
	app, _ := setupProjectApp(t)

	req := httptest.NewRequest("GET", "/api/v1/projects?asset_id=bogus", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListProjects_UnassignedFilter(t *testing.T) {
	app, db := setupProjectApp(t)

	asset := models.Asset{Name: "Lot J", Status: models.AssetStatusActive}
	require.NoError(t, db.Create(&asset).Error)
	now := asset.CreatedAt
	require.NoError(t, db.Create(&models.Project{Name: "Linked", Status: "active", AssetID: &asset.AssetID, AssignedAt: &now}).Error)
	require.NoError(t, db.Create(&models.Project{Name: "Floating", Status: "planning"}).Error)

	req := httptest.NewRequest("GET", "/api/v1/projects?asset_id=unassigned", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Data []struct {
			Name  string      `json:"name"`
			Asset interface{} `json:"asset"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Floating", envelope.Data[0].Name)
	assert.Nil(t, envelope.Data[0].Asset)
}
