package assets

import (
	"context"
	"fmt"
	"testing"

	"proptrack-backend/internal/models"
	"proptrack-backend/internal/pkg/listquery"
	"proptrack-backend/internal/pkg/validation"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssetTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Asset{}, &models.Project{}, &models.Case{}, &models.Note{}))
	return &Service{DB: db}, db
}

func floatPtr(f float64) *float64 { return &f }

func TestCreateAsset_RequiresName(t *testing.T) {
	s, _ := setupAssetTest(t)
	_, err := s.CreateAsset(context.Background(), CreatePayload{Name: "   "})
	require.Error(t, err)
	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "name", fe[0].Field)
}

func TestCreateAsset_DefaultsStatusToActive(t *testing.T) {
	s, _ := setupAssetTest(t)
	asset, err := s.CreateAsset(context.Background(), CreatePayload{Name: "Lot 12 Warehouse"})
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusActive, asset.Status)
	assert.NotEqual(t, uuid.Nil, asset.AssetID)
}

func TestCreateAsset_RejectsUnknownStatus(t *testing.T) {
	s, _ := setupAssetTest(t)
	_, err := s.CreateAsset(context.Background(), CreatePayload{Name: "Lot 12", Status: "scrapped"})
	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "status", fe[0].Field)
}

func TestCreateAsset_GeoBoundaries(t *testing.T) {
	s, _ := setupAssetTest(t)
	ctx := context.Background()

	// Inclusive bounds accepted
	_, err := s.CreateAsset(ctx, CreatePayload{Name: "North pole", Latitude: floatPtr(90), Longitude: floatPtr(180)})
	require.NoError(t, err)
	_, err = s.CreateAsset(ctx, CreatePayload{Name: "South pole", Latitude: floatPtr(-90), Longitude: floatPtr(-180)})
	require.NoError(t, err)

	// Just outside rejected
	_, err = s.CreateAsset(ctx, CreatePayload{Name: "Bad lat", Latitude: floatPtr(90.0001)})
	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "latitude", fe[0].Field)

	_, err = s.CreateAsset(ctx, CreatePayload{Name: "Bad lat", Latitude: floatPtr(-90.0001)})
	require.Error(t, err)

	_, err = s.CreateAsset(ctx, CreatePayload{Name: "Bad lng", Longitude: floatPtr(180.5)})
	fe, ok = validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "longitude", fe[0].Field)
}

func TestCreateAsset_CollectsAllFieldErrors(t *testing.T) {
	s, _ := setupAssetTest(t)
	_, err := s.CreateAsset(context.Background(), CreatePayload{
		Name:        "",
		Status:      "bogus",
		Latitude:    floatPtr(120),
		MarketValue: floatPtr(-5),
	})
	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Len(t, fe, 4)
}

func TestListAssets_Pagination(t *testing.T) {
	s, _ := setupAssetTest(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		_, err := s.CreateAsset(ctx, CreatePayload{Name: fmt.Sprintf("Asset %02d", i)})
		require.NoError(t, err)
	}

	items, total, err := s.ListAssets(ctx, listquery.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, int64(15), total)
}

func TestListAssets_SearchAndStatus(t *testing.T) {
	s, _ := setupAssetTest(t)
	ctx := context.Background()
	_, err := s.CreateAsset(ctx, CreatePayload{Name: "Warehouse Alpha", Status: "active"})
	require.NoError(t, err)
	_, err = s.CreateAsset(ctx, CreatePayload{Name: "Warehouse Beta", Status: "retired"})
	require.NoError(t, err)
	_, err = s.CreateAsset(ctx, CreatePayload{Name: "Office Tower", Status: "active"})
	require.NoError(t, err)

	// Case-insensitive substring search
	items, total, err := s.ListAssets(ctx, listquery.Params{Page: 1, Limit: 10, Search: "warehouse"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	// Filters combine with AND
	items, total, err = s.ListAssets(ctx, listquery.Params{Page: 1, Limit: 10, Search: "warehouse", Status: "retired"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Warehouse Beta", items[0].Name)
}

func TestGetAsset_NotFound(t *testing.T) {
	s, _ := setupAssetTest(t)
	_, err := s.GetAsset(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestUpdateAsset_PartialUpdate(t *testing.T) {
	s, _ := setupAssetTest(t)
	ctx := context.Background()
	asset, err := s.CreateAsset(ctx, CreatePayload{Name: "Lot 7", Description: "original"})
	require.NoError(t, err)

	newName := "Lot 7 (resurveyed)"
	updated, err := s.UpdateAsset(ctx, asset.AssetID, UpdatePayload{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "original", updated.Description)
}

func TestDeleteAsset_CascadesToNull(t *testing.T) {
	s, db := setupAssetTest(t)
	ctx := context.Background()

	asset, err := s.CreateAsset(ctx, CreatePayload{Name: "Seized Lot"})
	require.NoError(t, err)

	now := asset.CreatedAt
	p1 := models.Project{Name: "Survey", Status: "active", AssetID: &asset.AssetID, AssignedAt: &now}
	p2 := models.Project{Name: "Fencing", Status: "planning", AssetID: &asset.AssetID, AssignedAt: &now}
	c1 := models.Case{Rtc: "RTC Branch 12", CaseNumber: "CV-2024-0042", AssetID: &asset.AssetID}
	n1 := models.Note{Content: "Survey scheduled", AssetID: &asset.AssetID}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)
	require.NoError(t, db.Create(&c1).Error)
	require.NoError(t, db.Create(&n1).Error)

	require.NoError(t, s.DeleteAsset(ctx, asset.AssetID))

	// Asset is gone
	_, err = s.GetAsset(ctx, asset.AssetID)
	assert.ErrorIs(t, err, ErrAssetNotFound)

	// Projects survive, unlinked with both columns cleared together
	var projects []models.Project
	require.NoError(t, db.Find(&projects).Error)
	require.Len(t, projects, 2)
	for _, p := range projects {
		assert.Nil(t, p.AssetID)
		assert.Nil(t, p.AssignedAt)
	}

	// Case and note survive with asset reference nulled
	var gotCase models.Case
	require.NoError(t, db.Where("case_id = ?", c1.CaseID).First(&gotCase).Error)
	assert.Nil(t, gotCase.AssetID)

	var gotNote models.Note
	require.NoError(t, db.Where("note_id = ?", n1.NoteID).First(&gotNote).Error)
	assert.Nil(t, gotNote.AssetID)
}

func TestDeleteAsset_NotFound(t *testing.T) {
	s, _ := setupAssetTest(t)
	err := s.DeleteAsset(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestMapMarkers_OnlyGeolocated(t *testing.T) {
	s, _ := setupAssetTest(t)
	ctx := context.Background()

	_, err := s.CreateAsset(ctx, CreatePayload{Name: "Mapped", Latitude: floatPtr(14.5995), Longitude: floatPtr(120.9842)})
	require.NoError(t, err)
	_, err = s.CreateAsset(ctx, CreatePayload{Name: "Unmapped"})
	require.NoError(t, err)

	markers, err := s.MapMarkers(ctx)
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, "Mapped", markers[0].Name)
	assert.InDelta(t, 14.5995, markers[0].Latitude, 0.0001)
	assert.InDelta(t, 120.9842, markers[0].Longitude, 0.0001)
}
