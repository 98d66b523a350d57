package cases

import (
	"context"
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

func setupCaseTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Asset{}, &models.Project{}, &models.Case{}, &models.Note{}))
	return &Service{DB: db}, db
}

func strPtr(s string) *string { return &s }

func TestCreateCase_RequiresRtcAndCaseNumber(t *testing.T) {
	s, _ := setupCaseTest(t)
	_, err := s.CreateCase(context.Background(), CreatePayload{})
	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	require.Len(t, fe, 2)
	assert.Equal(t, "rtc", fe[0].Field)
	assert.Equal(t, "case_number", fe[1].Field)
}

func TestCreateCase_UnknownReferences(t *testing.T) {
	s, _ := setupCaseTest(t)
	ctx := context.Background()

	_, err := s.CreateCase(ctx, CreatePayload{
		Rtc: "RTC Branch 5", CaseNumber: "CV-2024-0001",
		AssetID: strPtr(uuid.New().String()),
	})
	assert.ErrorIs(t, err, ErrAssetNotFound)

	_, err = s.CreateCase(ctx, CreatePayload{
		Rtc: "RTC Branch 5", CaseNumber: "CV-2024-0001",
		ProjectID: strPtr(uuid.New().String()),
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestCreateCase_WithBothReferences(t *testing.T) {
	s, db := setupCaseTest(t)
	ctx := context.Background()

	asset := models.Asset{Name: "Lot 1", Status: models.AssetStatusActive}
	project := models.Project{Name: "Titling", Status: models.ProjectStatusPlanning}
	require.NoError(t, db.Create(&asset).Error)
	require.NoError(t, db.Create(&project).Error)

	record, err := s.CreateCase(ctx, CreatePayload{
		Rtc:        "RTC Branch 7",
		CaseNumber: "CV-2024-0002",
		Judge:      strPtr("Hon. R. Santos"),
		AssetID:    strPtr(asset.AssetID.String()),
		ProjectID:  strPtr(project.ProjectID.String()),
	})
	require.NoError(t, err)
	require.NotNil(t, record.AssetID)
	require.NotNil(t, record.ProjectID)
	assert.Equal(t, asset.AssetID, *record.AssetID)
	assert.Equal(t, project.ProjectID, *record.ProjectID)
	require.NotNil(t, record.Judge)
	assert.Equal(t, "Hon. R. Santos", *record.Judge)
}

func TestListCases_IndependentThreeModeFilters(t *testing.T) {
	s, db := setupCaseTest(t)
	ctx := context.Background()

	asset := models.Asset{Name: "Lot 2", Status: models.AssetStatusActive}
	project := models.Project{Name: "Survey", Status: models.ProjectStatusActive}
	require.NoError(t, db.Create(&asset).Error)
	require.NoError(t, db.Create(&project).Error)

	seed := []models.Case{
		{Rtc: "RTC 1", CaseNumber: "A-1", AssetID: &asset.AssetID, ProjectID: &project.ProjectID},
		{Rtc: "RTC 1", CaseNumber: "A-2", AssetID: &asset.AssetID},
		{Rtc: "RTC 1", CaseNumber: "A-3", ProjectID: &project.ProjectID},
		{Rtc: "RTC 1", CaseNumber: "A-4"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	base := listquery.Params{Page: 1, Limit: 10}

	_, total, err := s.ListCases(ctx, ListFilter{Params: base, AssetID: listquery.RefAssigned})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = s.ListCases(ctx, ListFilter{Params: base, ProjectID: listquery.RefUnassigned})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Both filters combine with AND
	items, total, err := s.ListCases(ctx, ListFilter{
		Params:    base,
		AssetID:   asset.AssetID.String(),
		ProjectID: listquery.RefUnassigned,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "A-2", items[0].CaseNumber)

	_, _, err = s.ListCases(ctx, ListFilter{Params: base, ProjectID: "not-a-uuid"})
	assert.ErrorIs(t, err, listquery.ErrBadRefID)
}

func TestListCases_EnrichesLinkedRecords(t *testing.T) {
	s, db := setupCaseTest(t)
	ctx := context.Background()

	asset := models.Asset{Name: "Lot 3", Status: models.AssetStatusActive}
	require.NoError(t, db.Create(&asset).Error)
	require.NoError(t, db.Create(&models.Case{Rtc: "RTC 2", CaseNumber: "B-1", AssetID: &asset.AssetID}).Error)
	require.NoError(t, db.Create(&models.Case{Rtc: "RTC 2", CaseNumber: "B-2"}).Error)

	items, _, err := s.ListCases(ctx, ListFilter{Params: listquery.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		switch item.CaseNumber {
		case "B-1":
			require.NotNil(t, item.Asset)
			assert.Equal(t, "Lot 3", item.Asset.Name)
		case "B-2":
			assert.Nil(t, item.Asset)
		}
		assert.Nil(t, item.Project)
	}
}

func TestUpdateCase_ClearsAndRelinks(t *testing.T) {
	s, db := setupCaseTest(t)
	ctx := context.Background()

	asset := models.Asset{Name: "Lot 4", Status: models.AssetStatusActive}
	require.NoError(t, db.Create(&asset).Error)

	record, err := s.CreateCase(ctx, CreatePayload{
		Rtc: "RTC 3", CaseNumber: "C-1",
		AssetID: strPtr(asset.AssetID.String()),
	})
	require.NoError(t, err)

	// Empty string clears the reference
	updated, err := s.UpdateCase(ctx, record.CaseID, UpdatePayload{AssetID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.AssetID)

	// Relink, and a relink to a missing asset fails
	updated, err = s.UpdateCase(ctx, record.CaseID, UpdatePayload{AssetID: strPtr(asset.AssetID.String())})
	require.NoError(t, err)
	require.NotNil(t, updated.AssetID)

	_, err = s.UpdateCase(ctx, record.CaseID, UpdatePayload{AssetID: strPtr(uuid.New().String())})
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestDeleteCase_CascadesToNotes(t *testing.T) {
	s, db := setupCaseTest(t)
	ctx := context.Background()

	record, err := s.CreateCase(ctx, CreatePayload{Rtc: "RTC 4", CaseNumber: "D-1"})
	require.NoError(t, err)

	linked := models.Note{Content: "Hearing moved", CaseID: &record.CaseID}
	require.NoError(t, db.Create(&linked).Error)

	require.NoError(t, s.DeleteCase(ctx, record.CaseID))

	_, err = s.GetCase(ctx, record.CaseID)
	assert.ErrorIs(t, err, ErrCaseNotFound)

	var gotNote models.Note
	require.NoError(t, db.Where("note_id = ?", linked.NoteID).First(&gotNote).Error)
	assert.Nil(t, gotNote.CaseID)
	assert.Equal(t, "Hearing moved", gotNote.Content)
}

func TestDeleteCase_NotFound(t *testing.T) {
	s, _ := setupCaseTest(t)
	err := s.DeleteCase(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCaseNotFound)
}
