package projects

import (
	"context"
	"time"

	"proptrack-backend/internal/models"
	"proptrack-backend/internal/pkg/listquery"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// AssetSummary is the linked-asset block attached to list items.
type AssetSummary struct {
	AssetID uuid.UUID `json:"asset_id"`
	Name    string    `json:"name"`
	Status  string    `json:"status"`
}

// ListItem is a project enriched with its linked asset, or null when
// unassigned.
type ListItem struct {
	models.Project
	Asset *AssetSummary `json:"asset"`
}

// ListFilter extends the shared list params with the asset three-mode filter.
type ListFilter struct {
	listquery.Params
	AssetID string
}

func (s *Service) CreateProject(ctx context.Context, p CreatePayload) (*models.Project, error) {
	project, err := ValidateCreate(p)
	if err != nil {
		return nil, err
	}
	if project.AssetID != nil {
		if err := s.assetExists(ctx, *project.AssetID); err != nil {
			return nil, err
		}
		now := time.Now()
		project.AssignedAt = &now
	}
	if err := s.DB.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) ListProjects(ctx context.Context, f ListFilter) ([]ListItem, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Project{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = listquery.SearchScope(q, f.Search, "name", "description")
	q, err := listquery.RefFilter(q, "asset_id", f.AssetID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.Project
	if err := q.Preload("Asset").Order("created_at DESC").Offset(f.Offset()).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]ListItem, 0, len(rows))
	for _, p := range rows {
		item := ListItem{Project: p}
		if p.Asset != nil {
			item.Asset = &AssetSummary{AssetID: p.Asset.AssetID, Name: p.Asset.Name, Status: p.Asset.Status}
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (s *Service) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a partial update. An asset_id transition always moves
// assigned_at with it in the same statement: clearing nulls both, setting
// stamps assigned_at to now (a direct move between assets refreshes it).
func (s *Service) UpdateProject(ctx context.Context, projectID uuid.UUID, p UpdatePayload) (*models.Project, error) {
	updates, change, err := ValidateUpdate(p)
	if err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if change != nil {
		if change.Clear {
			updates["asset_id"] = nil
			updates["assigned_at"] = nil
		} else {
			if err := s.assetExists(ctx, change.ID); err != nil {
				return nil, err
			}
			updates["asset_id"] = change.ID
			updates["assigned_at"] = time.Now()
		}
	}
	if len(updates) == 0 {
		return project, nil
	}
	if err := s.DB.WithContext(ctx).Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetProject(ctx, projectID)
}

// DeleteProject removes the project and nulls project_id on every referencing
// Case and Note in the same transaction.
func (s *Service) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("project_id = ?", projectID).First(&project).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrProjectNotFound
			}
			return err
		}
		if err := tx.Model(&models.Case{}).Where("project_id = ?", projectID).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Note{}).Where("project_id = ?", projectID).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// AssignAsset assigns the project to the asset, stamping assigned_at. A
// project already assigned elsewhere is moved and assigned_at refreshed.
func (s *Service) AssignAsset(ctx context.Context, assetID, projectID uuid.UUID) (*models.Project, error) {
	if err := s.assetExists(ctx, assetID); err != nil {
		return nil, err
	}
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(project).
		Updates(map[string]interface{}{"asset_id": assetID, "assigned_at": now}).Error; err != nil {
		return nil, err
	}
	return s.GetProject(ctx, projectID)
}

// UnassignAsset clears the assignment. Fails with ErrNotAssigned when the
// project is not currently assigned to the given asset.
func (s *Service) UnassignAsset(ctx context.Context, assetID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.AssetID == nil || *project.AssetID != assetID {
		return nil, ErrNotAssigned
	}
	if err := s.DB.WithContext(ctx).Model(project).
		Updates(map[string]interface{}{"asset_id": nil, "assigned_at": nil}).Error; err != nil {
		return nil, err
	}
	return s.GetProject(ctx, projectID)
}

func (s *Service) assetExists(ctx context.Context, assetID uuid.UUID) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Asset{}).Where("asset_id = ?", assetID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrAssetNotFound
	}
	return nil
}
