package cases

import (
	"context"

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

// ProjectSummary is the linked-project block attached to list items.
type ProjectSummary struct {
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
}

// ListItem is a case enriched with its linked asset and project; absent links
// are null.
type ListItem struct {
	models.Case
	Asset   *AssetSummary   `json:"asset"`
	Project *ProjectSummary `json:"project"`
}

// ListFilter extends the shared list params with the asset and project
// three-mode filters, applied independently.
type ListFilter struct {
	listquery.Params
	AssetID   string
	ProjectID string
}

func (s *Service) CreateCase(ctx context.Context, p CreatePayload) (*models.Case, error) {
	record, err := ValidateCreate(p)
	if err != nil {
		return nil, err
	}
	if record.AssetID != nil {
		if err := s.assetExists(ctx, *record.AssetID); err != nil {
			return nil, err
		}
	}
	if record.ProjectID != nil {
		if err := s.projectExists(ctx, *record.ProjectID); err != nil {
			return nil, err
		}
	}
	if err := s.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) ListCases(ctx context.Context, f ListFilter) ([]ListItem, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Case{})
	q = listquery.SearchScope(q, f.Search, "case_number", "rtc", "judge", "details")
	q, err := listquery.RefFilter(q, "asset_id", f.AssetID)
	if err != nil {
		return nil, 0, err
	}
	q, err = listquery.RefFilter(q, "project_id", f.ProjectID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.Case
	if err := q.Preload("Asset").Preload("Project").
		Order("created_at DESC").Offset(f.Offset()).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]ListItem, 0, len(rows))
	for _, r := range rows {
		item := ListItem{Case: r}
		if r.Asset != nil {
			item.Asset = &AssetSummary{AssetID: r.Asset.AssetID, Name: r.Asset.Name, Status: r.Asset.Status}
		}
		if r.Project != nil {
			item.Project = &ProjectSummary{ProjectID: r.Project.ProjectID, Name: r.Project.Name, Status: r.Project.Status}
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (s *Service) GetCase(ctx context.Context, caseID uuid.UUID) (*models.Case, error) {
	var record models.Case
	if err := s.DB.WithContext(ctx).Where("case_id = ?", caseID).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *Service) UpdateCase(ctx context.Context, caseID uuid.UUID, p UpdatePayload) (*models.Case, error) {
	updates, assetChange, projectChange, err := ValidateUpdate(p)
	if err != nil {
		return nil, err
	}

	record, err := s.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if assetChange != nil {
		if assetChange.Clear {
			updates["asset_id"] = nil
		} else {
			if err := s.assetExists(ctx, assetChange.ID); err != nil {
				return nil, err
			}
			updates["asset_id"] = assetChange.ID
		}
	}
	if projectChange != nil {
		if projectChange.Clear {
			updates["project_id"] = nil
		} else {
			if err := s.projectExists(ctx, projectChange.ID); err != nil {
				return nil, err
			}
			updates["project_id"] = projectChange.ID
		}
	}
	if len(updates) == 0 {
		return record, nil
	}
	if err := s.DB.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetCase(ctx, caseID)
}

// DeleteCase removes the case and nulls case_id on every referencing Note in
// the same transaction.
func (s *Service) DeleteCase(ctx context.Context, caseID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.Case
		if err := tx.Where("case_id = ?", caseID).First(&record).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCaseNotFound
			}
			return err
		}
		if err := tx.Model(&models.Note{}).Where("case_id = ?", caseID).
			Update("case_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&record).Error
	})
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

func (s *Service) projectExists(ctx context.Context, projectID uuid.UUID) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Project{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}
