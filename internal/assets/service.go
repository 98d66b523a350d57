package assets

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

func (s *Service) CreateAsset(ctx context.Context, p CreatePayload) (*models.Asset, error) {
	asset, err := ValidateCreate(p)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Service) ListAssets(ctx context.Context, p listquery.Params) ([]models.Asset, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Asset{})
	if p.Status != "" {
		q = q.Where("status = ?", p.Status)
	}
	q = listquery.SearchScope(q, p.Search, "name", "description", "address", "declared_owner")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var assets []models.Asset
	if err := q.Order("created_at DESC").Offset(p.Offset()).Limit(p.Limit).Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

func (s *Service) GetAsset(ctx context.Context, assetID uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := s.DB.WithContext(ctx).Where("asset_id = ?", assetID).First(&asset).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (s *Service) UpdateAsset(ctx context.Context, assetID uuid.UUID, p UpdatePayload) (*models.Asset, error) {
	updates, err := ValidateUpdate(p)
	if err != nil {
		return nil, err
	}

	asset, err := s.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return asset, nil
	}
	if err := s.DB.WithContext(ctx).Model(asset).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetAsset(ctx, assetID)
}

// DeleteAsset removes the asset and degrades every dependent reference to
// null in the same transaction: referencing Projects lose asset_id and
// assigned_at together, referencing Cases and Notes lose asset_id. Dependents
// are never deleted and never block the delete.
func (s *Service) DeleteAsset(ctx context.Context, assetID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("asset_id = ?", assetID).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrAssetNotFound
			}
			return err
		}
		if err := tx.Model(&models.Project{}).Where("asset_id = ?", assetID).
			Updates(map[string]interface{}{"asset_id": nil, "assigned_at": nil}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Case{}).Where("asset_id = ?", assetID).
			Update("asset_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Note{}).Where("asset_id = ?", assetID).
			Update("asset_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&asset).Error
	})
}

// MapMarker is the shape consumed by the map view.
type MapMarker struct {
	AssetID   uuid.UUID `json:"asset_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// MapMarkers returns every asset that has a complete geolocation.
func (s *Service) MapMarkers(ctx context.Context) ([]MapMarker, error) {
	var assets []models.Asset
	if err := s.DB.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, err
	}
	markers := make([]MapMarker, 0, len(assets))
	for _, a := range assets {
		markers = append(markers, MapMarker{
			AssetID:   a.AssetID,
			Name:      a.Name,
			Status:    a.Status,
			Latitude:  *a.Latitude,
			Longitude: *a.Longitude,
		})
	}
	return markers, nil
}
