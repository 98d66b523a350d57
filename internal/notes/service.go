package notes

import (
	"context"

	"proptrack-backend/internal/models"
	"proptrack-backend/internal/pkg/listquery"
	"proptrack-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// ListFilter extends the shared list params with exact-match parent filters.
type ListFilter struct {
	listquery.Params
	AssetID   string
	ProjectID string
	CaseID    string
}

func (s *Service) CreateNote(ctx context.Context, p CreatePayload) (*models.Note, error) {
	note, err := ValidateCreate(p)
	if err != nil {
		return nil, err
	}
	if note.AssetID != nil {
		if err := s.refExists(ctx, &models.Asset{}, "asset_id", *note.AssetID, ErrAssetNotFound); err != nil {
			return nil, err
		}
	}
	if note.ProjectID != nil {
		if err := s.refExists(ctx, &models.Project{}, "project_id", *note.ProjectID, ErrProjectNotFound); err != nil {
			return nil, err
		}
	}
	if note.CaseID != nil {
		if err := s.refExists(ctx, &models.Case{}, "case_id", *note.CaseID, ErrCaseNotFound); err != nil {
			return nil, err
		}
	}
	if err := s.DB.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, f ListFilter) ([]models.Note, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Note{})
	q = listquery.SearchScope(q, f.Search, "content")

	exact := []struct {
		column string
		value  string
	}{
		{"asset_id", f.AssetID},
		{"project_id", f.ProjectID},
		{"case_id", f.CaseID},
	}
	for _, e := range exact {
		if e.value == "" {
			continue
		}
		id, err := validation.ParseUUID(e.value)
		if err != nil {
			return nil, 0, listquery.ErrBadRefID
		}
		q = q.Where(e.column+" = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.Note
	if err := q.Order("created_at DESC").Offset(f.Offset()).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) GetNote(ctx context.Context, noteID uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := s.DB.WithContext(ctx).Where("note_id = ?", noteID).First(&note).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (s *Service) UpdateNote(ctx context.Context, noteID uuid.UUID, p UpdatePayload) (*models.Note, error) {
	updates, changes, err := ValidateUpdate(p)
	if err != nil {
		return nil, err
	}

	note, err := s.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	for column, change := range changes {
		if change.Clear {
			updates[column] = nil
			continue
		}
		switch column {
		case "asset_id":
			err = s.refExists(ctx, &models.Asset{}, "asset_id", change.ID, ErrAssetNotFound)
		case "project_id":
			err = s.refExists(ctx, &models.Project{}, "project_id", change.ID, ErrProjectNotFound)
		case "case_id":
			err = s.refExists(ctx, &models.Case{}, "case_id", change.ID, ErrCaseNotFound)
		}
		if err != nil {
			return nil, err
		}
		updates[column] = change.ID
	}
	if len(updates) == 0 {
		return note, nil
	}
	if err := s.DB.WithContext(ctx).Model(note).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetNote(ctx, noteID)
}

// DeleteNote removes the note. Notes have no dependents, so no cascade.
func (s *Service) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	note, err := s.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(note).Error
}

func (s *Service) refExists(ctx context.Context, model interface{}, column string, id uuid.UUID, notFound error) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(model).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}
