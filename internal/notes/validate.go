package notes

import (
	"strings"

	"proptrack-backend/internal/models"
	"proptrack-backend/internal/pkg/validation"

	"github.com/google/uuid"
)

// CreatePayload is the request body for note creation.
type CreatePayload struct {
	Content   string  `json:"content"`
	AssetID   *string `json:"asset_id"`
	ProjectID *string `json:"project_id"`
	CaseID    *string `json:"case_id"`
}

// UpdatePayload is the partial request body for note updates. Nil pointers
// mean "leave unchanged"; an empty string clears a reference. The
// at-least-one-parent rule is a creation-time rule and is not re-checked here.
type UpdatePayload struct {
	Content   *string `json:"content"`
	AssetID   *string `json:"asset_id"`
	ProjectID *string `json:"project_id"`
	CaseID    *string `json:"case_id"`
}

// RefChange captures a requested nullable-reference transition.
type RefChange struct {
	Clear bool
	ID    uuid.UUID
}

// ValidateCreate checks the payload and returns a normalized Note ready for
// persistence, or the full list of field errors. A note with no parent
// reference at all is rejected with a single error on asset_id.
func ValidateCreate(p CreatePayload) (*models.Note, error) {
	var errs validation.FieldErrors

	content := strings.TrimSpace(p.Content)
	if content == "" {
		errs = errs.Add("content", "is required")
	}

	note := &models.Note{Content: content}

	if p.AssetID != nil && strings.TrimSpace(*p.AssetID) != "" {
		id, err := validation.ParseUUID(*p.AssetID)
		if err != nil {
			errs = errs.Add("asset_id", "must be a valid uuid")
		} else {
			note.AssetID = &id
		}
	}
	if p.ProjectID != nil && strings.TrimSpace(*p.ProjectID) != "" {
		id, err := validation.ParseUUID(*p.ProjectID)
		if err != nil {
			errs = errs.Add("project_id", "must be a valid uuid")
		} else {
			note.ProjectID = &id
		}
	}
	if p.CaseID != nil && strings.TrimSpace(*p.CaseID) != "" {
		id, err := validation.ParseUUID(*p.CaseID)
		if err != nil {
			errs = errs.Add("case_id", "must be a valid uuid")
		} else {
			note.CaseID = &id
		}
	}

	if len(errs) == 0 && note.AssetID == nil && note.ProjectID == nil && note.CaseID == nil {
		errs = errs.Add("asset_id", "note must reference at least one of asset_id, project_id or case_id")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return note, nil
}

// ValidateUpdate checks the provided fields and returns the column updates
// plus any requested reference transitions, or the full list of field errors.
func ValidateUpdate(p UpdatePayload) (map[string]interface{}, map[string]*RefChange, error) {
	var errs validation.FieldErrors
	updates := map[string]interface{}{}
	changes := map[string]*RefChange{}

	if p.Content != nil {
		content := strings.TrimSpace(*p.Content)
		if content == "" {
			errs = errs.Add("content", "must not be empty")
		} else {
			updates["content"] = content
		}
	}

	refs := []struct {
		field string
		value *string
	}{
		{"asset_id", p.AssetID},
		{"project_id", p.ProjectID},
		{"case_id", p.CaseID},
	}
	for _, ref := range refs {
		if ref.value == nil {
			continue
		}
		if strings.TrimSpace(*ref.value) == "" {
			changes[ref.field] = &RefChange{Clear: true}
			continue
		}
		id, err := validation.ParseUUID(*ref.value)
		if err != nil {
			errs = errs.Add(ref.field, "must be a valid uuid")
			continue
		}
		changes[ref.field] = &RefChange{ID: id}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return updates, changes, nil
}
