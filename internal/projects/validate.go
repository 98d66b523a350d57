package projects

import (
	"strings"

	"proptrack-backend/internal/models"
	"proptrack-backend/internal/pkg/validation"

	"github.com/google/uuid"
)

// CreatePayload is the request body for project creation.
type CreatePayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	AssetID     *string `json:"asset_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// UpdatePayload is the partial request body for project updates. Nil pointers
// mean "leave unchanged"; an empty string clears a nullable field.
type UpdatePayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssetID     *string `json:"asset_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// AssetRefChange captures a requested asset_id transition from an update
// payload: either clear the assignment or move it to ID.
type AssetRefChange struct {
	Clear bool
	ID    uuid.UUID
}

// ValidateCreate checks the payload and returns a normalized Project ready
// for persistence, or the full list of field errors. AssignedAt is stamped by
// the service once the referenced asset is known to exist.
func ValidateCreate(p CreatePayload) (*models.Project, error) {
	var errs validation.FieldErrors

	name := strings.TrimSpace(p.Name)
	if name == "" {
		errs = errs.Add("name", "is required")
	}

	status := strings.TrimSpace(p.Status)
	if status == "" {
		status = models.ProjectStatusPlanning
	} else if !validation.InStatusSet(status, models.ProjectStatuses) {
		errs = errs.Add("status", validation.StatusSetMessage(models.ProjectStatuses))
	}

	project := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(p.Description),
		Status:      status,
	}

	if p.AssetID != nil && strings.TrimSpace(*p.AssetID) != "" {
		id, err := validation.ParseUUID(*p.AssetID)
		if err != nil {
			errs = errs.Add("asset_id", "must be a valid uuid")
		} else {
			project.AssetID = &id
		}
	}
	if p.StartDate != nil && strings.TrimSpace(*p.StartDate) != "" {
		t, err := validation.ParseDate(*p.StartDate)
		if err != nil {
			errs = errs.Add("start_date", err.Error())
		} else {
			project.StartDate = &t
		}
	}
	if p.EndDate != nil && strings.TrimSpace(*p.EndDate) != "" {
		t, err := validation.ParseDate(*p.EndDate)
		if err != nil {
			errs = errs.Add("end_date", err.Error())
		} else {
			project.EndDate = &t
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return project, nil
}

// ValidateUpdate checks the provided fields and returns the column updates
// plus any requested assignment transition, or the full list of field errors.
func ValidateUpdate(p UpdatePayload) (map[string]interface{}, *AssetRefChange, error) {
	var errs validation.FieldErrors
	updates := map[string]interface{}{}
	var change *AssetRefChange

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			errs = errs.Add("name", "must not be empty")
		} else {
			updates["name"] = name
		}
	}
	if p.Description != nil {
		updates["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		if !validation.InStatusSet(*p.Status, models.ProjectStatuses) {
			errs = errs.Add("status", validation.StatusSetMessage(models.ProjectStatuses))
		} else {
			updates["status"] = *p.Status
		}
	}
	if p.AssetID != nil {
		if strings.TrimSpace(*p.AssetID) == "" {
			change = &AssetRefChange{Clear: true}
		} else {
			id, err := validation.ParseUUID(*p.AssetID)
			if err != nil {
				errs = errs.Add("asset_id", "must be a valid uuid")
			} else {
				change = &AssetRefChange{ID: id}
			}
		}
	}
	if p.StartDate != nil {
		if strings.TrimSpace(*p.StartDate) == "" {
			updates["start_date"] = nil
		} else {
			t, err := validation.ParseDate(*p.StartDate)
			if err != nil {
				errs = errs.Add("start_date", err.Error())
			} else {
				updates["start_date"] = t
			}
		}
	}
	if p.EndDate != nil {
		if strings.TrimSpace(*p.EndDate) == "" {
			updates["end_date"] = nil
		} else {
			t, err := validation.ParseDate(*p.EndDate)
			if err != nil {
				errs = errs.Add("end_date", err.Error())
			} else {
				updates["end_date"] = t
			}
		}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return updates, change, nil
}
