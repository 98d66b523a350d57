package cases

import (
	"strings"

	"proptrack-backend/internal/models"
	"proptrack-backend/internal/pkg/validation"

	"github.com/google/uuid"
)

// CreatePayload is the request body for case creation.
type CreatePayload struct {
	Rtc        string  `json:"rtc"`
	CaseNumber string  `json:"case_number"`
	Judge      *string `json:"judge"`
	Details    *string `json:"details"`
	AssetID    *string `json:"asset_id"`
	ProjectID  *string `json:"project_id"`
}

// UpdatePayload is the partial request body for case updates. Nil pointers
// mean "leave unchanged"; an empty string clears a nullable field.
type UpdatePayload struct {
	Rtc        *string `json:"rtc"`
	CaseNumber *string `json:"case_number"`
	Judge      *string `json:"judge"`
	Details    *string `json:"details"`
	AssetID    *string `json:"asset_id"`
	ProjectID  *string `json:"project_id"`
}

// RefChange captures a requested nullable-reference transition.
type RefChange struct {
	Clear bool
	ID    uuid.UUID
}

// ValidateCreate checks the payload and returns a normalized Case ready for
// persistence, or the full list of field errors.
func ValidateCreate(p CreatePayload) (*models.Case, error) {
	var errs validation.FieldErrors

	rtc := strings.TrimSpace(p.Rtc)
	if rtc == "" {
		errs = errs.Add("rtc", "is required")
	}
	caseNumber := strings.TrimSpace(p.CaseNumber)
	if caseNumber == "" {
		errs = errs.Add("case_number", "is required")
	}

	record := &models.Case{
		Rtc:        rtc,
		CaseNumber: caseNumber,
	}
	if p.Judge != nil && strings.TrimSpace(*p.Judge) != "" {
		judge := strings.TrimSpace(*p.Judge)
		record.Judge = &judge
	}
	if p.Details != nil && strings.TrimSpace(*p.Details) != "" {
		details := strings.TrimSpace(*p.Details)
		record.Details = &details
	}
	if p.AssetID != nil && strings.TrimSpace(*p.AssetID) != "" {
		id, err := validation.ParseUUID(*p.AssetID)
		if err != nil {
			errs = errs.Add("asset_id", "must be a valid uuid")
		} else {
			record.AssetID = &id
		}
	}
	if p.ProjectID != nil && strings.TrimSpace(*p.ProjectID) != "" {
		id, err := validation.ParseUUID(*p.ProjectID)
		if err != nil {
			errs = errs.Add("project_id", "must be a valid uuid")
		} else {
			record.ProjectID = &id
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return record, nil
}

// ValidateUpdate checks the provided fields and returns the column updates
// plus any requested reference transitions, or the full list of field errors.
func ValidateUpdate(p UpdatePayload) (map[string]interface{}, *RefChange, *RefChange, error) {
	var errs validation.FieldErrors
	updates := map[string]interface{}{}
	var assetChange, projectChange *RefChange

	if p.Rtc != nil {
		rtc := strings.TrimSpace(*p.Rtc)
		if rtc == "" {
			errs = errs.Add("rtc", "must not be empty")
		} else {
			updates["rtc"] = rtc
		}
	}
	if p.CaseNumber != nil {
		n := strings.TrimSpace(*p.CaseNumber)
		if n == "" {
			errs = errs.Add("case_number", "must not be empty")
		} else {
			updates["case_number"] = n
		}
	}
	if p.Judge != nil {
		if strings.TrimSpace(*p.Judge) == "" {
			updates["judge"] = nil
		} else {
			updates["judge"] = strings.TrimSpace(*p.Judge)
		}
	}
	if p.Details != nil {
		if strings.TrimSpace(*p.Details) == "" {
			updates["details"] = nil
		} else {
			updates["details"] = strings.TrimSpace(*p.Details)
		}
	}
	if p.AssetID != nil {
		if strings.TrimSpace(*p.AssetID) == "" {
			assetChange = &RefChange{Clear: true}
		} else {
			id, err := validation.ParseUUID(*p.AssetID)
			if err != nil {
				errs = errs.Add("asset_id", "must be a valid uuid")
			} else {
				assetChange = &RefChange{ID: id}
			}
		}
	}
	if p.ProjectID != nil {
		if strings.TrimSpace(*p.ProjectID) == "" {
			projectChange = &RefChange{Clear: true}
		} else {
			id, err := validation.ParseUUID(*p.ProjectID)
			if err != nil {
				errs = errs.Add("project_id", "must be a valid uuid")
			} else {
				projectChange = &RefChange{ID: id}
			}
		}
	}

	if len(errs) > 0 {
		return nil, nil, nil, errs
	}
	return updates, assetChange, projectChange, nil
}
