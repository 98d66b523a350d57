package assets

import (
	"encoding/json"
	"strings"

	"proptrack-backend/internal/models"
	"proptrack-backend/internal/pkg/validation"

	"gorm.io/datatypes"
)

// CreatePayload is the request body for asset creation.
type CreatePayload struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	TaxDeclarationNo string          `json:"tax_declaration_no"`
	DeclaredOwner    string          `json:"declared_owner"`
	MarketValue      *float64        `json:"market_value"`
	AssessedValue    *float64        `json:"assessed_value"`
	Address          string          `json:"address"`
	AuctionMeta      json.RawMessage `json:"auction_meta"`
	Latitude         *float64        `json:"latitude"`
	Longitude        *float64        `json:"longitude"`
	Status           string          `json:"status"`
}

// UpdatePayload is the partial request body for asset updates. Nil pointers
// mean "leave unchanged".
type UpdatePayload struct {
	Name             *string         `json:"name"`
	Description      *string         `json:"description"`
	TaxDeclarationNo *string         `json:"tax_declaration_no"`
	DeclaredOwner    *string         `json:"declared_owner"`
	MarketValue      *float64        `json:"market_value"`
	AssessedValue    *float64        `json:"assessed_value"`
	Address          *string         `json:"address"`
	AuctionMeta      json.RawMessage `json:"auction_meta"`
	Latitude         *float64        `json:"latitude"`
	Longitude        *float64        `json:"longitude"`
	Status           *string         `json:"status"`
}

// ValidateCreate checks the payload and returns a normalized Asset ready for
// persistence, or the full list of field errors.
func ValidateCreate(p CreatePayload) (*models.Asset, error) {
	var errs validation.FieldErrors

	name := strings.TrimSpace(p.Name)
	if name == "" {
		errs = errs.Add("name", "is required")
	}

	status := strings.TrimSpace(p.Status)
	if status == "" {
		status = models.AssetStatusActive
	} else if !validation.InStatusSet(status, models.AssetStatuses) {
		errs = errs.Add("status", validation.StatusSetMessage(models.AssetStatuses))
	}

	if p.Latitude != nil && !validation.ValidLatitude(*p.Latitude) {
		errs = errs.Add("latitude", "must be between -90 and 90")
	}
	if p.Longitude != nil && !validation.ValidLongitude(*p.Longitude) {
		errs = errs.Add("longitude", "must be between -180 and 180")
	}
	if p.MarketValue != nil && *p.MarketValue < 0 {
		errs = errs.Add("market_value", "must not be negative")
	}
	if p.AssessedValue != nil && *p.AssessedValue < 0 {
		errs = errs.Add("assessed_value", "must not be negative")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &models.Asset{
		Name:             name,
		Description:      strings.TrimSpace(p.Description),
		TaxDeclarationNo: strings.TrimSpace(p.TaxDeclarationNo),
		DeclaredOwner:    strings.TrimSpace(p.DeclaredOwner),
		MarketValue:      p.MarketValue,
		AssessedValue:    p.AssessedValue,
		Address:          strings.TrimSpace(p.Address),
		AuctionMeta:      datatypes.JSON(p.AuctionMeta),
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		Status:           status,
	}, nil
}

// ValidateUpdate checks the provided fields and returns the column updates to
// apply, or the full list of field errors.
func ValidateUpdate(p UpdatePayload) (map[string]interface{}, error) {
	var errs validation.FieldErrors
	updates := map[string]interface{}{}

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
	if p.TaxDeclarationNo != nil {
		updates["tax_declaration_no"] = strings.TrimSpace(*p.TaxDeclarationNo)
	}
	if p.DeclaredOwner != nil {
		updates["declared_owner"] = strings.TrimSpace(*p.DeclaredOwner)
	}
	if p.MarketValue != nil {
		if *p.MarketValue < 0 {
			errs = errs.Add("market_value", "must not be negative")
		} else {
			updates["market_value"] = *p.MarketValue
		}
	}
	if p.AssessedValue != nil {
		if *p.AssessedValue < 0 {
			errs = errs.Add("assessed_value", "must not be negative")
		} else {
			updates["assessed_value"] = *p.AssessedValue
		}
	}
	if p.Address != nil {
		updates["address"] = strings.TrimSpace(*p.Address)
	}
	if p.AuctionMeta != nil {
		updates["auction_meta"] = datatypes.JSON(p.AuctionMeta)
	}
	if p.Latitude != nil {
		if !validation.ValidLatitude(*p.Latitude) {
			errs = errs.Add("latitude", "must be between -90 and 90")
		} else {
			updates["latitude"] = *p.Latitude
		}
	}
	if p.Longitude != nil {
		if !validation.ValidLongitude(*p.Longitude) {
			errs = errs.Add("longitude", "must be between -180 and 180")
		} else {
			updates["longitude"] = *p.Longitude
		}
	}
	if p.Status != nil {
		if !validation.InStatusSet(*p.Status, models.AssetStatuses) {
			errs = errs.Add("status", validation.StatusSetMessage(models.AssetStatuses))
		} else {
			updates["status"] = *p.Status
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return updates, nil
}
