package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Asset statuses.
const (
	AssetStatusActive      = "active"
	AssetStatusInactive    = "inactive"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
)

// AssetStatuses is the allowed set for Asset.Status.
var AssetStatuses = []string{AssetStatusActive, AssetStatusInactive, AssetStatusMaintenance, AssetStatusRetired}

// Asset is a tracked physical/real-property record.
type Asset struct {
	AssetID          uuid.UUID      `gorm:"column:asset_id;type:uuid;primaryKey" json:"asset_id"`
	Name             string         `gorm:"column:name;not null" json:"name"`
	Description      string         `gorm:"column:description" json:"description"`
	TaxDeclarationNo string         `gorm:"column:tax_declaration_no" json:"tax_declaration_no"`
	DeclaredOwner    string         `gorm:"column:declared_owner" json:"declared_owner"`
	MarketValue      *float64       `gorm:"column:market_value;type:decimal(18,2)" json:"market_value"`
	AssessedValue    *float64       `gorm:"column:assessed_value;type:decimal(18,2)" json:"assessed_value"`
	Address          string         `gorm:"column:address" json:"address"`
	AuctionMeta      datatypes.JSON `gorm:"column:auction_meta;type:jsonb" json:"auction_meta"`
	Latitude         *float64       `gorm:"column:latitude;type:decimal(10,7)" json:"latitude"`
	Longitude        *float64       `gorm:"column:longitude;type:decimal(10,7)" json:"longitude"`
	Status           string         `gorm:"column:status;type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Asset) TableName() string {
	return "Assets"
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.AssetID == uuid.Nil {
		a.AssetID = uuid.New()
	}
	return nil
}
