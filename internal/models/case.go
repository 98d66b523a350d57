package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case is a legal/administrative case record, optionally linked to an Asset
// and/or a Project. Both links are independent and nullable.
type Case struct {
	CaseID     uuid.UUID      `gorm:"column:case_id;type:uuid;primaryKey" json:"case_id"`
	Rtc        string         `gorm:"column:rtc;not null" json:"rtc"`
	CaseNumber string         `gorm:"column:case_number;not null" json:"case_number"`
	Judge      *string        `gorm:"column:judge" json:"judge"`
	Details    *string        `gorm:"column:details;type:text" json:"details"`
	AssetID    *uuid.UUID     `gorm:"column:asset_id;type:uuid;index" json:"asset_id"`
	ProjectID  *uuid.UUID     `gorm:"column:project_id;type:uuid;index" json:"project_id"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Asset   *Asset   `gorm:"foreignKey:AssetID;references:AssetID" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"-"`
}

func (Case) TableName() string {
	return "Cases"
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.CaseID == uuid.Nil {
		c.CaseID = uuid.New()
	}
	return nil
}
