package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project statuses.
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on-hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// ProjectStatuses is the allowed set for Project.Status.
var ProjectStatuses = []string{ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled}

// Project is a unit of work, assigned to at most one Asset at a time.
// AssetID and AssignedAt are set and cleared together: both null means
// unassigned, both non-null means assigned. No write path may split them.
type Project struct {
	ProjectID   uuid.UUID      `gorm:"column:project_id;type:uuid;primaryKey" json:"project_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	Status      string         `gorm:"column:status;type:varchar(20);not null;default:'planning'" json:"status"`
	AssetID     *uuid.UUID     `gorm:"column:asset_id;type:uuid;index" json:"asset_id"`
	AssignedAt  *time.Time     `gorm:"column:assigned_at" json:"assigned_at"`
	StartDate   *time.Time     `gorm:"column:start_date" json:"start_date"`
	EndDate     *time.Time     `gorm:"column:end_date" json:"end_date"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Asset *Asset `gorm:"foreignKey:AssetID;references:AssetID" json:"-"`
}

func (Project) TableName() string {
	return "Projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ProjectID == uuid.Nil {
		p.ProjectID = uuid.New()
	}
	return nil
}
