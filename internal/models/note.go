package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a free-text annotation. At creation it must reference at least one
// of Asset, Project, Case; parent deletion later nulls the matching reference
// without re-checking that rule (see notes service).
type Note struct {
	NoteID    uuid.UUID      `gorm:"column:note_id;type:uuid;primaryKey" json:"note_id"`
	Content   string         `gorm:"column:content;type:text;not null" json:"content"`
	AssetID   *uuid.UUID     `gorm:"column:asset_id;type:uuid;index" json:"asset_id"`
	ProjectID *uuid.UUID     `gorm:"column:project_id;type:uuid;index" json:"project_id"`
	CaseID    *uuid.UUID     `gorm:"column:case_id;type:uuid;index" json:"case_id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Note) TableName() string {
	return "Notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.NoteID == uuid.Nil {
		n.NoteID = uuid.New()
	}
	return nil
}
