package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Homework struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Subject     string     `gorm:"size:100;not null;index" json:"subject"`
	DueDate     *time.Time `gorm:"index" json:"due_date"`
	Description string     `gorm:"type:text" json:"description"`
	Attachment  string     `gorm:"type:text" json:"attachment"`
	Class       string     `gorm:"size:20;not null;index" json:"class"`
	// CreatorID is nullable: seed data has no creator.
	CreatorID *uuid.UUID `gorm:"type:uuid" json:"creator_id,omitempty"`
	Creator   *User      `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL" json:"creator,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (h *Homework) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID, err = uuid.NewV7()
	}
	return
}
