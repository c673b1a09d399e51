package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Completion tracks whether one user marked one homework as done.
// At most one row exists per (homework, user) pair; absence means "not completed".
type Completion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HomeworkID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completion_homework_user" json:"homework_id"`
	Homework   *Homework `gorm:"foreignKey:HomeworkID;constraint:OnDelete:CASCADE" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completion_homework_user" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Completed  bool      `gorm:"default:false" json:"completed"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Completion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
