package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeReminder    = "reminder"
	NotificationTypeNewHomework = "new_homework"
	NotificationTypeComment     = "comment"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	HomeworkID *uuid.UUID `gorm:"type:uuid" json:"homework_id,omitempty"`
	Homework   *Homework  `gorm:"foreignKey:HomeworkID;constraint:OnDelete:CASCADE" json:"homework,omitempty"`
	Type       string     `gorm:"size:50;not null" json:"type"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	Read       bool       `gorm:"default:false" json:"read"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
