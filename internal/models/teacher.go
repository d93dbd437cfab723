package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Teacher is the authenticated account type. Email is the login identity.
type Teacher struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	FullName     string `gorm:"size:100;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time

	Classes []Class `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
}

func (t *Teacher) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
