package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class groups the students a teacher runs sessions for.
type Class struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"size:100;not null"`
	TeacherID string `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time

	Teacher  *Teacher  `gorm:"foreignKey:TeacherID"`
	Students []Student `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
	Sessions []Session `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
