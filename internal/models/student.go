package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is enrolled in exactly one class. FileNumber is the join
// credential and is unique within the class; display names may collide.
type Student struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	FullName   string `gorm:"size:100;not null"`
	FileNumber string `gorm:"size:32;not null;uniqueIndex:uniq_class_file"`
	ClassID    string `gorm:"type:uuid;not null;uniqueIndex:uniq_class_file"`
	CreatedAt  time.Time

	Class     *Class     `gorm:"foreignKey:ClassID"`
	Responses []Response `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
