package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response is one word submitted by one student in one session.
type Response struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	SessionID   string `gorm:"type:uuid;not null;index:idx_session_student"`
	StudentID   string `gorm:"type:uuid;not null;index:idx_session_student"`
	Word        string `gorm:"size:50;not null"`
	SubmittedAt time.Time

	Session *Session `gorm:"foreignKey:SessionID"`
	Student *Student `gorm:"foreignKey:StudentID"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now().UTC()
	}
	return nil
}
