package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultWordLimit applies when a session is created without an explicit limit.
const DefaultWordLimit = 3

// Session is one word-cloud activity. Students join it by Code.
// Lifecycle: created (inactive, no times) -> active (start_time set) ->
// ended (end_time set). Re-activation is allowed; end_time is overwritten
// on later end calls.
type Session struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Code      string `gorm:"size:10;uniqueIndex;not null"`
	ClassID   string `gorm:"type:uuid;index;not null"`
	WordLimit int    `gorm:"not null;default:3"`
	IsActive  bool   `gorm:"not null;default:false"`
	StartTime *time.Time
	EndTime   *time.Time
	CreatedAt time.Time

	Class     *Class     `gorm:"foreignKey:ClassID"`
	Responses []Response `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
