package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpulse/wordcloud-backend/internal/models"
)

type ResponseStore struct {
	DB *gorm.DB
}

// SessionWord is one stored word with its submitter's display name.
type SessionWord struct {
	Word        string    `json:"word"`
	Name        string    `json:"name"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (s *ResponseStore) CountFor(ctx context.Context, sessionID, studentID string) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&models.Response{}).
		Where("session_id = ? AND student_id = ?", sessionID, studentID).
		Count(&n).Error
	return n, err
}

// Append inserts unconditionally; quota enforcement is the caller's job.
func (s *ResponseStore) Append(ctx context.Context, sessionID, studentID, word string) (*models.Response, error) {
	r := &models.Response{
		SessionID: sessionID,
		StudentID: studentID,
		Word:      word,
	}
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// AppendWithinQuota runs the count and the insert in one transaction holding
// a row lock on the student, so two simultaneous submissions from the same
// student cannot both pass the quota check. Returns ErrQuotaExceeded when the
// student has no words left.
func (s *ResponseStore) AppendWithinQuota(ctx context.Context, sessionID, studentID, word string, limit int) (*models.Response, error) {
	var resp *models.Response
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student models.Student
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", studentID).
			First(&student).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var n int64
		err = tx.Model(&models.Response{}).
			Where("session_id = ? AND student_id = ?", sessionID, studentID).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n >= int64(limit) {
			return ErrQuotaExceeded
		}

		r := &models.Response{
			SessionID: sessionID,
			StudentID: studentID,
			Word:      word,
		}
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListBySession returns the stored words in submission order, for rebuilding
// a teacher view after reconnect. submitted_at, not broadcast delivery
// order, is authoritative.
func (s *ResponseStore) ListBySession(ctx context.Context, sessionID string) ([]SessionWord, error) {
	var out []SessionWord
	err := s.DB.WithContext(ctx).
		Model(&models.Response{}).
		Select("responses.word, students.full_name AS name, responses.submitted_at").
		Joins("JOIN students ON students.id = responses.student_id").
		Where("responses.session_id = ?", sessionID).
		Order("responses.submitted_at ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
