package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/classpulse/wordcloud-backend/internal/models"
	"github.com/classpulse/wordcloud-backend/internal/utils"
)

// codeAttempts bounds code generation retries. At 36^6 codes a collision is
// astronomically unlikely, but exhaustion is an error, not a hang.
const codeAttempts = 10

type SessionStore struct {
	DB *gorm.DB
}

// Create inserts a new inactive session under a freshly generated unique
// code. The pre-insert probe keeps retries cheap; the unique index on code
// is the backstop against a concurrent creation winning the same code.
func (s *SessionStore) Create(ctx context.Context, classID string, wordLimit int) (*models.Session, error) {
	if wordLimit <= 0 {
		wordLimit = models.DefaultWordLimit
	}
	for i := 0; i < codeAttempts; i++ {
		code, err := utils.GenerateCode(utils.CodeLength)
		if err != nil {
			return nil, err
		}

		var n int64
		if err := s.DB.WithContext(ctx).Model(&models.Session{}).Where("code = ?", code).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			continue
		}

		sess := &models.Session{
			Code:      code,
			ClassID:   classID,
			WordLimit: wordLimit,
		}
		if err := s.DB.WithContext(ctx).Create(sess).Error; err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, err
		}
		return sess, nil
	}
	return nil, ErrCodeExhausted
}

// FindByCode is the hot path of every student request; code is unique-indexed.
func (s *SessionStore) FindByCode(ctx context.Context, code string) (*models.Session, error) {
	var sess models.Session
	if err := s.DB.WithContext(ctx).Where("code = ?", code).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// Activate flips the session live and stamps start_time.
func (s *SessionStore) Activate(ctx context.Context, code string) (*models.Session, error) {
	sess, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	err = s.DB.WithContext(ctx).Model(sess).Updates(map[string]interface{}{
		"is_active":  true,
		"start_time": now,
	}).Error
	if err != nil {
		return nil, err
	}
	sess.IsActive = true
	sess.StartTime = &now
	return sess, nil
}

// Deactivate ends the session. Idempotent: deactivating an already-inactive
// session just refreshes end_time.
func (s *SessionStore) Deactivate(ctx context.Context, code string) (*models.Session, error) {
	sess, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	err = s.DB.WithContext(ctx).Model(sess).Updates(map[string]interface{}{
		"is_active": false,
		"end_time":  now,
	}).Error
	if err != nil {
		return nil, err
	}
	sess.IsActive = false
	sess.EndTime = &now
	return sess, nil
}
