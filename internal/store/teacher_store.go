package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/classpulse/wordcloud-backend/internal/models"
)

type TeacherStore struct {
	DB *gorm.DB
}

func (s *TeacherStore) Create(ctx context.Context, t *models.Teacher) error {
	if err := s.DB.WithContext(ctx).Create(t).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *TeacherStore) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	var t models.Teacher
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TeacherStore) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	var t models.Teacher
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
