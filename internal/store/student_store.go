package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/classpulse/wordcloud-backend/internal/models"
)

type StudentStore struct {
	DB *gorm.DB
}

func (s *StudentStore) Enroll(ctx context.Context, st *models.Student) error {
	if err := s.DB.WithContext(ctx).Create(st).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *StudentStore) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	var students []models.Student
	err := s.DB.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("file_number ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// FindByFileNumber resolves the join credential within one class.
func (s *StudentStore) FindByFileNumber(ctx context.Context, classID, fileNumber string) (*models.Student, error) {
	var st models.Student
	err := s.DB.WithContext(ctx).
		Where("class_id = ? AND file_number = ?", classID, fileNumber).
		First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (s *StudentStore) Delete(ctx context.Context, classID, studentID string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND class_id = ?", studentID, classID).
		Delete(&models.Student{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
