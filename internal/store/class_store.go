package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/classpulse/wordcloud-backend/internal/models"
)

type ClassStore struct {
	DB *gorm.DB
}

// ClassWithCount is the list-view projection of a class.
type ClassWithCount struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StudentCount int64  `json:"student_count"`
}

func (s *ClassStore) Create(ctx context.Context, c *models.Class) error {
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *ClassStore) ListByTeacher(ctx context.Context, teacherID string) ([]ClassWithCount, error) {
	var out []ClassWithCount
	err := s.DB.WithContext(ctx).
		Model(&models.Class{}).
		Select("classes.id, classes.name, COUNT(students.id) AS student_count").
		Joins("LEFT JOIN students ON students.class_id = classes.id").
		Where("classes.teacher_id = ?", teacherID).
		Group("classes.id, classes.name, classes.created_at").
		Order("classes.created_at ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByIDForTeacher is the ownership boundary: a class belonging to another
// teacher is indistinguishable from a missing one.
func (s *ClassStore) FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.Class, error) {
	var c models.Class
	err := s.DB.WithContext(ctx).Where("id = ? AND teacher_id = ?", id, teacherID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByID resolves a class with its owning teacher preloaded. Used on the
// student join path to build the session title.
func (s *ClassStore) FindByID(ctx context.Context, id string) (*models.Class, error) {
	var c models.Class
	err := s.DB.WithContext(ctx).Preload("Teacher").Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *ClassStore) Delete(ctx context.Context, id, teacherID string) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND teacher_id = ?", id, teacherID).Delete(&models.Class{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
