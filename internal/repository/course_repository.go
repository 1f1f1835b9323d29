package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"course-catalog/internal/model"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	if err := r.db.Create(course).Error; err != nil {
		return fmt.Errorf("create course failed: %w", err)
	}
	return nil
}

func (r *CourseRepository) ListWithOwner() ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Preload("User").Order("id").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses failed: %w", err)
	}
	return courses, nil
}

func (r *CourseRepository) GetByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query course by id failed: %w", err)
	}
	return &course, nil
}

func (r *CourseRepository) GetByIDWithOwner(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.Preload("User").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query course by id failed: %w", err)
	}
	return &course, nil
}

func (r *CourseRepository) Update(course *model.Course) error {
	if err := r.db.Save(course).Error; err != nil {
		return fmt.Errorf("update course failed: %w", err)
	}
	return nil
}

func (r *CourseRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Course{}, id).Error; err != nil {
		return fmt.Errorf("delete course failed: %w", err)
	}
	return nil
}
