package store

import (
	courseModels "lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetCourse loads a course without its structure.
func GetCourse(db *gorm.DB, id uint) (*courseModels.Course, error) {
	var course courseModels.Course
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetching course")
	}
	return &course, nil
}

// GetCourseWithStructure loads a course with its ordered section/lecture
// hierarchy preloaded.
func GetCourseWithStructure(db *gorm.DB, id uint) (*courseModels.Course, error) {
	var course courseModels.Course
	err := db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Preload("Sections.Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetching course structure")
	}
	return &course, nil
}

// TotalLectures counts a course's lectures across all sections. Used as the
// denominator for progress math.
func TotalLectures(db *gorm.DB, courseID uint) (int64, error) {
	var total int64
	err := db.Model(&courseModels.Lecture{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "counting lectures")
	}
	return total, nil
}

// LectureInCourse reports whether the lecture belongs to the course.
func LectureInCourse(db *gorm.DB, courseID, lectureID uint) (bool, error) {
	var count int64
	err := db.Model(&courseModels.Lecture{}).
		Where("id = ? AND course_id = ? AND is_deleted = ?", lectureID, courseID, false).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "checking lecture membership")
	}
	return count > 0, nil
}
