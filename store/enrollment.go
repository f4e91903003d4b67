package store

import (
	"time"

	courseModels "lms/models/course"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateEnrollment creates a fresh enrollment for the (user, course) pair.
// Returns ErrConflict if the pair is already enrolled.
func CreateEnrollment(db *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, error) {
	var existing courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "checking existing enrollment")
	}

	enrollment := &courseModels.Enrollment{
		PublicID:          uuid.NewString(),
		UserID:            userID,
		CourseID:          courseID,
		Status:            courseModels.StatusEnrolled,
		CompletedLectures: datatypes.JSON([]byte("[]")),
		LastAccessed:      time.Now(),
	}
	if err := db.Create(enrollment).Error; err != nil {
		return nil, errors.Wrap(err, "creating enrollment")
	}
	return enrollment, nil
}

// GetEnrollment loads an enrollment by primary key.
func GetEnrollment(db *gorm.DB, id uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetching enrollment")
	}
	return &enrollment, nil
}

// ListEnrollmentsByUser returns the user's enrollments, most recently
// touched first. The ordering feeds the "my learning" view directly.
func ListEnrollmentsByUser(db *gorm.DB, userID uint) ([]courseModels.Enrollment, error) {
	var enrollments []courseModels.Enrollment
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("last_accessed desc").
		Find(&enrollments).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing enrollments")
	}
	return enrollments, nil
}

// UpdateEnrollment persists the enrollment's mutable fields and stamps
// last_accessed. The write is guarded by the version column: if another
// writer got there first, no row matches and ErrVersionConflict is returned
// so the caller can re-read and retry.
func UpdateEnrollment(db *gorm.DB, enrollment *courseModels.Enrollment) error {
	enrollment.LastAccessed = time.Now()

	result := db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND version = ?", enrollment.ID, enrollment.Version).
		Updates(map[string]interface{}{
			"status":                enrollment.Status,
			"progress":              enrollment.Progress,
			"completed_lectures":    enrollment.CompletedLectures,
			"current_lecture_id":    enrollment.CurrentLectureID,
			"rating":                enrollment.Rating,
			"review":                enrollment.Review,
			"certificate_issued":    enrollment.CertificateIssued,
			"certificate_issued_at": enrollment.CertificateIssuedAt,
			"completed_at":          enrollment.CompletedAt,
			"last_accessed":         enrollment.LastAccessed,
			"version":               enrollment.Version + 1,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "updating enrollment")
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	enrollment.Version++
	return nil
}
