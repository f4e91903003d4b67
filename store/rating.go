package store

import (
	courseModels "lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AddReview records a one-shot rating and optional review text on the
// enrollment. A second review fails with ErrConflict and leaves the first
// intact.
func AddReview(db *gorm.DB, enrollment *courseModels.Enrollment, rating int, review string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidArgument
	}
	if enrollment.Rating != nil {
		return ErrConflict
	}

	enrollment.Rating = &rating
	enrollment.Review = review
	return UpdateEnrollment(db, enrollment)
}

// RecomputeCourseRating rewrites the course aggregates from a full scan of
// the course's rated enrollments. ReviewCount counts rated enrollments only,
// not total enrollments. The aggregate lands in a single UPDATE so a
// concurrent recompute never leaves a torn average/count pair.
func RecomputeCourseRating(db *gorm.DB, courseID uint) error {
	var stats struct {
		Average float64
		Total   int64
	}
	err := db.Model(&courseModels.Enrollment{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(rating) AS total").
		Where("course_id = ? AND rating IS NOT NULL AND is_deleted = ?", courseID, false).
		Scan(&stats).Error
	if err != nil {
		return errors.Wrap(err, "scanning course ratings")
	}

	err = db.Model(&courseModels.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"average_rating": stats.Average,
			"review_count":   stats.Total,
		}).Error
	if err != nil {
		return errors.Wrap(err, "writing course aggregates")
	}
	return nil
}
