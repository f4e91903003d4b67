package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/store"
	enrollmentValidator "lms/validators/enrollment"
	"lms/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AddReview records a one-shot rating and review on the enrollment, then
// refreshes the course aggregates. Aggregate failures are logged, not
// surfaced: the review itself already persisted.
func (s *Service) AddReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	reqData := c.Locals("validatedReview").(*enrollmentValidator.ReviewRequest)

	enrollment, err := mutateEnrollment(uint(enrollmentID), userID, func(e *courseModels.Enrollment) error {
		return store.AddReview(database.Database.Db, e, reqData.Rating, reqData.Review)
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
		}
		if errors.Is(err, store.ErrInvalidArgument) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide a valid rating between 1 and 5!", nil)
		}
		return respondStoreError(c, err)
	}

	// Best-effort aggregate recompute; the hourly reconciliation job retries
	// any failure here.
	if err := store.RecomputeCourseRating(database.Database.Db, enrollment.CourseID); err != nil {
		logrus.WithError(err).WithField("course", enrollment.CourseID).Warn("Course rating recompute failed")
	} else if s.Hub != nil {
		if course, err := store.GetCourse(database.Database.Db, enrollment.CourseID); err == nil {
			s.Hub.PublishToTopic(ws.TopicForCourse(enrollment.CourseID), ws.NewEnvelope("reviewAdded", fiber.Map{
				"type":          "review_added",
				"courseId":      course.ID,
				"averageRating": course.AverageRating,
				"reviewCount":   course.ReviewCount,
			}))
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review added successfully!", enrollment)
}
