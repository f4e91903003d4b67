package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/store"
	"lms/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Service carries the shared handles the enrollment handlers publish
// through. The hub is injected once at startup.
type Service struct {
	Hub *ws.Hub
}

const maxUpdateAttempts = 3

// mutateEnrollment runs an ownership-guarded read-modify-write against the
// enrollment, re-reading and re-applying when a concurrent writer wins the
// version check.
func mutateEnrollment(id, userID uint, fn func(*courseModels.Enrollment) error) (*courseModels.Enrollment, error) {
	db := database.Database.Db

	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		enrollment, err := store.GetEnrollment(db, id)
		if err != nil {
			return nil, err
		}
		if enrollment.UserID != userID {
			return nil, store.ErrForbidden
		}
		if err := fn(enrollment); err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return enrollment, nil
	}
	return nil, lastErr
}

// respondStoreError maps store sentinels onto the response envelope.
func respondStoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	case errors.Is(err, store.ErrForbidden):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to access this enrollment!", nil)
	case errors.Is(err, store.ErrInvalidArgument):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	case errors.Is(err, store.ErrConflict):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Conflicting record already exists!", nil)
	case errors.Is(err, store.ErrInvalidState):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Operation not allowed in current state!", nil)
	default:
		logrus.WithError(err).Error("Enrollment operation failed")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error!", nil)
	}
}

// EnrollInCourse creates an enrollment for the current user.
func (s *Service) EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND status = ? AND is_published = ?",
		courseID, false, "ACTIVE", true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	enrollment, err := store.CreateEnrollment(database.Database.Db, userID, uint(courseID))
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		}
		return respondStoreError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the user's enrollments with a course and instructor
// summary, most recently touched first.
func (s *Service) GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollments, err := store.ListEnrollmentsByUser(database.Database.Db, userID)
	if err != nil {
		return respondStoreError(c, err)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle     string  `json:"course_title"`
		CourseThumbnail string  `json:"course_thumbnail"`
		InstructorName  string  `json:"instructor_name"`
		AverageRating   float64 `json:"average_rating"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, enrollment := range enrollments {
		result[i] = EnrollmentWithCourse{Enrollment: enrollment}

		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
			continue
		}
		result[i].CourseTitle = course.Title
		result[i].CourseThumbnail = course.ThumbnailURL
		result[i].AverageRating = course.AverageRating

		var instructor models.User
		if err := database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor).Error; err == nil {
			result[i].InstructorName = instructor.Name
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// GetEnrollment returns one enrollment with the full course structure.
func (s *Service) GetEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	enrollment, err := store.GetEnrollment(database.Database.Db, uint(enrollmentID))
	if err != nil {
		return respondStoreError(c, err)
	}
	if enrollment.UserID != userID {
		return respondStoreError(c, store.ErrForbidden)
	}

	course, err := store.GetCourseWithStructure(database.Database.Db, enrollment.CourseID)
	if err != nil {
		return respondStoreError(c, err)
	}

	var instructor models.User
	database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"course":     course,
		"instructor": fiber.Map{
			"id":            instructor.ID,
			"name":          instructor.Name,
			"profile_image": instructor.ProfileImage,
			"bio":           instructor.Bio,
		},
	})
}
