package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/store"
	"lms/utils"
	enrollmentValidator "lms/validators/enrollment"
	"lms/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// UpdateProgress applies a player-reported progress change to the
// enrollment.
func (s *Service) UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	reqData := c.Locals("validatedProgress").(*enrollmentValidator.ProgressRequest)

	var issued bool
	enrollment, err := mutateEnrollment(uint(enrollmentID), userID, func(e *courseModels.Enrollment) error {
		var innerErr error
		issued, innerErr = store.ApplyProgressUpdate(database.Database.Db, e, store.ProgressUpdate{
			Progress:          reqData.Progress,
			CompletedLectures: reqData.CompletedLectures,
			CurrentLectureID:  reqData.CurrentLecture,
		})
		return innerErr
	})
	if err != nil {
		return respondStoreError(c, err)
	}

	if issued {
		s.afterCertificateIssued(enrollment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", enrollment)
}

// MarkLectureCompleted records a lecture completion and recomputes progress
// from the course structure.
func (s *Service) MarkLectureCompleted(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	reqData := c.Locals("validatedLecture").(*enrollmentValidator.LectureRequest)

	var issued bool
	enrollment, err := mutateEnrollment(uint(enrollmentID), userID, func(e *courseModels.Enrollment) error {
		var innerErr error
		issued, innerErr = store.MarkLectureCompleted(database.Database.Db, e, reqData.LectureID)
		return innerErr
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lecture ID is required and must belong to the course!", nil)
		}
		return respondStoreError(c, err)
	}

	if issued {
		s.afterCertificateIssued(enrollment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture marked as completed!", enrollment)
}

// afterCertificateIssued runs the completion side effects: a course-room
// notification and a certificate email. All best-effort; the progress
// response already went out on the happy path regardless.
func (s *Service) afterCertificateIssued(enrollment *courseModels.Enrollment) {
	db := database.Database.Db

	course, err := store.GetCourse(db, enrollment.CourseID)
	if err != nil {
		logrus.WithError(err).Warn("Skipping completion side effects: course lookup failed")
		return
	}

	certNumber := utils.CertificateNumber(enrollment.PublicID)

	if s.Hub != nil {
		s.Hub.PublishToTopic(ws.TopicForCourse(enrollment.CourseID), ws.NewEnvelope("courseCompleted", fiber.Map{
			"type":              "course_completed",
			"courseId":          enrollment.CourseID,
			"enrollmentId":      enrollment.ID,
			"certificateNumber": certNumber,
		}))
	}

	if config.AppConfig != nil && config.AppConfig.EmailSender != "" {
		var student models.User
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&student).Error; err == nil {
			go func() {
				if err := utils.SendCertificateEmail(student.Name, student.Email, course.Title, certNumber); err != nil {
					logrus.WithError(err).Warn("Certificate email failed")
				}
			}()
		}
	}
}
