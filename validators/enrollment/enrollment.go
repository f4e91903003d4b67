package enrollmentValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ProgressRequest is the player-reported progress payload.
type ProgressRequest struct {
	Progress          *int   `json:"progress"`
	CompletedLectures []uint `json:"completed_lectures"`
	CurrentLecture    *uint  `json:"current_lecture"`
}

// LectureRequest carries a single lecture completion report.
type LectureRequest struct {
	LectureID uint `json:"lecture_id"`
}

// ReviewRequest carries a one-shot course review.
type ReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// EnrollCourse validates the course id path param for enrollment creation.
func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		// Validate CourseID is a valid integer
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// GetEnrollmentDetail validates the enrollment id path param.
func GetEnrollmentDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentIDStr := strings.TrimSpace(c.Params("id"))
		if enrollmentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment ID is required!", nil)
		}

		enrollmentID, err := strconv.Atoi(enrollmentIDStr)
		if err != nil || enrollmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		c.Locals("enrollmentID", enrollmentID)
		return c.Next()
	}
}

// UpdateProgress validates the direct progress-set payload.
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Progress != nil && (*reqData.Progress < 0 || *reqData.Progress > 100) {
			errors["progress"] = "Progress must be between 0 and 100!"
		}
		for _, lectureID := range reqData.CompletedLectures {
			if lectureID == 0 {
				errors["completed_lectures"] = "Lecture IDs must be greater than 0!"
				break
			}
		}
		if reqData.CurrentLecture != nil && *reqData.CurrentLecture == 0 {
			errors["current_lecture"] = "Current lecture must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// MarkLecture validates the lecture completion payload.
func MarkLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LectureRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.LectureID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lecture ID is required!", nil)
		}

		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// AddReview validates the review payload. Non-integer ratings fail the body
// parse and are rejected here before any mutation.
func AddReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReviewRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Rating < 1 || reqData.Rating > 5 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide a valid rating between 1 and 5!", nil)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}
