package userRoutes

import (
	enrollmentControllers "lms/controllers/enrollment"
	"lms/middleware"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up the current user's enrollment routes
func SetupUserRoutes(app *fiber.App, enrollments *enrollmentControllers.Service) {
	userGroup := app.Group("/user")

	// Enrollment listing and details
	userGroup.Get("/enrollments", middleware.JWTMiddleware, enrollments.GetEnrollments)
	userGroup.Get("/enrollments/:id", middleware.JWTMiddleware, enrollmentValidator.GetEnrollmentDetail(), enrollments.GetEnrollment)

	// Progress tracking
	userGroup.Put("/enrollments/:id/progress", middleware.JWTMiddleware, enrollmentValidator.GetEnrollmentDetail(), enrollmentValidator.UpdateProgress(), enrollments.UpdateProgress)
	userGroup.Post("/enrollments/:id/complete-lecture", middleware.JWTMiddleware, enrollmentValidator.GetEnrollmentDetail(), enrollmentValidator.MarkLecture(), enrollments.MarkLectureCompleted)

	// Reviews
	userGroup.Post("/enrollments/:id/review", middleware.JWTMiddleware, enrollmentValidator.GetEnrollmentDetail(), enrollmentValidator.AddReview(), enrollments.AddReview)

	// Certificates
	userGroup.Get("/enrollments/:id/certificate", middleware.JWTMiddleware, enrollmentValidator.GetEnrollmentDetail(), enrollments.GetCertificate)
	userGroup.Get("/enrollments/:id/certificate/download", middleware.JWTMiddleware, enrollmentValidator.GetEnrollmentDetail(), enrollments.DownloadCertificate)
}
