package courseRoutes

import (
	courseControllers "lms/controllers/course"
	enrollmentControllers "lms/controllers/enrollment"
	"lms/middleware"
	courseValidator "lms/validators/course"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course-facing routes
func SetupCourseRoutes(app *fiber.App, courses *courseControllers.Service, enrollments *enrollmentControllers.Service) {
	courseGroup := app.Group("/course")

	// Course listing and structure
	courseGroup.Get("/list", middleware.JWTMiddleware, courses.GetAllCourses)
	courseGroup.Get("/:id/structure", middleware.JWTMiddleware, courseValidator.GetCourseDetail(), courses.GetCourseStructure)

	// Instructor authoring
	courseGroup.Post("/", middleware.JWTMiddleware, courseValidator.CreateCourse(), courses.CreateCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, enrollmentValidator.EnrollCourse(), enrollments.EnrollInCourse)
}
