package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/store"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCertificate returns the structured certificate record for a completed
// enrollment. Rendering stays external: the response carries an opaque
// download reference and the renderer is warmed up in the background.
func (s *Service) GetCertificate(c *fiber.Ctx) error {
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

	if err := store.RequireCertificate(enrollment); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Certificate not available. Complete the course to get your certificate.", nil)
	}

	course, err := store.GetCourse(database.Database.Db, enrollment.CourseID)
	if err != nil {
		return respondStoreError(c, err)
	}

	var student, instructor models.User
	database.Database.Db.Where("id = ?", enrollment.UserID).First(&student)
	database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor)

	certificate := utils.BuildCertificate(enrollment, student.Name, course.Title, instructor.Name)
	go utils.QueueCertificateRender(certificate)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate":  certificate,
		"download_url": utils.CertificateDownloadPath(enrollment.ID),
	})
}

// DownloadCertificate hands the caller off to the external renderer.
func (s *Service) DownloadCertificate(c *fiber.Ctx) error {
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
	if err := store.RequireCertificate(enrollment); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Certificate not available. Complete the course to get your certificate.", nil)
	}

	if config.AppConfig.CertRendererURL == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate rendering is not configured!", nil)
	}

	certNumber := utils.CertificateNumber(enrollment.PublicID)
	return c.Redirect(config.AppConfig.CertRendererURL+"/certificates/"+certNumber+".pdf", fiber.StatusFound)
}
