package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/store"
	courseValidator "lms/validators/course"
	"lms/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Service carries the injected notification hub into the course handlers.
type Service struct {
	Hub *ws.Hub
}

// CreateCourse creates a course with its nested section/lecture structure.
// Instructor or admin only. Connected clients get a global notification.
func (s *Service) CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND role IN ?",
		userID, false, []string{"INSTRUCTOR", "ADMIN"}).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only instructors can create courses!", nil)
	}

	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Language:     reqData.Language,
		ThumbnailURL: reqData.ThumbnailURL,
		InstructorID: userID,
		Status:       "ACTIVE",
		IsPublished:  true,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	for si, sectionReq := range reqData.Sections {
		section := courseModels.Section{
			CourseID:   course.ID,
			Title:      sectionReq.Title,
			OrderIndex: si,
		}
		if err := tx.Create(&section).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course sections!", nil)
		}
		for li, lectureReq := range sectionReq.Lectures {
			lecture := courseModels.Lecture{
				SectionID:  section.ID,
				CourseID:   course.ID,
				Title:      lectureReq.Title,
				VideoURL:   lectureReq.VideoURL,
				Duration:   lectureReq.Duration,
				OrderIndex: li,
			}
			if err := tx.Create(&lecture).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course lectures!", nil)
			}
		}
	}
	tx.Commit()

	if s.Hub != nil {
		s.Hub.Broadcast(ws.NewEnvelope("newCourseNotification", fiber.Map{
			"type":       "course_created",
			"message":    "New course: " + course.Title,
			"courseId":   course.ID,
			"instructor": user.Name,
		}))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetAllCourses lists published courses with their rating aggregates.
func (s *Service) GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true).
		Count(&total)

	var courses []courseModels.Course
	if err := db.Where("is_deleted = ? AND is_published = ?", false, true).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseStructure returns the ordered section/lecture hierarchy.
func (s *Service) GetCourseStructure(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := store.GetCourseWithStructure(database.Database.Db, uint(courseID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course structure!", nil)
	}

	totalLectures, err := store.TotalLectures(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course structure!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course structure fetched successfully!", fiber.Map{
		"course":         course,
		"total_lectures": totalLectures,
	})
}
