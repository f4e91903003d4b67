package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateCourseRequest is the nested course authoring payload.
type CreateCourseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Language     string `json:"language"`
	ThumbnailURL string `json:"thumbnail_url"`
	Sections     []struct {
		Title    string `json:"title"`
		Lectures []struct {
			Title    string `json:"title"`
			VideoURL string `json:"video_url"`
			Duration int    `json:"duration"`
		} `json:"lectures"`
	} `json:"sections"`
}

// CreateCourse validates the course authoring payload.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		for i, section := range reqData.Sections {
			if strings.TrimSpace(section.Title) == "" {
				errors["sections"] = "Section " + strconv.Itoa(i+1) + " is missing a title!"
				break
			}
			for j, lecture := range section.Lectures {
				if strings.TrimSpace(lecture.Title) == "" {
					errors["sections"] = "Lecture " + strconv.Itoa(j+1) + " in section " + strconv.Itoa(i+1) + " is missing a title!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// GetCourseDetail validates the course id path param.
func GetCourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
