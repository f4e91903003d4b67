package store

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Section{},
		&courseModels.Lecture{},
		&courseModels.Enrollment{},
	))
	return db
}

// seedCourse creates a published course whose sections hold the given
// lecture counts. Returns the course and its lecture IDs in order.
func seedCourse(t *testing.T, db *gorm.DB, lecturesPerSection ...int) (*courseModels.Course, []uint) {
	t.Helper()

	instructor := models.User{Name: "Ada Instructor", Email: uuid.NewString() + "@example.com", Role: "INSTRUCTOR"}
	require.NoError(t, db.Create(&instructor).Error)

	course := courseModels.Course{
		Title:        "Test Course",
		Description:  "A course for tests",
		InstructorID: instructor.ID,
		Status:       "ACTIVE",
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&course).Error)

	var lectureIDs []uint
	for si, count := range lecturesPerSection {
		section := courseModels.Section{CourseID: course.ID, Title: "Section", OrderIndex: si}
		require.NoError(t, db.Create(&section).Error)
		for li := 0; li < count; li++ {
			lecture := courseModels.Lecture{
				SectionID:  section.ID,
				CourseID:   course.ID,
				Title:      "Lecture",
				OrderIndex: li,
			}
			require.NoError(t, db.Create(&lecture).Error)
			lectureIDs = append(lectureIDs, lecture.ID)
		}
	}
	return &course, lectureIDs
}

func seedStudent(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	student := models.User{Name: "Student", Email: email, Role: "STUDENT"}
	require.NoError(t, db.Create(&student).Error)
	return &student
}
