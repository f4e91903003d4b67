package course

import "gorm.io/gorm"

// Section represents an ordered group of lectures within a course
type Section struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Section order in course
	IsDeleted  bool   `gorm:"default:false"`

	Lectures []Lecture `json:"lectures,omitempty" gorm:"foreignKey:SectionID"`
}

// Lecture represents a single lesson inside a section.
// CourseID is denormalized so progress math can count a course's lectures
// without joining through sections.
type Lecture struct {
	gorm.Model
	SectionID  uint   `json:"section_id" gorm:"index;not null"`
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	Duration   int    `json:"duration" gorm:"default:0"` // duration in seconds
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsPreview  bool   `json:"is_preview" gorm:"default:false"`
	IsDeleted  bool   `gorm:"default:false"`
}
