package course

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusEnrolled   = "ENROLLED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	PublicID string `json:"public_id" gorm:"uniqueIndex;size:36"`
	UserID   uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_enrollment_user_course"`
	Status   string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED

	Progress          int            `json:"progress" gorm:"default:0"` // Completion percentage (0-100)
	CompletedLectures datatypes.JSON `json:"completed_lectures"`        // JSON array of lecture IDs
	CurrentLectureID  *uint          `json:"current_lecture_id"`

	Rating *int   `json:"rating"` // 1-5, settable once
	Review string `json:"review" gorm:"type:text;default:''"`

	CertificateIssued   bool       `json:"certificate_issued" gorm:"default:false"`
	CertificateIssuedAt *time.Time `json:"certificate_issued_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	LastAccessed        time.Time  `json:"last_accessed"`

	// Bumped on every write; stale read-modify-write cycles fail instead of
	// clobbering a newer row.
	Version uint `json:"-" gorm:"default:0"`

	IsDeleted bool `gorm:"default:false"`
}

// CompletedSet returns the completed lecture IDs stored in the JSON column.
func (e *Enrollment) CompletedSet() []uint {
	if len(e.CompletedLectures) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(e.CompletedLectures, &ids); err != nil {
		return nil
	}
	return ids
}

// HasCompleted reports whether the lecture is already in the completed set.
func (e *Enrollment) HasCompleted(lectureID uint) bool {
	for _, id := range e.CompletedSet() {
		if id == lectureID {
			return true
		}
	}
	return false
}

// AddCompletedLecture inserts a lecture into the completed set. Returns false
// if the lecture was already present (completion reports are idempotent).
func (e *Enrollment) AddCompletedLecture(lectureID uint) bool {
	if e.HasCompleted(lectureID) {
		return false
	}
	ids := append(e.CompletedSet(), lectureID)
	e.SetCompletedLectures(ids)
	return true
}

// SetCompletedLectures replaces the completed set, dropping duplicates.
func (e *Enrollment) SetCompletedLectures(lectureIDs []uint) {
	seen := make(map[uint]bool, len(lectureIDs))
	unique := make([]uint, 0, len(lectureIDs))
	for _, id := range lectureIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	raw, err := json.Marshal(unique)
	if err != nil {
		raw = []byte("[]")
	}
	e.CompletedLectures = datatypes.JSON(raw)
}
