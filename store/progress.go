package store

import (
	"math"
	"time"

	courseModels "lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProgressUpdate carries a player-reported progress change. Nil fields are
// left untouched.
type ProgressUpdate struct {
	Progress          *int
	CompletedLectures []uint
	CurrentLectureID  *uint
}

// MarkLectureCompleted records a lecture completion on the enrollment and
// recomputes progress from the course structure. Completing the same lecture
// twice is a no-op for the set and the percentage. Returns true when this
// transition issued the certificate.
func MarkLectureCompleted(db *gorm.DB, enrollment *courseModels.Enrollment, lectureID uint) (bool, error) {
	if lectureID == 0 {
		return false, ErrInvalidArgument
	}
	ok, err := LectureInCourse(db, enrollment.CourseID, lectureID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrInvalidArgument
	}

	enrollment.AddCompletedLecture(lectureID)

	total, err := TotalLectures(db, enrollment.CourseID)
	if err != nil {
		return false, err
	}
	enrollment.Progress = progressPercent(len(enrollment.CompletedSet()), total)

	issued := applyCompletionTransition(enrollment)
	if err := UpdateEnrollment(db, enrollment); err != nil {
		return false, err
	}
	return issued, nil
}

// ApplyProgressUpdate is the direct-set variant used by the client player.
// Values are taken as reported; only the 100% completion side effects are
// enforced. Returns true when this transition issued the certificate.
func ApplyProgressUpdate(db *gorm.DB, enrollment *courseModels.Enrollment, update ProgressUpdate) (bool, error) {
	if update.Progress != nil {
		if *update.Progress < 0 || *update.Progress > 100 {
			return false, ErrInvalidArgument
		}
		enrollment.Progress = *update.Progress
	}
	if update.CompletedLectures != nil {
		enrollment.SetCompletedLectures(update.CompletedLectures)
	}
	if update.CurrentLectureID != nil {
		enrollment.CurrentLectureID = update.CurrentLectureID
	}

	issued := applyCompletionTransition(enrollment)
	if err := UpdateEnrollment(db, enrollment); err != nil {
		return false, err
	}
	return issued, nil
}

// progressPercent rounds half away from zero. A course without lectures
// stays at 0 rather than dividing by zero.
func progressPercent(completed int, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// applyCompletionTransition moves the enrollment status along and delegates
// to certificate issuance the first time progress reaches 100. Returns true
// on first issuance.
func applyCompletionTransition(enrollment *courseModels.Enrollment) bool {
	first := false
	if enrollment.Progress >= 100 {
		first = enrollment.CompletedAt == nil
		IssueCertificate(enrollment, time.Now())
		enrollment.Status = courseModels.StatusCompleted
	} else if enrollment.Progress > 0 && enrollment.Status == courseModels.StatusEnrolled {
		enrollment.Status = courseModels.StatusInProgress
	}
	return first
}

// RequireCertificate guards the certificate endpoints. An enrollment that
// never completed the course has no certificate to expose.
func RequireCertificate(enrollment *courseModels.Enrollment) error {
	if !enrollment.CertificateIssued {
		return errors.Wrap(ErrInvalidState, "certificate not issued")
	}
	return nil
}

// IssueCertificate is the one-way completion transition. Re-invocation on an
// already issued enrollment never overwrites the original timestamps.
func IssueCertificate(enrollment *courseModels.Enrollment, now time.Time) {
	if enrollment.CompletedAt == nil {
		enrollment.CompletedAt = &now
	}
	enrollment.CertificateIssued = true
	if enrollment.CertificateIssuedAt == nil {
		enrollment.CertificateIssuedAt = &now
	}
}
