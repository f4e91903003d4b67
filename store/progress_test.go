package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "lms/models/course"
)

func TestMarkLectureCompletedProgressSequence(t *testing.T) {
	db := newTestDB(t)
	// 2 sections of 3 and 2 lectures, 5 total
	course, lectures := seedCourse(t, db, 3, 2)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	want := []int{20, 40, 60, 80, 100}
	for i, lectureID := range lectures {
		issued, err := MarkLectureCompleted(db, enrollment, lectureID)
		require.NoError(t, err)
		assert.Equal(t, want[i], enrollment.Progress)
		assert.Equal(t, i == len(lectures)-1, issued, "certificate must be issued exactly on the full-completion transition")
	}

	reloaded, err := GetEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, reloaded.Progress)
	assert.True(t, reloaded.CertificateIssued)
	assert.NotNil(t, reloaded.CompletedAt)
	assert.NotNil(t, reloaded.CertificateIssuedAt)
	assert.Equal(t, courseModels.StatusCompleted, reloaded.Status)
}

func TestMarkLectureCompletedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 3, 2)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	_, err = MarkLectureCompleted(db, enrollment, lectures[0])
	require.NoError(t, err)
	require.Equal(t, 20, enrollment.Progress)

	// Completing the same lecture again changes nothing
	issued, err := MarkLectureCompleted(db, enrollment, lectures[0])
	require.NoError(t, err)
	assert.False(t, issued)
	assert.Equal(t, 20, enrollment.Progress)
	assert.Len(t, enrollment.CompletedSet(), 1)
}

func TestMarkLectureCompletedRejectsBadLectures(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 2)
	_, otherLectures := seedCourse(t, db, 1)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	_, err = MarkLectureCompleted(db, enrollment, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// A lecture from another course never counts toward this enrollment
	_, err = MarkLectureCompleted(db, enrollment, otherLectures[0])
	assert.ErrorIs(t, err, ErrInvalidArgument)

	reloaded, err := GetEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Progress)
}

func TestProgressPercentGuardsZeroLectures(t *testing.T) {
	assert.Equal(t, 0, progressPercent(0, 0))
	assert.Equal(t, 0, progressPercent(3, 0))
	assert.Equal(t, 33, progressPercent(1, 3))
	assert.Equal(t, 67, progressPercent(2, 3))
	assert.Equal(t, 50, progressPercent(1, 2))
	assert.Equal(t, 100, progressPercent(5, 5))
}

func TestCertificateTimestampsNeverChangeAfterIssue(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 1)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	issued, err := MarkLectureCompleted(db, enrollment, lectures[0])
	require.NoError(t, err)
	require.True(t, issued)

	afterIssue, err := GetEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	completedAt := *afterIssue.CompletedAt
	issuedAt := *afterIssue.CertificateIssuedAt

	// Re-report completion and push more updates through
	issued, err = MarkLectureCompleted(db, enrollment, lectures[0])
	require.NoError(t, err)
	assert.False(t, issued)

	hundred := 100
	issued, err = ApplyProgressUpdate(db, enrollment, ProgressUpdate{Progress: &hundred})
	require.NoError(t, err)
	assert.False(t, issued)

	reloaded, err := GetEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.CompletedAt.Equal(completedAt))
	assert.True(t, reloaded.CertificateIssuedAt.Equal(issuedAt))
	assert.True(t, reloaded.CertificateIssued)
}

func TestApplyProgressUpdateDirectSet(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 3)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	sixty := 60
	issued, err := ApplyProgressUpdate(db, enrollment, ProgressUpdate{
		Progress:          &sixty,
		CompletedLectures: lectures[:2],
		CurrentLectureID:  &lectures[1],
	})
	require.NoError(t, err)
	assert.False(t, issued)
	assert.Equal(t, courseModels.StatusInProgress, enrollment.Status)
	assert.Equal(t, []uint{lectures[0], lectures[1]}, enrollment.CompletedSet())

	// Reaching 100 through the direct path still issues the certificate once
	hundred := 100
	issued, err = ApplyProgressUpdate(db, enrollment, ProgressUpdate{Progress: &hundred})
	require.NoError(t, err)
	assert.True(t, issued)
	assert.True(t, enrollment.CertificateIssued)
}

func TestRequireCertificateBeforeCompletion(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 1)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, RequireCertificate(enrollment), ErrInvalidState)

	issued, err := MarkLectureCompleted(db, enrollment, lectures[0])
	require.NoError(t, err)
	require.True(t, issued)

	assert.NoError(t, RequireCertificate(enrollment))
}

func TestApplyProgressUpdateRejectsOutOfRange(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 3)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	for _, bad := range []int{-1, 101} {
		value := bad
		_, err := ApplyProgressUpdate(db, enrollment, ProgressUpdate{Progress: &value})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}

	reloaded, err := GetEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Progress)
}
