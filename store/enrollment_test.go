package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEnrollment(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 2)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, enrollment.Progress)
	assert.False(t, enrollment.CertificateIssued)
	assert.Empty(t, enrollment.CompletedSet())
	assert.Len(t, enrollment.PublicID, 36)
}

func TestCreateEnrollmentDuplicatePairConflicts(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 2)
	student := seedStudent(t, db, "s1@example.com")

	_, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	_, err = CreateEnrollment(db, student.ID, course.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// A different student may still enroll
	other := seedStudent(t, db, "s2@example.com")
	_, err = CreateEnrollment(db, other.ID, course.ID)
	assert.NoError(t, err)
}

func TestGetEnrollmentNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetEnrollment(db, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEnrollmentsOrderedByLastAccessed(t *testing.T) {
	db := newTestDB(t)
	first, _ := seedCourse(t, db, 1)
	second, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db, "s1@example.com")

	older, err := CreateEnrollment(db, student.ID, first.ID)
	require.NoError(t, err)
	newer, err := CreateEnrollment(db, student.ID, second.ID)
	require.NoError(t, err)

	// Touch the older enrollment so it becomes the most recent
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, UpdateEnrollment(db, older))

	enrollments, err := ListEnrollmentsByUser(db, student.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, older.ID, enrollments[0].ID)
	assert.Equal(t, newer.ID, enrollments[1].ID)
}

func TestUpdateEnrollmentStampsLastAccessedAndVersion(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db, "s1@example.com")

	enrollment, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	before := enrollment.LastAccessed
	version := enrollment.Version

	time.Sleep(5 * time.Millisecond)
	enrollment.Progress = 40
	require.NoError(t, UpdateEnrollment(db, enrollment))

	reloaded, err := GetEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, reloaded.Progress)
	assert.Equal(t, version+1, reloaded.Version)
	assert.True(t, reloaded.LastAccessed.After(before))
}

func TestUpdateEnrollmentStaleVersionConflicts(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db, "s1@example.com")

	created, err := CreateEnrollment(db, student.ID, course.ID)
	require.NoError(t, err)

	copyA, err := GetEnrollment(db, created.ID)
	require.NoError(t, err)
	copyB, err := GetEnrollment(db, created.ID)
	require.NoError(t, err)

	copyA.Progress = 20
	require.NoError(t, UpdateEnrollment(db, copyA))

	// copyB still carries the old version and must not clobber copyA's write
	copyB.Progress = 60
	err = UpdateEnrollment(db, copyB)
	assert.ErrorIs(t, err, ErrVersionConflict)

	reloaded, err := GetEnrollment(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, reloaded.Progress)
}
