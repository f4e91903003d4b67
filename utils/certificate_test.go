package utils

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
)

func TestCertificateNumberIsDeterministic(t *testing.T) {
	publicID := "3f8a1b2c-4d5e-6f70-8192-a3b4c5d6e7f8"

	first := CertificateNumber(publicID)
	second := CertificateNumber(publicID)

	assert.Equal(t, first, second)
	assert.Equal(t, "CERT-C5D6E7F8", first)
}

func TestCertificateNumberShape(t *testing.T) {
	got := CertificateNumber("0a1b2c3d-0000-0000-0000-deadbeef1234")

	assert.Len(t, got, len("CERT-")+8)
	assert.Equal(t, "CERT-", got[:5])
	assert.Equal(t, "CERT-BEEF1234", got)
}

func TestBuildCertificate(t *testing.T) {
	completed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	issued := completed.Add(time.Second)

	enrollment := &courseModels.Enrollment{
		PublicID:            "3f8a1b2c-4d5e-6f70-8192-a3b4c5d6e7f8",
		CompletedAt:         &completed,
		CertificateIssuedAt: &issued,
	}

	record := BuildCertificate(enrollment, "Grace Hopper", "Compilers 101", "Ada Lovelace")

	assert.Equal(t, "CERT-C5D6E7F8", record.CertificateID)
	assert.Equal(t, "Grace Hopper", record.StudentName)
	assert.Equal(t, "Compilers 101", record.CourseTitle)
	assert.Equal(t, "Ada Lovelace", record.InstructorName)
	assert.Equal(t, &completed, record.CompletedAt)
	assert.Equal(t, &issued, record.IssuedAt)
}

func TestCertificateDownloadPath(t *testing.T) {
	assert.Equal(t, "/user/enrollments/17/certificate/download", CertificateDownloadPath(17))
}
