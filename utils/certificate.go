package utils

import (
	"fmt"
	"strings"
	"time"

	courseModels "lms/models/course"
)

// CertificateRecord is the structured certificate handed back to the caller
// and to the external renderer. It is derived, never persisted.
type CertificateRecord struct {
	CertificateID  string     `json:"certificate_id"`
	StudentName    string     `json:"student_name"`
	CourseTitle    string     `json:"course_title"`
	InstructorName string     `json:"instructor_name"`
	CompletedAt    *time.Time `json:"completed_at"`
	IssuedAt       *time.Time `json:"issued_at"`
}

// CertificateNumber derives the human-readable certificate id from the
// enrollment's public id: the last 8 hex characters, uppercased. The same
// enrollment always yields the same number.
func CertificateNumber(publicID string) string {
	cleaned := strings.ReplaceAll(publicID, "-", "")
	if len(cleaned) > 8 {
		cleaned = cleaned[len(cleaned)-8:]
	}
	return "CERT-" + strings.ToUpper(cleaned)
}

// BuildCertificate assembles the certificate record for an issued
// enrollment.
func BuildCertificate(enrollment *courseModels.Enrollment, studentName, courseTitle, instructorName string) CertificateRecord {
	return CertificateRecord{
		CertificateID:  CertificateNumber(enrollment.PublicID),
		StudentName:    studentName,
		CourseTitle:    courseTitle,
		InstructorName: instructorName,
		CompletedAt:    enrollment.CompletedAt,
		IssuedAt:       enrollment.CertificateIssuedAt,
	}
}

// CertificateDownloadPath is the opaque download reference returned with the
// certificate record.
func CertificateDownloadPath(enrollmentID uint) string {
	return fmt.Sprintf("/user/enrollments/%d/certificate/download", enrollmentID)
}
