package utils

import (
	"fmt"
	"net/smtp"

	"lms/config"
)

// SendCertificateEmail notifies a student that their course-completion
// certificate has been issued.
func SendCertificateEmail(name, email, courseTitle, certificateNumber string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	to := []string{
		email,
	}

	subject := "Subject: Your Course Completion Certificate\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333;">Congratulations, %s!</h2>
					<p style="color: #555;">You have completed <strong>%s</strong>.</p>
					<p style="color: #555;">Your certificate number is:</p>
					<p style="font-size: 24px; font-weight: bold; color: #2c7be5;">%s</p>
					<p style="color: #999; font-size: 12px;">You can download the certificate from your enrollments page.</p>
				</div>
			</body>
		</html>`, name, courseTitle, certificateNumber)

	message := []byte(subject + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
}
