package utils

import (
	"os"

	"gopkg.in/gomail.v2"
)

// SendEmailMessage delivers a message to the customer's email address over
// SMTP. Requires SMTP_HOST, SMTP_USER, SMTP_PASS and SMTP_SENDER.
func SendEmailMessage(email string, subject string, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	return d.DialAndSend(m)
}
