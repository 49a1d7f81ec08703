package enquiry

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"gradbridge/models"
)

// Mailer sends enquiry notifications to the counselling team over SMTP.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	to       string
}

func NewMailer() *Mailer {
	return &Mailer{
		host:     envOr("SMTP_HOST", "smtp.gmail.com"),
		port:     envOr("SMTP_PORT", "587"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     envOr("SMTP_FROM", "noreply@gradbridge.app"),
		to:       os.Getenv("ENQUIRY_TO"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsConfigured reports whether outbound mail can be attempted at all.
func (m *Mailer) IsConfigured() bool {
	return m.username != "" && m.password != "" && m.to != ""
}

// SendEnquiry delivers one notification mail. Not retried; the caller
// reports a generic failure to the submitter.
func (m *Mailer) SendEnquiry(e models.Enquiry) error {
	if !m.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}

	body := strings.Join([]string{
		"New enquiry from the website:",
		"",
		"Name:   " + e.Name,
		"Email:  " + e.Email,
		"Number: " + e.Number,
		"City:   " + e.City,
		"",
		"Received " + e.CreatedAt.Format("2006-01-02 15:04 MST"),
	}, "\r\n")

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + m.to + "\r\n" +
		"Subject: New enquiry from " + e.Name + "\r\n" +
		"\r\n" + body + "\r\n")

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{m.to}, msg)
}
