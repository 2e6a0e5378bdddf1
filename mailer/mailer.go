package mailer

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gomail "gopkg.in/mail.v2"
)

const (
	FromName   = "CityGuide"
	maxRetries = 3
)

// Client sends transactional mail. Handlers depend on the interface so
// tests can substitute a fake.
type Client interface {
	SendOTP(toEmail, name, otp string) error
}

type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewFromEnv builds an SMTP mailer from EMAIL_USER / EMAIL_PASS /
// SMTP_HOST / SMTP_PORT.
func NewFromEnv() Client {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	return &smtpMailer{
		host:     host,
		port:     port,
		username: os.Getenv("EMAIL_USER"),
		password: os.Getenv("EMAIL_PASS"),
		from:     os.Getenv("EMAIL_USER"),
	}
}

func (m *smtpMailer) SendOTP(toEmail, name, otp string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, FromName)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your CityGuide verification code")
	msg.SetBody("text/html", otpBody(name, otp))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if lastErr = dialer.DialAndSend(msg); lastErr == nil {
			return nil
		}
		time.Sleep(time.Duration(i+1) * 500 * time.Millisecond)
	}
	return fmt.Errorf("sending OTP email: %w", lastErr)
}

func otpBody(name, otp string) string {
	return fmt.Sprintf(`<div style="font-family:sans-serif;max-width:480px">
<h2>Hello %s,</h2>
<p>Use the code below to verify your email address. It expires in 10 minutes.</p>
<p style="font-size:28px;letter-spacing:6px;font-weight:bold">%s</p>
<p>If you did not request this, you can safely ignore this email.</p>
</div>`, name, otp)
}
