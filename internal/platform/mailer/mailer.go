// Package mailer sends transactional email over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"magang_backend/internal/config"
)

// Mailer delivers one-time codes and notifications by email.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a Mailer from the SMTP configuration.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendVerificationCode mails an email-verification OTP.
func (m *Mailer) SendVerificationCode(to, name, code string) error {
	subject := "Kode Verifikasi Akun Magang"
	body := fmt.Sprintf(
		"Halo %s,\n\nKode verifikasi akun Anda adalah: %s\n\nKode ini berlaku selama 10 menit. Jangan bagikan kode ini kepada siapa pun.",
		name, code)
	return m.send(to, subject, body)
}

// SendResetCode mails a password-reset code.
func (m *Mailer) SendResetCode(to, name, code string) error {
	subject := "Kode Reset Kata Sandi"
	body := fmt.Sprintf(
		"Halo %s,\n\nKode reset kata sandi Anda adalah: %s\n\nJika Anda tidak meminta reset, abaikan email ini.",
		name, code)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
