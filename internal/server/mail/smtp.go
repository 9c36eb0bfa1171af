package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPMailer sends mail through a plain SMTP endpoint. When User is empty
// the connection is unauthenticated (local relay / mailhog in development).
type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewSMTPMailer constructs a Mailer over the given SMTP settings.
func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Password: password, From: from}
}

// sendMail is a seam for testing smtp.SendMail.
var sendMail = smtp.SendMail

// SendVerification delivers the verification link to the given address.
func (m *SMTPMailer) SendVerification(ctx context.Context, to, link string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Email Verification\r\n\r\n"+
		"Click this link to verify your email: %s\r\n", m.From, to, link)

	var a smtp.Auth
	if m.User != "" {
		a = smtp.PlainAuth("", m.User, m.Password, m.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	if err := sendMail(addr, a, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending verification mail: %w", err)
	}
	return nil
}
