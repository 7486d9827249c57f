package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// Mailer delivers one multipart message.
type Mailer interface {
	Send(to, subject, htmlBody, plainBody string) error
}

type SMTPMailer struct {
	config SMTPConfig
	send   func(m *gomail.Message) error
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return &SMTPMailer{
		config: config,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

// NewMailerWithSender delivers through an existing gomail.Sender.
func NewMailerWithSender(config SMTPConfig, sender gomail.Sender) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		send: func(m *gomail.Message) error {
			return gomail.Send(sender, m)
		},
	}
}

func (s *SMTPMailer) Send(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
