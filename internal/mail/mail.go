// Package mail delivers the rendered digest over SMTP.
package mail

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrNotConfigured signals missing credentials or recipients. It is a
// configuration error, distinct from a transport failure.
var ErrNotConfigured = errors.New("smtp credentials or recipient list not configured")

// Config holds the SMTP settings, read from the environment by the config
// package.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	To       []string
}

// Sender sends plain-text mail through one SMTP account.
type Sender struct {
	cfg  Config
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg, send: smtp.SendMail}
}

// Send validates the configuration, builds an RFC 5322 message and sends it
// synchronously. Configuration problems surface as ErrNotConfigured.
func (s *Sender) Send(subject, body string) error {
	if err := s.cfg.validate(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port

	if err := s.send(addr, auth, s.cfg.User, s.cfg.To, s.buildMessage(subject, body)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (c Config) validate() error {
	if c.Host == "" || c.User == "" || c.Password == "" || len(c.To) == 0 {
		return ErrNotConfigured
	}
	return nil
}

// buildMessage produces the RFC 5322 wire format: headers, blank line, body,
// all CRLF-separated.
func (s *Sender) buildMessage(subject, body string) []byte {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.User))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(s.cfg.To, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return []byte(msg.String())
}
