package mailer

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// htmlTagRegex marks a body as HTML as soon as it contains anything
// tag-shaped. Plain text with a stray "<" but no closing ">" stays plain.
var htmlTagRegex = regexp.MustCompile(`<.*?>`)

// IsHTML reports whether body should be sent as text/html.
func IsHTML(body string) bool {
	return htmlTagRegex.MatchString(body)
}

// Compose builds a sendable message. The From address is the authenticated
// SMTP user with the caller's display name; relays commonly reject mail whose
// envelope sender differs from the login. The body is sent either as text/html
// or as text/plain depending on its content; an HTML body carries no
// plain-text alternative. The Message-ID domain is the SMTP server host so
// replies and threading trace back to the sending relay.
func Compose(cfg Config, senderName, recipient, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", cfg.Username, senderName)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.New().String(), cfg.Server))
	m.SetDateHeader("Date", time.Now())

	if IsHTML(body) {
		m.SetBody("text/html", body)
	} else {
		m.SetBody("text/plain", body)
	}
	return m
}
