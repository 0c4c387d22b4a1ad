// Package mailer sends mail over SMTP and probes SMTP server configurations.
//
// The two operations fail differently on purpose. TestConnection runs the
// session by hand so it can tell a server that never answered (ErrConnection)
// from a server that answered and then refused us (ErrAuthentication). Send
// delegates the whole session to gomail and collapses every failure into
// ErrSend; by the time a send is attempted the configuration has already been
// probed, so the finer distinction buys nothing.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"gopkg.in/gomail.v2"
)

// Config holds the connection parameters for one SMTP server.
type Config struct {
	Server   string `json:"smtp_server"`
	Port     int    `json:"smtp_port"`
	UseTLS   bool   `json:"is_tls"`
	Username string `json:"smtp_user"`
	Password string `json:"smtp_passwd"`
}

// Validate rejects configurations that cannot possibly connect.
func (c Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("%w: missing server", ErrConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrConfig, c.Port)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: missing username", ErrConfig)
	}
	return nil
}

// TestConnection dials the server, upgrades to TLS when configured, and
// authenticates with the supplied credentials, then quits. A failure to
// establish the TCP connection is ErrConnection; every failure after that is
// ErrAuthentication, STARTTLS negotiation included.
func TestConnection(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server, cfg.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer client.Close()

	if cfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: cfg.Server}); err != nil {
			return fmt.Errorf("%w: starttls: %v", ErrAuthentication, err)
		}
	}

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Server)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("%w: quit: %v", ErrAuthentication, err)
	}
	return nil
}

// Send composes and delivers one message. The session always attempts the
// STARTTLS upgrade regardless of cfg.UseTLS; that flag only loosens the probe
// in TestConnection.
func Send(cfg Config, senderName, recipient, subject, body string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	msg := Compose(cfg, senderName, recipient, subject, body)

	d := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Server}
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}
