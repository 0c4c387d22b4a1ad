package api

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/ignite/mailroom/internal/mailer"
)

const requiredFieldMsg = "This field is required."

type sendRequest struct {
	SMTPAuth  mailer.Config `json:"smtp_auth"`
	Sender    string        `json:"sender"`
	Recipient string        `json:"recipient"`
	Subject   string        `json:"subject"`
	Body      string        `json:"body"`
}

// fieldErrors mimics the original API's validation failure shape: a map of
// field name to a list of problems.
func (req sendRequest) fieldErrors() map[string][]string {
	errs := map[string][]string{}
	if req.SMTPAuth.Server == "" {
		errs["smtp_auth.smtp_server"] = []string{requiredFieldMsg}
	}
	if req.SMTPAuth.Port == 0 {
		errs["smtp_auth.smtp_port"] = []string{requiredFieldMsg}
	}
	if req.SMTPAuth.Username == "" {
		errs["smtp_auth.smtp_user"] = []string{requiredFieldMsg}
	}
	if req.SMTPAuth.Password == "" {
		errs["smtp_auth.smtp_passwd"] = []string{requiredFieldMsg}
	}
	if req.Sender == "" {
		errs["sender"] = []string{requiredFieldMsg}
	}
	if req.Subject == "" {
		errs["subject"] = []string{requiredFieldMsg}
	}
	if req.Body == "" {
		errs["body"] = []string{requiredFieldMsg}
	}
	if req.Recipient == "" {
		errs["recipient"] = []string{requiredFieldMsg}
	} else if _, err := mail.ParseAddress(req.Recipient); err != nil {
		errs["recipient"] = []string{"Enter a valid email address."}
	}
	return errs
}

// SendMail composes and delivers one email through the caller-supplied SMTP
// relay, answering {ack:true} on success.
func (h *Handlers) SendMail(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "Bad format")
		return
	}
	if errs := req.fieldErrors(); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, errs)
		return
	}

	err := h.sendMail(req.SMTPAuth, req.Sender, req.Recipient, req.Subject, req.Body)
	switch {
	case errors.Is(err, mailer.ErrSend):
		h.failBadRequest(w, err, "/send", "Bad format")
		return
	case err != nil:
		h.failBadRequest(w, err, "/send", "An error occurred in code, please contact owner of the code")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ack": true})
}

// TestSMTP probes an SMTP configuration, distinguishing an unreachable server
// from rejected credentials.
func (h *Handlers) TestSMTP(w http.ResponseWriter, r *http.Request) {
	var cfg mailer.Config
	if err := decodeBody(r, &cfg); err != nil {
		respondBadRequest(w, "Bad format")
		return
	}

	errs := map[string][]string{}
	if cfg.Server == "" {
		errs["smtp_server"] = []string{requiredFieldMsg}
	}
	if cfg.Port == 0 {
		errs["smtp_port"] = []string{requiredFieldMsg}
	}
	if cfg.Username == "" {
		errs["smtp_user"] = []string{requiredFieldMsg}
	}
	if cfg.Password == "" {
		errs["smtp_passwd"] = []string{requiredFieldMsg}
	}
	if len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, errs)
		return
	}

	err := h.testSMTP(cfg)
	switch {
	case errors.Is(err, mailer.ErrConnection):
		h.failBadRequest(w, err, "/testsmtp", "Bad SMTP server configuration (domain/port)")
		return
	case errors.Is(err, mailer.ErrAuthentication):
		h.failBadRequest(w, err, "/testsmtp", "Bad authentication username/password")
		return
	case err != nil:
		h.failBadRequest(w, err, "/testsmtp", "An error occurred in code, please contact the owner of the code")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ack": true})
}
