// Package api glues the HTTP surface to the campaign, template, and mail
// services. Every handler converts errors into a stable status code and a
// fixed response shape at its boundary; nothing escapes as a raw internal
// error.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/mailroom/internal/mailbox"
	"github.com/ignite/mailroom/internal/mailer"
	"github.com/ignite/mailroom/internal/pkg/logger"
	"github.com/ignite/mailroom/internal/service/campaign"
	"github.com/ignite/mailroom/internal/service/template"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	campaigns *campaign.Service
	templates *template.Service
	renderer  *template.Renderer
	log       *logger.Logger

	mailboxLimit int

	// Seams for the outbound network calls, overridable in tests.
	sendMail   func(cfg mailer.Config, senderName, recipient, subject, body string) error
	testSMTP   func(cfg mailer.Config) error
	fetchInbox func(ctx context.Context, cfg mailbox.Config, limit int) ([]mailbox.MessageSummary, error)
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(campaigns *campaign.Service, templates *template.Service, log *logger.Logger, mailboxLimit int) *Handlers {
	return &Handlers{
		campaigns:    campaigns,
		templates:    templates,
		renderer:     template.NewRenderer(),
		log:          log,
		mailboxLimit: mailboxLimit,
		sendMail:     mailer.Send,
		testSMTP:     mailer.TestConnection,
		fetchInbox:   mailbox.FetchRecent,
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// respondBadRequest is the original API's catch-all failure shape for the
// mail endpoints.
func respondBadRequest(w http.ResponseWriter, reason string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{
		"message": "Bad request",
		"reason":  reason,
	})
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// urlID parses the {id} route parameter. ok is false when it is not a
// positive integer.
func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
