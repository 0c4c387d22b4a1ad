package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ignite/mailroom/internal/mailbox"
)

// GetMailbox fetches the most recent messages from a caller-supplied IMAP
// inbox. Connection parameters arrive as query parameters; nothing is stored.
func (h *Handlers) GetMailbox(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	server := q.Get("imap_server")
	portParam := q.Get("imap_port")
	username := q.Get("username")
	password := q.Get("password")
	if server == "" || portParam == "" || username == "" || password == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing required IMAP parameters",
		})
		return
	}

	port, err := strconv.Atoi(portParam)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing required IMAP parameters",
		})
		return
	}

	useSSL := true
	if v := q.Get("use_ssl"); v != "" {
		useSSL = strings.EqualFold(v, "true")
	}

	cfg := mailbox.Config{
		Server:   server,
		Port:     port,
		Username: username,
		Password: password,
		UseSSL:   useSSL,
	}

	msgs, err := h.fetchInbox(r.Context(), cfg, h.mailboxLimit)
	switch {
	case errors.Is(err, mailbox.ErrConfig):
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing required IMAP parameters",
		})
		return
	case errors.Is(err, mailbox.ErrConnection):
		h.log.Error("imap fetch failed", "endpoint", "/mailbox", "error", err.Error())
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "IMAP connection failed",
			"details": err.Error(),
		})
		return
	case err != nil:
		h.log.Error("mailbox fetch failed", "endpoint", "/mailbox", "error", err.Error())
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to fetch emails",
			"details": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"emails": msgs})
}
