package api

import "net/http"

// Internal errors (database details, file paths, driver messages) are never
// echoed to API consumers. Handlers log the full error server-side and return
// one of the fixed public shapes below.

// failDetail logs the internal error and answers with a fixed public detail
// string.
func (h *Handlers) failDetail(w http.ResponseWriter, status int, err error, endpoint, detail string) {
	if err != nil {
		h.log.Error("request failed", "endpoint", endpoint, "error", err.Error())
	}
	respondDetail(w, status, detail)
}

// failBadRequest logs the internal error and answers with the mail endpoints'
// {message, reason} shape.
func (h *Handlers) failBadRequest(w http.ResponseWriter, err error, endpoint, reason string) {
	if err != nil {
		h.log.Error("request failed", "endpoint", endpoint, "error", err.Error())
	}
	respondBadRequest(w, reason)
}
