package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ignite/mailroom/internal/service/campaign"
)

type campaignRequest struct {
	Name   string   `json:"name"`
	Emails []string `json:"emails"`
}

// ListCampaigns returns every campaign with its full target detail,
// newest first.
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.campaigns.List(r.Context())
	if err != nil {
		h.failDetail(w, http.StatusInternalServerError, err, "/campaigns", "Server error")
		return
	}

	if len(list) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"campaigns": []interface{}{},
			"message":   "No campaigns available",
		})
		return
	}

	data := make([]map[string]interface{}, 0, len(list))
	for i := range list {
		c := &list[i]
		emails := make([]map[string]interface{}, 0, len(c.Targets))
		for j := range c.Targets {
			emails = append(emails, c.Targets[j].Dict(c.Name))
		}
		data = append(data, map[string]interface{}{
			"id":         c.ID,
			"name":       c.Name,
			"created_at": c.CreatedAt.Format(time.RFC3339),
			"emails":     emails,
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"campaigns": data})
}

// GetCampaign returns one campaign with a flat list of its target addresses.
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Campaign not found")
		return
	}

	detail, err := h.campaigns.Get(r.Context(), id)
	if errors.Is(err, campaign.ErrNotFound) {
		respondDetail(w, http.StatusNotFound, "Campaign not found")
		return
	}
	if err != nil {
		h.failDetail(w, http.StatusInternalServerError, err, "/campaigns/{id}", "Server error")
		return
	}

	targets := detail.Targets
	if targets == nil {
		targets = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"campaign": map[string]interface{}{
			"id":         detail.ID,
			"name":       detail.Name,
			"created_at": detail.CreatedAt.Format(time.RFC3339),
			"targets":    targets,
		},
	})
}

// CreateCampaign creates a campaign and its target addresses in one
// transaction.
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := decodeBody(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.campaigns.Create(r.Context(), req.Name, req.Emails)
	switch {
	case errors.Is(err, campaign.ErrEmptyName):
		respondDetail(w, http.StatusBadRequest, "Campaign name is required")
		return
	case errors.Is(err, campaign.ErrInvalidEmail):
		respondDetail(w, http.StatusBadRequest, "Targets must be a list of valid email addresses")
		return
	case err != nil:
		h.failDetail(w, http.StatusInternalServerError, err, "/campaigns", "Failed to create campaign")
		return
	}

	emails := make([]string, 0, len(c.Targets))
	for i := range c.Targets {
		emails = append(emails, c.Targets[i].Email)
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         c.ID,
		"name":       c.Name,
		"created_at": c.CreatedAt.Format(time.RFC3339),
		"emails":     emails,
	})
}

// UpdateCampaign renames a campaign and reconciles its target set against the
// supplied emails. Every failure, not-found included, answers 400 with the
// same detail string; callers distinguish success by the message field.
func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Failed to update target")
		return
	}

	var req campaignRequest
	if err := decodeBody(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Failed to update target")
		return
	}

	c, err := h.campaigns.Update(r.Context(), id, req.Name, req.Emails)
	if err != nil {
		h.failDetail(w, http.StatusBadRequest, err, "/campaigns/{id}", "Failed to update target")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Campaign updated successfully",
		"target":  c.Dict(),
	})
}

// DeleteCampaign removes a campaign; its targets go with it.
func (h *Handlers) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Failed to remove target")
		return
	}

	c, err := h.campaigns.Delete(r.Context(), id)
	if err != nil {
		h.failDetail(w, http.StatusBadRequest, err, "/campaigns/{id}", "Failed to remove target")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Campaign removed successfully",
		"target":  c.Dict(),
	})
}
