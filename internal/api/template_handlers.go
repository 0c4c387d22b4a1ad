package api

import (
	"errors"
	"net/http"

	"github.com/ignite/mailroom/internal/service/template"
)

const templateErrReason = "An error occurred in code, please contact owner of the code"

type templateRequest struct {
	Name      string `json:"template_name"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	FromEmail string `json:"from_email"`
	Body      string `json:"body"`
}

func (req templateRequest) input() template.Input {
	return template.Input{
		Name:      req.Name,
		Sender:    req.Sender,
		Subject:   req.Subject,
		FromEmail: req.FromEmail,
		Body:      req.Body,
	}
}

// ListTemplates returns every template, newest first.
func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := h.templates.List(r.Context())
	if err != nil {
		h.failBadRequest(w, err, "/templates", templateErrReason)
		return
	}

	data := make([]map[string]interface{}, 0, len(list))
	for i := range list {
		data = append(data, list[i].Dict())
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"templates": data})
}

// GetTemplate returns one template.
func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Template not found")
		return
	}

	t, err := h.templates.Get(r.Context(), id)
	if errors.Is(err, template.ErrNotFound) {
		respondDetail(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		h.failBadRequest(w, err, "/templates/{id}", templateErrReason)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"template": t.Dict()})
}

// CreateTemplate persists a new template. from_email may be omitted.
func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decodeBody(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Failed to create template")
		return
	}

	t, err := h.templates.Create(r.Context(), req.input())
	if err != nil {
		h.failDetail(w, http.StatusBadRequest, err, "/templates", "Failed to create template")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Template created successfully",
		"template": t.Dict(),
	})
}

// UpdateTemplate replaces every field of an existing template.
func (h *Handlers) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Failed to update template")
		return
	}

	var req templateRequest
	if err := decodeBody(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Failed to update template")
		return
	}

	t, err := h.templates.Update(r.Context(), id, req.input())
	if err != nil {
		h.failDetail(w, http.StatusBadRequest, err, "/templates/{id}", "Failed to update template")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Template updated successfully",
		"template": t.Dict(),
	})
}

// DeleteTemplate removes a template and returns its prior state.
func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondDetail(w, http.StatusBadRequest, "Failed to remove template")
		return
	}

	t, err := h.templates.Delete(r.Context(), id)
	if err != nil {
		h.failDetail(w, http.StatusBadRequest, err, "/templates/{id}", "Failed to remove template")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Template removed successfully",
		"template": t.Dict(),
	})
}

type previewRequest struct {
	Variables map[string]interface{} `json:"variables"`
	Strict    bool                   `json:"strict"`
}

// PreviewTemplate renders a template's subject and body against a
// caller-supplied variable map.
func (h *Handlers) PreviewTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Template not found")
		return
	}

	var req previewRequest
	if err := decodeBody(r, &req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.templates.Get(r.Context(), id)
	if errors.Is(err, template.ErrNotFound) {
		respondDetail(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		h.failBadRequest(w, err, "/templates/{id}/preview", templateErrReason)
		return
	}

	mode := template.RenderModeLax
	if req.Strict {
		mode = template.RenderModeStrict
	}
	preview, err := h.renderer.Render(t, req.Variables, mode)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, preview)
}
