package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func validTemplateBody() map[string]interface{} {
	return map[string]interface{}{
		"template_name": "welcome",
		"sender":        "Acme",
		"subject":       "Hello {{ first_name }}",
		"body":          "Hi {{ first_name }}, welcome aboard.",
	}
}

func TestCreateTemplate(t *testing.T) {
	h := newTestHandlers()

	rec := doRequest(t, h, http.MethodPost, "/templates", validTemplateBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeResponse(t, rec)
	require.Equal(t, "Template created successfully", body["message"])
	tpl := body["template"].(map[string]interface{})
	require.Equal(t, "welcome", tpl["template_name"])
	require.Equal(t, "", tpl["from_email"]) // defaulted when omitted
}

func TestCreateTemplateMissingField(t *testing.T) {
	h := newTestHandlers()

	req := validTemplateBody()
	delete(req, "subject")
	rec := doRequest(t, h, http.MethodPost, "/templates", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Failed to create template", decodeResponse(t, rec)["detail"])
}

func TestGetTemplateNotFound(t *testing.T) {
	h := newTestHandlers()

	rec := doRequest(t, h, http.MethodGet, "/templates/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Template not found", decodeResponse(t, rec)["detail"])
}

func TestListTemplates(t *testing.T) {
	h := newTestHandlers()
	doRequest(t, h, http.MethodPost, "/templates", validTemplateBody())

	rec := doRequest(t, h, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	templates := decodeResponse(t, rec)["templates"].([]interface{})
	require.Len(t, templates, 1)
	tpl := templates[0].(map[string]interface{})
	require.Equal(t, "welcome", tpl["template_name"])
	require.Contains(t, tpl, "body_preview")
}

func TestUpdateTemplate(t *testing.T) {
	h := newTestHandlers()
	doRequest(t, h, http.MethodPost, "/templates", validTemplateBody())

	req := validTemplateBody()
	req["subject"] = "Updated subject"
	rec := doRequest(t, h, http.MethodPut, "/templates/1", req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	require.Equal(t, "Template updated successfully", body["message"])
	require.Equal(t, "Updated subject", body["template"].(map[string]interface{})["subject"])
}

func TestDeleteTemplate(t *testing.T) {
	h := newTestHandlers()
	doRequest(t, h, http.MethodPost, "/templates", validTemplateBody())

	rec := doRequest(t, h, http.MethodDelete, "/templates/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Template removed successfully", decodeResponse(t, rec)["message"])

	rec = doRequest(t, h, http.MethodDelete, "/templates/1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Failed to remove template", decodeResponse(t, rec)["detail"])
}

func TestPreviewTemplate(t *testing.T) {
	h := newTestHandlers()
	doRequest(t, h, http.MethodPost, "/templates", validTemplateBody())

	rec := doRequest(t, h, http.MethodPost, "/templates/1/preview", map[string]interface{}{
		"variables": map[string]interface{}{"first_name": "Ada"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	require.Equal(t, "Hello Ada", body["subject"])
	require.Equal(t, "Hi Ada, welcome aboard.", body["body"])
}

func TestPreviewTemplateStrictMissingVariable(t *testing.T) {
	h := newTestHandlers()
	doRequest(t, h, http.MethodPost, "/templates", validTemplateBody())

	rec := doRequest(t, h, http.MethodPost, "/templates/1/preview", map[string]interface{}{
		"variables": map[string]interface{}{},
		"strict":    true,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeResponse(t, rec)["detail"], "first_name")
}

func TestPreviewTemplateNotFound(t *testing.T) {
	h := newTestHandlers()

	rec := doRequest(t, h, http.MethodPost, "/templates/9/preview", map[string]interface{}{
		"variables": map[string]interface{}{},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
