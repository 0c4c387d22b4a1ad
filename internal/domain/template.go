package domain

import "time"

// Template is a reusable, persisted message skeleton (sender/subject/body)
// not tied to any campaign. Template names are not unique.
type Template struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"template_name" db:"template_name"`
	DateTS    time.Time `json:"date_ts" db:"date_ts"`
	Sender    string    `json:"sender" db:"sender"`
	Subject   string    `json:"subject" db:"subject"`
	FromEmail string    `json:"from_email" db:"from_email"`
	Body      string    `json:"body" db:"body"`
}

// previewLen is how much of the body the list representation carries.
const previewLen = 100

// BodyPreview returns the first 100 characters of the body, with an ellipsis
// when truncated.
func (t *Template) BodyPreview() string {
	if len(t.Body) > previewLen {
		return t.Body[:previewLen] + "..."
	}
	return t.Body
}

// Dict returns the full wire representation of a template.
func (t *Template) Dict() map[string]interface{} {
	return map[string]interface{}{
		"id":            t.ID,
		"template_name": t.Name,
		"date_ts":       t.DateTS.Format(time.RFC3339),
		"sender":        t.Sender,
		"subject":       t.Subject,
		"from_email":    t.FromEmail,
		"body":          t.Body,
		"body_preview":  t.BodyPreview(),
	}
}
