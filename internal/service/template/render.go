package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/osteele/liquid"

	"github.com/ignite/mailroom/internal/domain"
)

// RenderMode determines how the renderer handles missing variables.
type RenderMode int

const (
	// RenderModeLax renders missing variables as empty strings.
	RenderModeLax RenderMode = iota
	// RenderModeStrict fails when the template references a variable the
	// caller did not supply (preview/validation).
	RenderModeStrict
)

// Preview is the rendered form of a template.
type Preview struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Renderer renders template subjects and bodies through a Liquid engine.
type Renderer struct {
	engine *liquid.Engine
}

// NewRenderer creates a renderer with the standard filter set.
func NewRenderer() *Renderer {
	engine := liquid.NewEngine()

	// Default value filter: {{ first_name | default: "Friend" }}
	engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		strVal := fmt.Sprintf("%v", value)
		if strVal == "" || strVal == "<nil>" {
			return defaultVal
		}
		return value
	})

	// Truncate with ellipsis: {{ bio | truncate: 50 }}
	engine.RegisterFilter("truncate", func(s string, length int) string {
		if len(s) <= length {
			return s
		}
		if length <= 3 {
			return s[:length]
		}
		return s[:length-3] + "..."
	})

	return &Renderer{engine: engine}
}

var variableRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)`)

// Render renders the template's subject and body against vars. In strict
// mode, referencing a variable absent from vars is an error naming every
// missing variable.
func (r *Renderer) Render(t *domain.Template, vars map[string]interface{}, mode RenderMode) (*Preview, error) {
	if mode == RenderModeStrict {
		if missing := missingVariables(t.Subject+"\n"+t.Body, vars); len(missing) > 0 {
			return nil, fmt.Errorf("missing template variables: %s", strings.Join(missing, ", "))
		}
	}

	subject, err := r.engine.ParseAndRenderString(t.Subject, vars)
	if err != nil {
		return nil, fmt.Errorf("render subject: %w", err)
	}
	body, err := r.engine.ParseAndRenderString(t.Body, vars)
	if err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	return &Preview{Subject: subject, Body: body}, nil
}

func missingVariables(source string, vars map[string]interface{}) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, m := range variableRegex.FindAllStringSubmatch(source, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
