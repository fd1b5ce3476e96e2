// Package pageread holds the prompts for reading one scanned page.
package pageread

import (
	"bytes"
	_ "embed"
	"text/template"

	"scorecut/internal/prompts"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

var userTemplate = template.Must(template.New("user").Parse(userPromptTmpl))

// SystemPrompt returns the system prompt for page-header reading.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt builds the user prompt for one page.
func UserPrompt(pageNumber int) string {
	var buf bytes.Buffer
	data := struct{ PageNumber int }{PageNumber: pageNumber}
	if err := userTemplate.Execute(&buf, data); err != nil {
		// Fallback to raw template on error
		return userPromptTmpl
	}
	return buf.String()
}

// Prompt keys
const (
	SystemPromptKey = "vision.pageread.system"
	UserPromptKey   = "vision.pageread.user"
)

// RegisterPrompts registers the page-reading prompts with the registry.
func RegisterPrompts(r *prompts.Registry) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Page-reading system prompt - extracts the instrument header from a rendered page",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		Description: "Page-reading user prompt template",
	})
}
