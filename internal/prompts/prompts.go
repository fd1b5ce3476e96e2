// Package prompts manages the embedded LLM prompts used by the vision
// header reader.
//
// Embedded .tmpl files in code are the source of truth. Each prompt
// subpackage registers its prompts at startup so operator tooling can list
// the exact prompt text a given build ships with.
package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"sync"
)

// EmbeddedPrompt is a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   // hierarchical key: vision.pageread.system
	Text        string   // the prompt text (Go template)
	Description string   // human-readable description
	Variables   []string // extracted template variables
	Hash        string   // SHA256 hash of the text for change detection
}

// Registry holds the embedded prompts registered by prompt subpackages.
type Registry struct {
	mu      sync.RWMutex
	prompts map[string]EmbeddedPrompt
}

// NewRegistry creates an empty prompt registry.
func NewRegistry() *Registry {
	return &Registry{prompts: make(map[string]EmbeddedPrompt)}
}

// Register adds an embedded prompt, computing its hash and variables when
// not provided.
func (r *Registry) Register(prompt EmbeddedPrompt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prompt.Hash == "" {
		prompt.Hash = HashText(prompt.Text)
	}
	if prompt.Variables == nil {
		prompt.Variables = ExtractVariables(prompt.Text)
	}
	r.prompts[prompt.Key] = prompt
}

// Get returns a registered prompt by key.
func (r *Registry) Get(key string) (EmbeddedPrompt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prompts[key]
	return p, ok
}

// List returns all registered prompts sorted by key.
func (r *Registry) List() []EmbeddedPrompt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]EmbeddedPrompt, 0, len(r.prompts))
	for _, p := range r.prompts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// variablePattern matches Go template variable references like {{.VarName}}
// or {{ .VarName }}, including nested fields like {{.Page.Number}}.
var variablePattern = regexp.MustCompile(`\{\{\s*\.([a-zA-Z_][a-zA-Z0-9_.]*)\s*\}\}`)

// ExtractVariables extracts template variable names from a Go template
// string. For example, "Page {{.Number}} of {{.Total}}" returns
// ["Number", "Total"].
func ExtractVariables(text string) []string {
	matches := variablePattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var vars []string

	for _, match := range matches {
		if len(match) > 1 && !seen[match[1]] {
			seen[match[1]] = true
			vars = append(vars, match[1])
		}
	}

	sort.Strings(vars)
	return vars
}

// HashText returns a SHA256 hash of the text for change detection.
func HashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
