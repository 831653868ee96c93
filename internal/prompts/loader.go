// Package prompts holds the model prompts as embedded JSON files, one object
// of key → template per file. Templates use text/template placeholders such as
// {{.ResumeView}}; rendering fails when a placeholder has no value.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// file is one parsed prompt file with its templates compiled on first use
type file struct {
	raw       map[string]string
	templates map[string]*template.Template
}

var (
	mu    sync.Mutex
	files = map[string]*file{}
)

// Get returns the prompt stored under key in filename (e.g. "parsing.json") as written
func Get(filename, key string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := f.raw[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// Render fills the placeholders of the prompt under key from data
func Render(filename, key string, data map[string]string) (string, error) {
	tmpl, err := compiled(filename, key)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return sb.String(), nil
}

// Keys lists the prompt keys of filename in sorted order
func Keys(filename string) ([]string, error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.raw))
	for key := range f.raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func compiled(filename, key string) (*template.Template, error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := load(filename)
	if err != nil {
		return nil, err
	}
	if tmpl, ok := f.templates[key]; ok {
		return tmpl, nil
	}
	text, ok := f.raw[key]
	if !ok {
		return nil, fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	tmpl, err := template.New(key).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template %s/%s: %w", filename, key, err)
	}
	f.templates[key] = tmpl
	return tmpl, nil
}

// load parses filename once. Callers hold mu.
func load(filename string) (*file, error) {
	if f, ok := files[filename]; ok {
		return f, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	f := &file{raw: raw, templates: map[string]*template.Template{}}
	files[filename] = f
	return f, nil
}
