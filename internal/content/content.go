// Package content provides the read-only timeline and message pool.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embedded []byte

// Entry is one timeline item.
type Entry struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Provider is an immutable source of static content.
type Provider interface {
	Timeline() []Entry
	Messages() []string
}

// Static is a Provider backed by parsed YAML.
type Static struct {
	TimelineEntries []Entry  `yaml:"timeline"`
	MessagePool     []string `yaml:"messages"`
}

func (s *Static) Timeline() []Entry  { return s.TimelineEntries }
func (s *Static) Messages() []string { return s.MessagePool }

// Default returns the embedded content.
func Default() *Static {
	s, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return s
}

// Load reads a content override file. An empty path returns Default().
func Load(path string) (*Static, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return Parse(data)
}

// Parse decodes content YAML. The message pool must not be empty since the
// reveal screen always draws from it.
func Parse(data []byte) (*Static, error) {
	var s Static
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if len(s.MessagePool) == 0 {
		return nil, fmt.Errorf("parsing content: no messages")
	}
	return &s, nil
}
