// Package prompts provides a local store of named, versioned prompt
// templates loaded from a YAML library file.
//
// Templates use {name} placeholders compiled with [Template.Compile].
// When a requested prompt is missing from the library, the store falls
// back to a built-in default so the summarization path never fails on a
// bad prompt name.
package prompts

import (
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/veslo-ai/scribe/errors"
)

// DefaultSummarization is the fallback template used when a named prompt
// cannot be resolved from the library.
const DefaultSummarization = "Summarize the following medical consultation transcription. " +
	"Keep the summary factual and concise, preserve clinically relevant details, " +
	"and write in the same language as the transcription.\n\nTranscription:\n{content}\n\nSummary:"

// Template is a single prompt template.
type Template struct {
	Name    string `yaml:"name" json:"name"`
	Version int    `yaml:"version" json:"version"`
	Text    string `yaml:"text" json:"text"`
}

// Compile substitutes {key} placeholders in the template text.
func (t *Template) Compile(vars map[string]string) string {
	out := t.Text
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

// Resolver resolves prompt templates by name and version.
type Resolver interface {
	// Resolve returns the template with the given name. Version 0 selects
	// the highest version available under that name.
	Resolve(name string, version int) (*Template, error)
}

// library is the YAML file schema.
type library struct {
	Prompts []Template `yaml:"prompts"`
}

// Store is a Resolver backed by an in-memory prompt library with a
// built-in default fallback.
type Store struct {
	mu       sync.RWMutex
	prompts  map[string][]Template // name -> versions, ascending
	fallback Template
}

// NewStore creates an empty store carrying only the built-in default.
func NewStore() *Store {
	return &Store{
		prompts: make(map[string][]Template),
		fallback: Template{
			Name: "default-summarization",
			Text: DefaultSummarization,
		},
	}
}

// LoadFile reads a YAML prompt library and merges it into the store.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NotFound("prompt library", path).WithCause(err)
	}
	return s.Load(data)
}

// Load parses YAML prompt library content and merges it into the store.
func (s *Store) Load(data []byte) error {
	var lib library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return errors.InvalidFormat("prompt library", "yaml").WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range lib.Prompts {
		if p.Name == "" || p.Text == "" {
			return errors.MissingField("prompt name/text")
		}
		if p.Version == 0 {
			p.Version = 1
		}
		s.insert(p)
	}
	return nil
}

// insert keeps versions of a name sorted ascending. Caller holds the lock.
func (s *Store) insert(p Template) {
	versions := s.prompts[p.Name]
	for i, existing := range versions {
		if existing.Version == p.Version {
			versions[i] = p
			s.prompts[p.Name] = versions
			return
		}
		if existing.Version > p.Version {
			versions = append(versions[:i], append([]Template{p}, versions[i:]...)...)
			s.prompts[p.Name] = versions
			return
		}
	}
	s.prompts[p.Name] = append(versions, p)
}

// Resolve returns the named template, the newest version when version is 0,
// or the built-in default when the name is empty or unknown.
func (s *Store) Resolve(name string, version int) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		t := s.fallback
		return &t, nil
	}

	versions, ok := s.prompts[name]
	if !ok || len(versions) == 0 {
		t := s.fallback
		return &t, nil
	}

	if version == 0 {
		t := versions[len(versions)-1]
		return &t, nil
	}
	for _, t := range versions {
		if t.Version == version {
			out := t
			return &out, nil
		}
	}

	t := s.fallback
	return &t, nil
}

// Names lists the prompt names available in the library.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.prompts))
	for name := range s.prompts {
		names = append(names, name)
	}
	return names
}
