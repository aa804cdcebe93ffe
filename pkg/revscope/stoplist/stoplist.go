package stoplist

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed stopwords-en.yaml
var defaultEnglish []byte

// File is the on-disk stoplist format.
type File struct {
	Terms []string `yaml:"terms"`
}

// Manager holds a closed set of stopwords
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a manager from the given terms. Terms are lowercased.
func NewManager(terms []string) *Manager {
	stops := make(map[string]struct{}, len(terms))
	for _, s := range terms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		stops[s] = struct{}{}
	}
	return &Manager{stops: stops}
}

// defaultTerms parses the embedded set once. Managers copy the terms into
// their own map, so the slice is never mutated.
var defaultTerms = sync.OnceValue(func() []string {
	terms, err := parse(defaultEnglish)
	if err != nil {
		// embedded asset is fixed at build time
		panic(fmt.Sprintf("stoplist: parse embedded stopwords: %v", err))
	}
	return terms
})

// Default returns a manager loaded with the built-in English stopword set.
func Default() *Manager {
	return NewManager(defaultTerms())
}

// Load reads a stoplist YAML file.
func Load(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	terms, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}
	return NewManager(terms), nil
}

func parse(data []byte) ([]string, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Terms, nil
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	m.stops[strings.ToLower(token)] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in sorted order
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}
