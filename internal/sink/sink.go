package sink

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/saniyar-dev/subxray/internal/link"
)

// Sink persists one decoded configuration. Implementations report failures
// through PersistError and never panic past this boundary.
type Sink interface {
	Persist(cfg *link.Config) error
}

// PersistError is per-link: the run skips the config and moves on.
type PersistError struct {
	Name string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %q: %v", e.Name, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

type Factory func(params map[string]interface{}) (Sink, error)

var registry = make(map[string]Factory)

func Register(name string, factory Factory) {
	registry[name] = factory
}

func Get(name string, params map[string]interface{}) (Sink, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("sink plugin %q not found", name)
	}
	return factory(params)
}

// Encode serializes a configuration the way every sink writes it: 4-space
// indent, HTML escaping off so non-ASCII remarks stay literal.
func Encode(cfg *link.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
