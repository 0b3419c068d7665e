package templates

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed templates.yaml
var rawRegistry []byte

// ErrUnknownTemplate is returned when an identifier is not registered.
var ErrUnknownTemplate = errors.New("unknown template")

// Rename moves a kept variant directory to its canonical name.
type Rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// PruneRule lists the directories to delete and the renames to apply,
// relative to the project root.
type PruneRule struct {
	Remove []string `yaml:"remove"`
	Rename []Rename `yaml:"rename"`
}

// Template is one selectable starter variant.
type Template struct {
	ID    string    `yaml:"id"`
	Label string    `yaml:"label"`
	Prune PruneRule `yaml:"prune"`
}

// Registry is the fixed set of templates plus the default choice.
type Registry struct {
	Default   string     `yaml:"default"`
	Templates []Template `yaml:"templates"`
}

var (
	builtinOnce sync.Once
	builtin     *Registry
	builtinErr  error
)

// Builtin returns the registry embedded in the binary.
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse(rawRegistry)
		if builtinErr != nil {
			builtinErr = fmt.Errorf("loading built-in templates: %w", builtinErr)
		}
	})
	return builtin, builtinErr
}

// Parse validates and decodes a registry document.
func Parse(data []byte) (*Registry, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding template registry: %w", err)
	}

	seen := make(map[string]bool, len(r.Templates))
	for _, t := range r.Templates {
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true
	}
	if !seen[r.Default] {
		return nil, fmt.Errorf("default template %q is not registered", r.Default)
	}
	return &r, nil
}

// Lookup returns the template with the given identifier.
func (r *Registry) Lookup(id string) (Template, error) {
	for _, t := range r.Templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w %q: choose one of %s", ErrUnknownTemplate, id, strings.Join(r.IDs(), ", "))
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, err := r.Lookup(id)
	return err == nil
}

// IDs returns the registered identifiers in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.Templates))
	for i, t := range r.Templates {
		ids[i] = t.ID
	}
	return ids
}

// Index returns the position of id in the registry, or -1.
func (r *Registry) Index(id string) int {
	for i, t := range r.Templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}
