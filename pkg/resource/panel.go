package resource

import (
	"fmt"
	"sort"
	"sync"
)

// Panel is the registry of every resource an application exposes.
// Registration happens during startup; lookups afterwards may run from
// any goroutine.
type Panel struct {
	Title string

	mu        sync.RWMutex
	resources map[string]Resource
}

// NewPanel creates an empty panel.
func NewPanel(title string) *Panel {
	return &Panel{
		Title:     title,
		resources: make(map[string]Resource),
	}
}

// Register adds a resource. Registering the same name twice is an
// error rather than a silent overwrite.
func (p *Panel) Register(r Resource) error {
	if r.Name == "" {
		return fmt.Errorf("panel: resource name cannot be empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.resources[r.Name]; exists {
		return fmt.Errorf("panel: resource %q already registered", r.Name)
	}
	p.resources[r.Name] = r
	return nil
}

// Lookup returns a registered resource by name.
func (p *Panel) Lookup(name string) (Resource, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r, ok := p.resources[name]
	return r, ok
}

// Names returns the registered resource names, sorted.
func (p *Panel) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.resources))
	for name := range p.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
