package uast

import (
	"cmp"
	"slices"
	"sync"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// Registry holds the registered frontends ordered by descending priority.
// Plugins registered with equal priority keep registration order. It is
// append-only and safe for concurrent use.
type Registry struct {
	plugins []Plugin
	mu      sync.RWMutex
}

// NewRegistry returns a registry holding plugins in the given order.
func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{}

	for _, p := range plugins {
		r.Register(p)
	}

	return r
}

// Register adds p.
func (r *Registry) Register(p Plugin) {
	if p == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.plugins = append(r.plugins, p)

	slices.SortStableFunc(r.plugins, func(a, b Plugin) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
}

// Plugins returns a snapshot of the plugins in dispatch order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.plugins)
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}

// PluginFor returns the first plugin that accepts n by file or language.
func (r *Registry) PluginFor(n native.Node) Plugin {
	for _, p := range r.Plugins() {
		if Supports(p, n) {
			return p
		}
	}

	return nil
}

// PluginForFile returns the first plugin that owns fileName.
func (r *Registry) PluginForFile(fileName string) Plugin {
	for _, p := range r.Plugins() {
		if p.IsFileSupported(fileName) {
			return p
		}
	}

	return nil
}

// ByLanguage returns the first plugin for lang.
func (r *Registry) ByLanguage(lang native.Language) Plugin {
	for _, p := range r.Plugins() {
		if p.Language() == lang {
			return p
		}
	}

	return nil
}
