package islands

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/vdom"
)

// Registry maps island names to the components that render them. The same
// registry is used on the server, to find islands in a page, and on the
// client, to look up the component a live island hydrates with.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]vdom.ComponentFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]vdom.ComponentFunc)}
}

// Register adds fn under the island name derived from key. key may be a
// bare name or a module path such as "islands/$counter.go".
//
// Components are identified by their code pointer (vdom.SameComponent).
// Closures returned by one factory share that pointer and cannot be told
// apart, so registering a second one under another name fails with E042.
// Register a named function per island instead.
func (r *Registry) Register(key string, fn vdom.ComponentFunc) error {
	name := IslandName(key)
	if name == "" || fn == nil {
		return errors.Newf(errors.CategoryHydration, "invalid island registration %q", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; ok {
		return errors.New("E042").WithSubject(name)
	}
	for other, candidate := range r.byName {
		if vdom.SameComponent(candidate, fn) {
			return errors.New("E042").
				WithSubject(name).
				WithDetail("The component is already registered as " + other + ".")
		}
	}
	r.byName[name] = fn
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(key string, fn vdom.ComponentFunc) {
	if err := r.Register(key, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (vdom.ComponentFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.byName[name]
	return fn, ok
}

// NameOf returns the name fn is registered under. Identity is the code
// pointer, so any closure sharing the registered function's code matches.
func (r *Registry) NameOf(fn vdom.ComponentFunc) (string, bool) {
	if fn == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, candidate := range r.byName {
		if vdom.SameComponent(candidate, fn) {
			return name, true
		}
	}
	return "", false
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered islands.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// IslandName derives an island name from a registration key: the base name
// without extension, with every "$" removed.
//
//	IslandName("islands/$counter.tsx") == "counter"
func IslandName(key string) string {
	base := path.Base(strings.ReplaceAll(key, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.ReplaceAll(base, "$", "")
}
