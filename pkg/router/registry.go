package router

import (
	"context"
	"strings"
	"sync"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/vdom"
)

// Registry holds the pages of a site in registration order.
type Registry struct {
	mu     sync.RWMutex
	routes []Route
	byPath map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byPath: make(map[string]int)}
}

// Handle registers route.
func (r *Registry) Handle(route Route) error {
	if err := validatePath(route.Path); err != nil {
		return err
	}
	if route.Page == nil {
		return errors.Newf(errors.CategoryRender, "route %s has no page", route.Path)
	}

	key := shape(route.Path)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPath[key]; ok {
		return errors.New("E081").WithSubject(route.Path)
	}
	r.byPath[key] = len(r.routes)
	r.routes = append(r.routes, route)
	return nil
}

// MustHandle is like Handle but panics on error.
func (r *Registry) MustHandle(route Route) {
	if err := r.Handle(route); err != nil {
		panic(err)
	}
}

// Routes returns the registered routes in registration order.
func (r *Registry) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Resolve returns the route matching path. When several patterns match,
// the one with the most literal segments wins.
func (r *Registry) Resolve(path string) (*Match, error) {
	segments := split(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *Match
	bestScore := -1
	for _, route := range r.routes {
		params, score, ok := match(split(route.Path), segments)
		if ok && score > bestScore {
			best = &Match{Route: route, Params: params}
			bestScore = score
		}
	}
	if best == nil {
		return nil, errors.New("E083").WithSubject(path)
	}
	return best, nil
}

// Build loads the page data and composes the page with its layouts.
func (m *Match) Build(ctx context.Context) (*vdom.VNode, error) {
	var data any
	if m.Route.Data != nil {
		var err error
		if data, err = m.Route.Data(ctx, m.Params); err != nil {
			return nil, errors.New("E084").WithSubject(m.Route.Path).Wrap(err)
		}
	}
	return Compose(m.Route, m.Params, data), nil
}

// Compose nests the page inside its layouts. The first layout is the
// innermost.
func Compose(route Route, params map[string]string, data any) *vdom.VNode {
	if params == nil {
		params = map[string]string{}
	}
	node := vdom.Component(route.Page, vdom.Props{PropParams: params, PropData: data})
	for _, layout := range route.Layouts {
		node = vdom.Component(layout, vdom.Props{
			PropParams:   params,
			PropData:     data,
			PropChildren: node,
		})
	}
	return node
}

func validatePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return errors.New("E082").WithSubject(path)
	}
	for _, seg := range split(path) {
		if strings.ContainsAny(seg, "{}") && !isParam(seg) {
			return errors.New("E082").WithSubject(path)
		}
	}
	return nil
}

// shape normalises a pattern so that /a/{x} and /a/{y} collide.
func shape(path string) string {
	segments := split(path)
	for i, seg := range segments {
		if isParam(seg) {
			segments[i] = "{}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func match(pattern, segments []string) (map[string]string, int, bool) {
	if len(pattern) != len(segments) {
		return nil, 0, false
	}
	params := make(map[string]string)
	score := 0
	for i, seg := range pattern {
		if isParam(seg) {
			params[seg[1:len(seg)-1]] = segments[i]
			continue
		}
		if seg != segments[i] {
			return nil, 0, false
		}
		score++
	}
	return params, score, true
}

func isParam(seg string) bool {
	return len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' &&
		!strings.ContainsAny(seg[1:len(seg)-1], "{}/")
}

// split returns the non-empty segments of path.
func split(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
