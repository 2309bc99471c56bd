package islands

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/vdom"
)

// Attributes stamped onto an island's root element.
const (
	AttrIsland = "data-island"
	AttrProps  = "data-props"
)

// Island is one island occurrence in a rendered page.
type Island struct {
	// ID is the id attribute of the island's root element.
	ID string `json:"id"`

	// Name is the registry name of the island component.
	Name string `json:"name"`

	// Props are the component props, sent to the browser as JSON.
	Props vdom.Props `json:"props,omitempty"`
}

// FindOption configures Find.
type FindOption func(*finder)

// WithIDGenerator replaces the random island id source.
func WithIDGenerator(gen func() string) FindOption {
	return func(f *finder) {
		if gen != nil {
			f.newID = gen
		}
	}
}

type finder struct {
	registry *Registry
	newID    func() string
	found    []Island
}

// Find walks v in document order and returns every island in it. An island
// is a component node whose function is registered in reg. Each island's
// root element is stamped with a fresh id, its name and its props; Find
// does not descend into islands, so nested islands hydrate as part of
// their outer island.
func Find(v *vdom.VNode, reg *Registry, opts ...FindOption) ([]Island, error) {
	f := &finder{registry: reg, newID: RandomID}
	for _, opt := range opts {
		opt(f)
	}
	if reg.Len() == 0 {
		return nil, nil
	}
	var err error
	vdom.Walk(v, func(n *vdom.VNode) bool {
		if err != nil {
			return false
		}
		if n.Kind != vdom.KindComponent {
			return true
		}
		name, ok := f.registry.NameOf(n.Fn)
		if !ok {
			return true
		}
		island := Island{ID: f.newID(), Name: name, Props: n.Props}
		if err = Stamp(n, island); err != nil {
			return false
		}
		f.found = append(f.found, island)
		return false
	})
	if err != nil {
		return nil, err
	}
	return f.found, nil
}

// Stamp writes island's id, name and props onto the root element of the
// component node v. The element gets a new Props map; the previous one is
// left untouched.
func Stamp(v *vdom.VNode, island Island) error {
	root := vdom.Unwrap(v)
	if !root.IsElement() {
		return errors.New("E043").WithSubject(island.Name)
	}
	props := make(vdom.Props, len(root.Props)+3)
	for k, v := range root.Props {
		props[k] = v
	}
	props["id"] = island.ID
	props[AttrIsland] = island.Name
	if len(island.Props) > 0 {
		data, err := json.Marshal(island.Props)
		if err != nil {
			return errors.New("E046").WithSubject(island.Name).Wrap(err)
		}
		props[AttrProps] = string(data)
	}
	root.Props = props
	return nil
}

// RandomID returns 8 random hex characters.
func RandomID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("islands: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}
