package islands

import (
	"context"
	"encoding/json"

	"golang.org/x/net/html"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/dom"
	"github.com/vango-dev/cargo/pkg/mount"
	"github.com/vango-dev/cargo/pkg/vdom"
)

// Discover returns the islands stamped into a live tree, in document order.
// It does not descend into islands.
func Discover(root *html.Node) ([]Island, error) {
	var found []Island
	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode {
			if name, ok := dom.GetAttribute(n, AttrIsland); ok {
				id, _ := dom.GetAttribute(n, "id")
				island := Island{ID: id, Name: name}
				if data, ok := dom.GetAttribute(n, AttrProps); ok && data != "" {
					if err := json.Unmarshal([]byte(data), &island.Props); err != nil {
						return errors.New("E047").WithSubject(name).Wrap(err)
					}
				}
				found = append(found, island)
				return nil
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if root == nil {
		return nil, nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return found, nil
}

// Launch hydrates each island against its server-rendered element and
// returns one mounted root per island, in order. The island component is
// re-rendered from its registry entry and props and re-stamped, so markup
// produced by Find hydrates without attribute changes.
//
// Launch stops at the first island that cannot be hydrated; roots mounted
// before it are returned alongside the error.
func Launch(ctx context.Context, doc *dom.Document, reg *Registry, found []Island, opts ...mount.Option) ([]*mount.Root, error) {
	roots := make([]*mount.Root, 0, len(found))
	for _, island := range found {
		node := doc.GetElementByID(island.ID)
		if node == nil {
			return roots, errors.New("E040").WithSubject(island.ID)
		}
		fn, ok := reg.Lookup(island.Name)
		if !ok {
			return roots, errors.New("E041").WithSubject(island.Name)
		}

		v := vdom.Component(fn, island.Props)
		if err := Stamp(v, island); err != nil {
			return roots, err
		}

		root := mount.NewRoot(doc, opts...)
		if err := root.Hydrate(ctx, node, v); err != nil {
			return roots, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}
