package main

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/dom"
	"github.com/vango-dev/cargo/pkg/router"
	"github.com/vango-dev/cargo/pkg/vdom"
)

// loadPages registers every .html file under dir as a static page.
// index.html maps to its directory and [name].html to a {name} segment.
func loadPages(dir string, logger *slog.Logger) (*router.Registry, error) {
	pages := router.NewRegistry()

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		route, err := loadPage(p, pagePath(rel))
		if err != nil {
			return err
		}
		if err := pages.Handle(route); err != nil {
			return err
		}
		logger.Debug("page registered", "path", route.Path, "file", rel)
		return nil
	})
	if err != nil {
		if _, ok := err.(*errors.CargoError); ok {
			return nil, err
		}
		return nil, errors.New("E140").WithSubject(dir).Wrap(err)
	}
	return pages, nil
}

func loadPage(file, path string) (router.Route, error) {
	f, err := os.Open(file)
	if err != nil {
		return router.Route{}, errors.New("E140").WithSubject(file).Wrap(err)
	}
	defer f.Close()

	root, err := dom.Parse(f)
	if err != nil {
		return router.Route{}, errors.New("E141").WithSubject(file).Wrap(err)
	}
	body := dom.Body(root)
	if body == nil {
		return router.Route{}, errors.New("E141").WithSubject(file)
	}

	var title string
	if t := dom.FindElement(root, func(n *html.Node) bool { return n.DataAtom == atom.Title }); t != nil && t.FirstChild != nil {
		title = strings.TrimSpace(t.FirstChild.Data)
	}

	return router.Route{
		Path: path,
		Page: func(vdom.Props) *vdom.VNode { return pageContent(body) },
		Meta: router.PageMeta{Title: title},
	}, nil
}

// pageContent converts the children of body into a fresh tree. A single
// element child is used as is; anything else is wrapped in a <main>.
func pageContent(body *html.Node) *vdom.VNode {
	content := vdom.FromHTML(body).Children
	if len(content) == 1 && content[0].Kind == vdom.KindElement {
		return content[0]
	}
	children := make([]any, len(content))
	for i, c := range content {
		children[i] = c
	}
	return vdom.Main(children...)
}

func pagePath(rel string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), ".html")
	segments := strings.Split(rel, "/")
	if segments[len(segments)-1] == "index" {
		segments = segments[:len(segments)-1]
	}
	for i, seg := range segments {
		if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") {
			segments[i] = "{" + seg[1:len(seg)-1] + "}"
		}
	}
	return "/" + strings.Join(segments, "/")
}
