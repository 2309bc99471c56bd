package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/islands"
	"github.com/vango-dev/cargo/pkg/render"
	"github.com/vango-dev/cargo/pkg/router"
	"github.com/vango-dev/cargo/pkg/vdom"
)

func errNotFound(path string) error {
	return errors.New("E083").WithSubject(path)
}

// pageHandler renders route for each request: load data, compose layouts,
// stamp islands, then stream the document.
func (s *Server) pageHandler(route router.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match := &router.Match{Route: route, Params: urlParams(r)}

		built, err := match.Build(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		// Pages may return shared trees; islands are stamped on a private copy.
		body := vdom.Clone(built)

		found, err := islands.Find(body, s.islands, islands.WithIDGenerator(s.newID))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		script, err := islands.BootstrapScript(found, islands.BootstrapConfig{
			ClientScript: s.config.Render.ClientScript,
			ScriptPrefix: s.config.Islands.ScriptPrefix,
		})
		if err != nil {
			s.fail(w, r, err)
			return
		}

		page := render.PageData{
			Body:        body,
			Title:       route.Meta.Title,
			Lang:        s.config.Render.Lang,
			Meta:        metaTags(route.Meta),
			StyleSheets: s.config.Render.Styles,
		}
		if script != "" {
			page.BodyScripts = []render.ScriptTag{{Module: true, Inline: script}}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		renderer := render.NewStreamingRenderer(w, render.RendererConfig{
			Pretty: s.config.Render.Pretty,
			Indent: s.config.Render.Indent,
		})
		if err := renderer.RenderPage(page); err != nil {
			// Headers are already sent.
			s.logger.Error("page render failed", "path", r.URL.Path, "error", errors.New("E080").Wrap(err))
			return
		}
		s.logger.Debug("page rendered", "route", route.Path, "islands", len(found), "nodes", vdom.CountNodes(body))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	ce := errors.FromError(err, "E080")
	s.logger.Error("page failed", "path", r.URL.Path, "code", ce.Code, "error", err)
	http.Error(w, ce.Code+": "+ce.Message, http.StatusInternalServerError)
}

func urlParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

func metaTags(meta router.PageMeta) []render.MetaTag {
	var tags []render.MetaTag
	if meta.Description != "" {
		tags = append(tags, render.MetaTag{Name: "description", Content: meta.Description})
	}
	if meta.Robots != "" {
		tags = append(tags, render.MetaTag{Name: "robots", Content: meta.Robots})
	}
	return tags
}
