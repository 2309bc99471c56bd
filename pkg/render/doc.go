// Package render provides server-side rendering (SSR) of virtual trees.
//
// The renderer converts VNode trees into HTML strings or streams. Text and
// attribute values are escaped, void elements have no closing tag, boolean
// attributes are written without a value and components render through
// their AST. Attributes come from vdom.EffectiveAttrs, so rendered markup
// hydrates against the same tree without attribute changes.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Body:        bodyNode,
//	    Title:       "My Page",
//	    BodyScripts: []render.ScriptTag{{Module: true, Inline: bootstrap}},
//	}
//	err := renderer.RenderPage(w, page)
//
// StreamingRenderer produces the same document but flushes after </head>.
package render
