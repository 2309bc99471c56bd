package render

import (
	"io"
	"net/http"
)

// StreamingRenderer wraps Renderer with chunked output support.
// It flushes content incrementally for faster time-to-first-byte.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer that writes to
// an http.ResponseWriter. If the writer implements http.Flusher,
// content will be flushed after the head for faster first paint.
func NewStreamingRenderer(w http.ResponseWriter, config RendererConfig) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		flusher:  flusher,
		w:        w,
	}
}

// RenderPage renders a complete HTML document, flushing after </head>.
// The output is identical to Renderer.RenderPage.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	doc := Document(page)
	sw := &stickyWriter{w: s.w}

	sw.writeString("<!DOCTYPE html>\n<html")
	s.renderAttributes(sw, doc)
	sw.writeString(">")
	if s.config.Pretty {
		sw.writeString("\n")
	}

	s.renderNode(sw, doc.Children[0], 1, false)
	if sw.err != nil {
		return sw.err
	}
	s.flush()

	s.renderNode(sw, doc.Children[1], 1, false)
	sw.writeString("</html>")
	if s.config.Pretty {
		sw.writeString("\n")
	}
	if sw.err != nil {
		return sw.err
	}
	s.flush()
	return nil
}

// flush flushes buffered content to the client if supported.
func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
