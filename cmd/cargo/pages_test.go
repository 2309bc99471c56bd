package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/render"
	"github.com/vango-dev/cargo/pkg/vdom"
)

func TestPagePath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"index.html", "/"},
		{"about.html", "/about"},
		{"blog/index.html", "/blog"},
		{filepath.Join("blog", "[slug].html"), "/blog/{slug}"},
	}
	for _, tt := range tests {
		if got := pagePath(tt.rel); got != tt.want {
			t.Errorf("pagePath(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestLoadPages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<html><head><title> Home </title></head><body><main><h1>Home</h1></main></body></html>`)
	writeFile(t, dir, "blog/[slug].html", `<html><body><h1>Post</h1><p>Body</p></body></html>`)
	writeFile(t, dir, "notes.txt", `ignored`)

	pages, err := loadPages(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(pages.Routes()); got != 2 {
		t.Fatalf("routes = %d, want 2", got)
	}

	renderer := render.NewRenderer(render.RendererConfig{})
	tests := []struct {
		path  string
		title string
		want  string
	}{
		{"/", "Home", "<main><h1>Home</h1></main>"},
		{"/blog/first", "", "<main><h1>Post</h1><p>Body</p></main>"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, err := pages.Resolve(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if m.Route.Meta.Title != tt.title {
				t.Errorf("title = %q, want %q", m.Route.Meta.Title, tt.title)
			}
			v, err := m.Build(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			got, err := renderer.RenderToString(v)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("page = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageContentIsFresh(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<html><body><p>x</p></body></html>`)
	pages, err := loadPages(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	page := pages.Routes()[0].Page
	a, b := page(nil), page(nil)
	if a == b {
		t.Error("each render should build a new tree")
	}
	if vdom.Unwrap(a).Tag != "p" {
		t.Errorf("page root = %q, want p", vdom.Unwrap(a).Tag)
	}
}

func TestLoadPagesMissingDir(t *testing.T) {
	_, err := loadPages(filepath.Join(t.TempDir(), "missing"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if !errors.HasCode(err, "E140") {
		t.Errorf("error = %v, want E140", err)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}
