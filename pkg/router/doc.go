// Package router holds the pages of a cargo site.
//
// A Route binds a path pattern to a page component, optional layouts and an
// optional data loader:
//
//	reg := router.NewRegistry()
//	reg.MustHandle(router.Route{Path: "/", Page: Home})
//	reg.MustHandle(router.Route{
//	    Path:    "/blog/{slug}",
//	    Page:    Post,
//	    Layouts: []vdom.ComponentFunc{Article, Site},
//	    Data:    loadPost,
//	})
//
// Patterns use chi syntax, so the HTTP host mounts them unchanged. Resolve
// matches a path without HTTP for the CLI and tests.
package router
