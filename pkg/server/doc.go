// Package server is the HTTP host of a cargo site.
//
// It serves every route of a router.Registry as a streamed, server-rendered
// document. Islands found in a page are stamped and a module script that
// hydrates them is appended to the body. The host also serves /healthz, the
// Prometheus /metrics endpoint and the built client modules.
//
//	srv := server.New(cfg, pages, server.WithIslands(islandRegistry))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
