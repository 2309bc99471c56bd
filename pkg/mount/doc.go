// Package mount keeps a virtual tree attached to a live document across
// passes.
//
// A Root is created unmounted and becomes mounted by its first Hydrate
// (adopting server-rendered markup) or Render (building fresh nodes under a
// live parent). Each later Update diffs the new tree against the one kept
// from the previous pass and applies the result; Unmount removes the tree
// and runs its destroy hooks.
//
//	root := mount.NewRoot(doc, mount.WithMetrics(metrics))
//	if err := root.Hydrate(ctx, doc.GetElementByID("app"), App(props)); err != nil {
//	    return err
//	}
//	...
//	err := root.Update(ctx, App(next))
//
// Every pass is traced with OpenTelemetry and, when a Metrics value is
// configured, counted in Prometheus.
package mount
