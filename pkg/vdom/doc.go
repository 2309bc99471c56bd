// Package vdom provides the virtual DOM and reconciliation core for Cargo.
//
// A virtual tree is built from three node kinds: text, element and component.
// Components are transparent for structural comparison: the reconciler always
// works on the node a component resolved to (its AST), see Unwrap.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnMount(func() DestroyHook { ... }),
//	)
//
// # Reconciliation
//
// Reconciliation is split into a pure diff step and an apply step:
//
//	changes := Diff(DiffProps{VNode: next, PreviousVNode: prev})
//	err := NewApplier(doc).ApplyAll(changes)
//
// Diff classifies its input (hydrate, update, render, delete or nothing) and
// returns an ordered ChangeSet. It never touches the live document. The
// Applier executes each Change in order against a Document, firing element
// lifecycle hooks on attach and delete.
//
// # Hydration
//
// Given a live node rendered by the server and a virtual tree with no
// previous state, Diff adopts the live nodes (setting NodeRef) and only emits
// changes where the markup disagrees with the virtual tree.
package vdom
