package vdom

import (
	"strings"
	"testing"
)

func TestConditionalHelpers(t *testing.T) {
	p := P()
	if If(true, p) != p || If(false, p) != nil {
		t.Error("If should return the node only when the condition holds")
	}

	calls := 0
	build := func() *VNode {
		calls++
		return p
	}
	if When(false, build) != nil || calls != 0 {
		t.Error("When(false) should not build the node")
	}
	if When(true, build) != p || calls != 1 {
		t.Error("When(true) should build the node once")
	}

	if got := Div(If(false, Span()), Text("x")); len(got.Children) != 1 {
		t.Errorf("nil children should be dropped, got %d", len(got.Children))
	}
}

func TestWalk(t *testing.T) {
	item := func(Props) *VNode { return Li(Text("c")) }
	tree := Ul(Li(Text("a")), Li(Em(Text("b"))), Component(item, nil))

	var seen []string
	Walk(tree, func(v *VNode) bool {
		switch v.Kind {
		case KindElement:
			seen = append(seen, v.Tag)
			return v.Tag != "em"
		case KindText:
			seen = append(seen, v.Text)
		case KindComponent:
			seen = append(seen, "component")
		}
		return true
	})
	if got, want := strings.Join(seen, ","), "ul,li,a,li,em,component,li,c"; got != want {
		t.Errorf("visited %q, want %q", got, want)
	}

	if got := CountNodes(tree); got != 8 {
		t.Errorf("CountNodes() = %d, want 8", got)
	}
	if got := CountNodes(nil); got != 0 {
		t.Errorf("CountNodes(nil) = %d, want 0", got)
	}
}

func TestClone(t *testing.T) {
	label := func(p Props) *VNode { return Span(Class("label"), Text(p["text"].(string))) }
	orig := Div(ID("root"), Component(label, Props{"text": "hi"}))

	c := Clone(orig)
	if c == orig || c.Children[0] == orig.Children[0] {
		t.Fatal("Clone should copy every node")
	}
	Unwrap(c.Children[0]).Props["class"] = "changed"
	c.Props["id"] = "other"

	if orig.Props["id"] != "root" {
		t.Error("clone props should not alias the original")
	}
	if got := Unwrap(orig.Children[0]).Props["class"]; got != "label" {
		t.Errorf("original component output class = %v, want label", got)
	}
	if !SameComponent(c.Children[0].Fn, label) {
		t.Error("clone should keep component identity")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
