package vdom

import (
	"testing"

	"github.com/vango-dev/cargo/pkg/dom"
)

func loadApp(t *testing.T, markup string) (*dom.Document, *VNode) {
	t.Helper()
	doc, err := dom.LoadString("<!DOCTYPE html><html><body>" + markup + "</body></html>")
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	app := doc.GetElementByID("app")
	if app == nil {
		t.Fatal("no #app element in markup")
	}
	return doc, &VNode{Kind: KindElement, Tag: "div", NodeRef: app}
}

// hydrateApp hydrates v against #app and applies the result.
func hydrateApp(t *testing.T, doc *dom.Document, app *VNode, v *VNode) ChangeSet {
	t.Helper()
	changes := Diff(DiffProps{Node: app.NodeRef, VNode: v})
	if err := NewApplier(doc).ApplyAll(changes); err != nil {
		t.Fatalf("ApplyAll() error = %v\n%s", err, changes)
	}
	return changes
}

func outerHTML(t *testing.T, v *VNode) string {
	t.Helper()
	s, err := dom.RenderString(v.NodeRef)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestHydrateMatchingMarkup(t *testing.T) {
	doc, app := loadApp(t, `<div id="app">
		<p class="x">Hello</p>
		<!-- server comment -->
		<span>World</span>
	</div>`)

	p := P(Class("x"), Text("Hello"))
	span := Span(Text("World"))
	v := Div(ID("app"), p, span)

	changes := hydrateApp(t, doc, app, v)
	if len(changes) != 0 {
		t.Fatalf("Expected 0 changes, got:\n%s", changes)
	}
	if v.NodeRef != app.NodeRef {
		t.Error("root should adopt the live node")
	}
	if p.NodeRef == nil || p.NodeRef.Data != "p" {
		t.Error("p should adopt the live <p>")
	}
	if span.Children[0].NodeRef == nil || span.Children[0].NodeRef.Data != "World" {
		t.Error("text should adopt the live text node")
	}
}

func TestHydrateFixesDrift(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		tree   func() *VNode
		want   string
	}{
		{
			name:   "text content",
			markup: `<div id="app"><p>Hello</p></div>`,
			tree:   func() *VNode { return Div(ID("app"), P(Text("Goodbye"))) },
			want:   `<div id="app"><p>Goodbye</p></div>`,
		},
		{
			name:   "attributes",
			markup: `<div id="app" class="old" title="stale"></div>`,
			tree:   func() *VNode { return Div(ID("app"), Class("new"), Data("ready", "1")) },
			want:   `<div id="app" class="new" data-ready="1"></div>`,
		},
		{
			name:   "missing child",
			markup: `<div id="app"><ul><li>a</li></ul></div>`,
			tree:   func() *VNode { return Div(ID("app"), Ul(Li(Text("a")), Li(Text("b")))) },
			want:   `<div id="app"><ul><li>a</li><li>b</li></ul></div>`,
		},
		{
			name:   "surplus children",
			markup: `<div id="app"><ul><li>a</li><li>b</li>tail</ul></div>`,
			tree:   func() *VNode { return Div(ID("app"), Ul(Li(Text("a")))) },
			want:   `<div id="app"><ul><li>a</li></ul></div>`,
		},
		{
			name:   "tag mismatch",
			markup: `<div id="app"><span title="t">old</span></div>`,
			tree:   func() *VNode { return Div(ID("app"), P(Class("n"), Text("new"))) },
			want:   `<div id="app"><p class="n">new</p></div>`,
		},
		{
			name:   "element where text is expected",
			markup: `<div id="app"><b>x</b></div>`,
			tree:   func() *VNode { return Div(ID("app"), Text("x")) },
			want:   `<div id="app">x</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, app := loadApp(t, tt.markup)
			v := tt.tree()
			hydrateApp(t, doc, app, v)
			if got := outerHTML(t, v); got != tt.want {
				t.Errorf("live markup = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHydrateReplaceEmitsReplace(t *testing.T) {
	doc, app := loadApp(t, `<div id="app"><span>old</span></div>`)
	p := P(Text("new"))
	v := Div(ID("app"), p)

	changes := Diff(DiffProps{Node: app.NodeRef, VNode: v})
	if got := changes.Count(ChangeElement, ActionReplace); got != 1 {
		t.Fatalf("element replaces = %d, want 1:\n%s", got, changes)
	}
	old := app.NodeRef.FirstChild
	if err := NewApplier(doc).ApplyAll(changes); err != nil {
		t.Fatal(err)
	}
	if p.NodeRef == old {
		t.Error("replace should install a fresh node")
	}
	if old.Parent != nil {
		t.Error("replaced node should be detached")
	}
}

func TestHydrateRunsMountHooks(t *testing.T) {
	doc, app := loadApp(t, `<div id="app"><button>Go</button></div>`)

	mounted := 0
	v := Div(ID("app"),
		Button(OnMount(func() DestroyHook {
			mounted++
			return nil
		}), Text("Go")),
	)

	changes := hydrateApp(t, doc, app, v)
	if got := changes.Count(ChangeElement, ActionMount); got != 1 {
		t.Errorf("mount changes = %d, want 1", got)
	}
	if mounted != 1 {
		t.Errorf("mount hook ran %d times, want 1", mounted)
	}

	// A later update must not mount again.
	next := Div(ID("app"), Button(OnMount(func() DestroyHook {
		mounted++
		return nil
	}), Text("Go!")))
	if err := NewApplier(doc).ApplyAll(Diff(DiffProps{VNode: next, PreviousVNode: v})); err != nil {
		t.Fatal(err)
	}
	if mounted != 1 {
		t.Errorf("mount hook ran %d times after update, want 1", mounted)
	}
}

func TestHydrateThroughComponents(t *testing.T) {
	doc, app := loadApp(t, `<div id="app"><h1>Title</h1></div>`)
	heading := func(p Props) *VNode { return H1(Text(p["title"].(string))) }
	v := Component(func(Props) *VNode {
		return Div(ID("app"), Component(heading, Props{"title": "Title"}))
	}, nil)

	changes := hydrateApp(t, doc, app, v)
	if len(changes) != 0 {
		t.Fatalf("Expected 0 changes, got:\n%s", changes)
	}
	root := Unwrap(v)
	if root.NodeRef != app.NodeRef {
		t.Error("unwrapped root should adopt #app")
	}
	if Unwrap(root.Children[0]).NodeRef == nil {
		t.Error("component output should adopt the live <h1>")
	}
}

func TestFromHTMLRoundTrip(t *testing.T) {
	doc, app := loadApp(t, `<div id="app"><form><input type="text" disabled><label>Name</label></form>
	</div>`)

	v := FromHTML(app.NodeRef)
	if v.Tag != "div" || len(v.Children) != 1 {
		t.Fatalf("FromHTML() = %s with %d children", describe(v), len(v.Children))
	}
	input := v.Children[0].Children[0]
	if input.Props["disabled"] != true {
		t.Errorf("disabled prop = %v, want true", input.Props["disabled"])
	}
	if input.NodeRef != nil {
		t.Error("FromHTML should not set NodeRefs")
	}

	changes := hydrateApp(t, doc, app, v)
	if len(changes) != 0 {
		t.Errorf("hydrating markup against its own tree produced:\n%s", changes)
	}
}
