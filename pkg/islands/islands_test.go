package islands

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	cerrors "github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/dom"
	"github.com/vango-dev/cargo/pkg/render"
	"github.com/vango-dev/cargo/pkg/vdom"
)

func counter(p vdom.Props) *vdom.VNode {
	return vdom.Button(vdom.Class("counter"), vdom.Textf("%v", p["start"]))
}

func greeting(p vdom.Props) *vdom.VNode {
	return vdom.P(vdom.Textf("Hello, %v", p["name"]))
}

func textOnly(vdom.Props) *vdom.VNode {
	return vdom.Text("bare")
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("i%d", n)
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	reg.MustRegister("islands/$counter.go", counter)
	reg.MustRegister("greeting", greeting)
	return reg
}

func TestIslandName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"counter", "counter"},
		{"islands/$counter.tsx", "counter"},
		{"islands\\$todo-list.go", "todo-list"},
		{"$a$b", "ab"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := IslandName(tt.key); got != tt.want {
			t.Errorf("IslandName(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"counter", "counter"},
		{"todo-list", "todolist"},
		{"3d-view", "_3dview"},
		{"--", "_"},
		{"my_island", "my_island"},
	}
	for _, tt := range tests {
		if got := Identifier(tt.name); got != tt.want {
			t.Errorf("Identifier(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	reg := testRegistry(t)

	if err := reg.Register("other/$counter.go", textOnly); !cerrors.HasCode(err, "E042") {
		t.Errorf("duplicate Register() error = %v, want E042", err)
	}
	if err := reg.Register("", counter); err == nil {
		t.Error("Register with an empty name should fail")
	}

	if name, ok := reg.NameOf(greeting); !ok || name != "greeting" {
		t.Errorf("NameOf(greeting) = %q, %v", name, ok)
	}
	if _, ok := reg.NameOf(textOnly); ok {
		t.Error("NameOf(unregistered) should report false")
	}
	if fn, ok := reg.Lookup("counter"); !ok || !vdom.SameComponent(fn, counter) {
		t.Error("Lookup(counter) should return the counter component")
	}
	if got := strings.Join(reg.Names(), ","); got != "counter,greeting" {
		t.Errorf("Names() = %q", got)
	}
}

func TestFindStampsIslandRoots(t *testing.T) {
	reg := testRegistry(t)

	first := vdom.Component(counter, vdom.Props{"start": 1})
	second := vdom.Component(greeting, vdom.Props{"name": "Ada"})
	page := vdom.Component(func(vdom.Props) *vdom.VNode {
		return vdom.Main(
			vdom.H1(vdom.Text("Static")),
			vdom.Section(first),
			second,
		)
	}, nil)

	found, err := Find(page, reg, WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("Find() returned %d islands, want 2", len(found))
	}
	if found[0].ID != "i1" || found[0].Name != "counter" {
		t.Errorf("first island = %+v", found[0])
	}
	if found[1].ID != "i2" || found[1].Name != "greeting" {
		t.Errorf("second island = %+v", found[1])
	}

	root := vdom.Unwrap(first)
	if root.Props["id"] != "i1" || root.Props[AttrIsland] != "counter" {
		t.Errorf("counter root props = %v", root.Props)
	}
	if root.Props[AttrProps] != `{"start":1}` {
		t.Errorf("data-props = %v", root.Props[AttrProps])
	}
}

func TestFindDoesNotDescendIntoIslands(t *testing.T) {
	reg := testRegistry(t)
	outer := func(vdom.Props) *vdom.VNode {
		return vdom.Div(vdom.Component(counter, nil))
	}
	reg.MustRegister("outer", outer)

	found, err := Find(vdom.Component(outer, nil), reg, WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Name != "outer" {
		t.Errorf("Find() = %+v, want only the outer island", found)
	}
}

func TestStampLeavesOriginalPropsAlone(t *testing.T) {
	v := vdom.Component(counter, vdom.Props{"start": 2})
	original := vdom.Unwrap(v).Props

	if err := Stamp(v, Island{ID: "s1", Name: "counter", Props: v.Props}); err != nil {
		t.Fatal(err)
	}
	if _, ok := original["id"]; ok {
		t.Error("Stamp wrote into the element's previous Props map")
	}
	stamped := vdom.Unwrap(v).Props
	if stamped["id"] != "s1" || stamped["class"] != "counter" {
		t.Errorf("stamped props = %v", stamped)
	}
}

func TestRegisterRejectsSharedClosures(t *testing.T) {
	labelled := func(text string) vdom.ComponentFunc {
		return func(vdom.Props) *vdom.VNode { return vdom.P(vdom.Text(text)) }
	}

	reg := NewRegistry()
	reg.MustRegister("first", labelled("one"))
	err := reg.Register("second", labelled("two"))
	if !cerrors.HasCode(err, "E042") {
		t.Fatalf("Register() error = %v, want E042", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestFindErrors(t *testing.T) {
	reg := testRegistry(t)
	reg.MustRegister("bare", textOnly)

	_, err := Find(vdom.Div(vdom.Component(textOnly, nil)), reg)
	if !cerrors.HasCode(err, "E043") {
		t.Errorf("text island error = %v, want E043", err)
	}

	_, err = Find(vdom.Component(counter, vdom.Props{"start": func() {}}), reg)
	if !cerrors.HasCode(err, "E046") {
		t.Errorf("func props error = %v, want E046", err)
	}
}

func TestFindWithEmptyRegistry(t *testing.T) {
	found, err := Find(vdom.Component(counter, nil), NewRegistry())
	if err != nil || found != nil {
		t.Errorf("Find() = %v, %v; want nil, nil", found, err)
	}
}

func TestBootstrapScript(t *testing.T) {
	found := []Island{
		{ID: "a1", Name: "todo-list", Props: vdom.Props{"items": []string{"x"}}},
		{ID: "b2", Name: "counter"},
		{ID: "c3", Name: "todo-list"},
	}
	got, err := BootstrapScript(found, BootstrapConfig{})
	if err != nil {
		t.Fatal(err)
	}
	want := `import { launch } from "/main.js";
import todolist from "/island-todo-list.js";
import counter from "/island-counter.js";
launch([{ id: "a1", name: "todo-list", node: todolist, props: {"items":["x"]} }, ` +
		`{ id: "b2", name: "counter", node: counter, props: {} }, ` +
		`{ id: "c3", name: "todo-list", node: todolist, props: {} }]);`
	if got != want {
		t.Errorf("BootstrapScript() =\n%s\nwant\n%s", got, want)
	}

	got, err = BootstrapScript(found[1:2], BootstrapConfig{ClientScript: "/_build/main.js", ScriptPrefix: "/_build/island-"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `from "/_build/main.js"`) || !strings.Contains(got, `from "/_build/island-counter.js"`) {
		t.Errorf("custom paths not used:\n%s", got)
	}

	if got, _ := BootstrapScript(nil, BootstrapConfig{}); got != "" {
		t.Errorf("BootstrapScript(nil) = %q, want empty", got)
	}
}

func TestBootstrapScriptEscapesScriptClose(t *testing.T) {
	got, err := BootstrapScript([]Island{{ID: "x", Name: "n", Props: vdom.Props{"s": "</script>"}}}, BootstrapConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "</script>") {
		t.Errorf("script body contains a closing tag:\n%s", got)
	}
}

// serverRender renders page with its islands stamped and loads the markup
// as a live document.
func serverRender(t *testing.T, reg *Registry, page *vdom.VNode) (*dom.Document, []Island) {
	t.Helper()
	found, err := Find(page, reg, WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	var b strings.Builder
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(&b, render.PageData{Title: "t", Body: page}); err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	doc, err := dom.LoadString(b.String())
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	return doc, found
}

func TestDiscoverReadsStampedIslands(t *testing.T) {
	reg := testRegistry(t)
	page := vdom.Div(
		vdom.Component(counter, vdom.Props{"start": 3}),
		vdom.Component(greeting, nil),
	)
	doc, found := serverRender(t, reg, page)

	discovered, err := Discover(doc.Root())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(discovered) != len(found) {
		t.Fatalf("Discover() found %d islands, want %d", len(discovered), len(found))
	}
	for i := range found {
		if discovered[i].ID != found[i].ID || discovered[i].Name != found[i].Name {
			t.Errorf("island %d = %+v, want %+v", i, discovered[i], found[i])
		}
	}
	if discovered[0].Props["start"] != float64(3) {
		t.Errorf("counter props = %v", discovered[0].Props)
	}
	if discovered[1].Props != nil {
		t.Errorf("greeting props = %v, want none", discovered[1].Props)
	}
}

func TestDiscoverInvalidProps(t *testing.T) {
	doc, err := dom.LoadString(`<div id="a" data-island="counter" data-props="{nope"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Discover(doc.Root()); !cerrors.HasCode(err, "E047") {
		t.Errorf("Discover() error = %v, want E047", err)
	}
}

func TestLaunchHydratesWithoutChanges(t *testing.T) {
	ctx := context.Background()
	reg := testRegistry(t)
	page := vdom.Div(
		vdom.H1(vdom.Text("Static")),
		vdom.Component(counter, vdom.Props{"start": 1}),
		vdom.Component(greeting, vdom.Props{"name": "Ada"}),
	)
	doc, _ := serverRender(t, reg, page)

	discovered, err := Discover(doc.Root())
	if err != nil {
		t.Fatal(err)
	}
	before, _ := dom.RenderString(doc.Root())

	roots, err := Launch(ctx, doc, reg, discovered)
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("Launch() returned %d roots, want 2", len(roots))
	}
	after, _ := dom.RenderString(doc.Root())
	if before != after {
		t.Errorf("hydration changed the markup:\nbefore %s\nafter  %s", before, after)
	}

	// The hydrated island is live: an update reaches the document.
	next := vdom.Component(counter, vdom.Props{"start": 2})
	if err := Stamp(next, discovered[0]); err != nil {
		t.Fatal(err)
	}
	if err := roots[0].Update(ctx, next); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	button := doc.GetElementByID(discovered[0].ID)
	if got, _ := dom.InnerHTML(button); got != "2" {
		t.Errorf("counter text = %q, want 2", got)
	}
}

func TestLaunchErrors(t *testing.T) {
	ctx := context.Background()
	reg := testRegistry(t)
	doc, err := dom.LoadString(`<div id="a" data-island="counter"></div>`)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Launch(ctx, doc, reg, []Island{{ID: "missing", Name: "counter"}})
	if !cerrors.HasCode(err, "E040") {
		t.Errorf("missing element error = %v, want E040", err)
	}

	_, err = Launch(ctx, doc, reg, []Island{{ID: "a", Name: "unknown"}})
	if !stderrors.Is(err, cerrors.New("E041")) {
		t.Errorf("unknown island error = %v, want E041", err)
	}
}
