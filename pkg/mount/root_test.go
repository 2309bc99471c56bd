package mount

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"golang.org/x/net/html"

	"github.com/vango-dev/cargo/pkg/dom"
	"github.com/vango-dev/cargo/pkg/vdom"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func loadApp(t *testing.T, markup string) (*dom.Document, *html.Node) {
	t.Helper()
	doc, err := dom.LoadString("<!DOCTYPE html><html><body>" + markup + "</body></html>")
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	app := doc.GetElementByID("app")
	if app == nil {
		t.Fatal("no #app element in markup")
	}
	return doc, app
}

func inner(t *testing.T, n *html.Node) string {
	t.Helper()
	s, err := dom.InnerHTML(n)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newTestMetrics() *Metrics {
	return NewMetrics(WithRegistry(prometheus.NewRegistry()))
}

func TestRootRenderUpdateUnmount(t *testing.T) {
	ctx := context.Background()
	doc, app := loadApp(t, `<div id="app"></div>`)
	metrics := newTestMetrics()
	root := NewRoot(doc, WithMetrics(metrics))

	destroyed := 0
	list := func(items ...string) *vdom.VNode {
		return vdom.Ul(
			vdom.OnDestroy(func() { destroyed++ }),
			vdom.Range(items, func(s string, _ int) *vdom.VNode { return vdom.Li(vdom.Text(s)) }),
		)
	}

	if err := root.Render(ctx, app, list("a")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := inner(t, app), "<ul><li>a</li></ul>"; got != want {
		t.Fatalf("after render = %q, want %q", got, want)
	}

	if err := root.Update(ctx, list("a", "b")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got, want := inner(t, app), "<ul><li>a</li><li>b</li></ul>"; got != want {
		t.Fatalf("after update = %q, want %q", got, want)
	}

	if err := root.Unmount(ctx); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if got := inner(t, app); got != "" {
		t.Errorf("after unmount = %q, want empty", got)
	}
	if destroyed != 1 {
		t.Errorf("destroy hook ran %d times, want 1", destroyed)
	}
	if root.Current() != nil {
		t.Error("Current() should be nil after unmount")
	}

	if got := metricCounterValue(t, metrics.passesTotal.WithLabelValues(PassUpdate)); got != 1 {
		t.Errorf("update passes = %v, want 1", got)
	}
	if got := metricHistogramCount(t, metrics.passDuration.WithLabelValues(PassRender)); got != 1 {
		t.Errorf("render duration samples = %d, want 1", got)
	}
	if got := metricCounterValue(t, metrics.changesTotal.WithLabelValues("element", "attach")); got != 3 {
		t.Errorf("element attaches = %v, want 3", got)
	}
	if got := metricCounterValue(t, metrics.changesTotal.WithLabelValues("element", "delete")); got != 1 {
		t.Errorf("element deletes = %v, want 1", got)
	}
}

func TestRootHydrate(t *testing.T) {
	ctx := context.Background()
	doc, app := loadApp(t, `<div id="app"><p>Hello</p></div>`)
	root := NewRoot(doc)

	mounted := false
	v := vdom.Div(vdom.ID("app"), vdom.P(vdom.OnMount(func() vdom.DestroyHook {
		mounted = true
		return nil
	}), vdom.Text("Hello")))

	if err := root.Hydrate(ctx, app, v); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	if !mounted {
		t.Error("hydrate should run mount hooks")
	}
	if v.NodeRef != app {
		t.Error("root should adopt #app")
	}
	if root.Current() != v {
		t.Error("Current() should return the hydrated tree")
	}

	if err := root.Update(ctx, vdom.Div(vdom.ID("app"), vdom.P(vdom.Text("Bye")))); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got, want := inner(t, app), "<p>Bye</p>"; got != want {
		t.Errorf("after update = %q, want %q", got, want)
	}

	if err := root.Unmount(ctx); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if app.Parent != nil {
		t.Error("unmount should detach the hydrated root")
	}
}

func TestRootNotMounted(t *testing.T) {
	ctx := context.Background()
	root := NewRoot(dom.New())

	if err := root.Update(ctx, vdom.Div()); !stderrors.Is(err, ErrNotMounted) {
		t.Errorf("Update() error = %v, want ErrNotMounted", err)
	}
	if err := root.Unmount(ctx); !stderrors.Is(err, ErrNotMounted) {
		t.Errorf("Unmount() error = %v, want ErrNotMounted", err)
	}
}

func TestRootNilTargets(t *testing.T) {
	ctx := context.Background()
	root := NewRoot(dom.New())

	if err := root.Hydrate(ctx, nil, vdom.Div()); !stderrors.Is(err, dom.ErrNilNode) {
		t.Errorf("Hydrate(nil) error = %v, want ErrNilNode", err)
	}
	if err := root.Render(ctx, nil, vdom.Div()); !stderrors.Is(err, dom.ErrNilNode) {
		t.Errorf("Render(nil) error = %v, want ErrNilNode", err)
	}
}

func TestRootRejectsReentrantPass(t *testing.T) {
	ctx := context.Background()
	doc, app := loadApp(t, `<div id="app"></div>`)
	metrics := newTestMetrics()
	root := NewRoot(doc, WithMetrics(metrics))

	var nested error
	v := vdom.Div(vdom.OnMount(func() vdom.DestroyHook {
		nested = root.Update(ctx, vdom.Div(vdom.Text("nested")))
		return nil
	}))

	if err := root.Render(ctx, app, v); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !stderrors.Is(nested, ErrPassInFlight) {
		t.Errorf("nested Update() error = %v, want ErrPassInFlight", nested)
	}
	if got := metricCounterValue(t, metrics.passRejected); got != 1 {
		t.Errorf("rejected passes = %v, want 1", got)
	}
}

func TestRootCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, app := loadApp(t, `<div id="app"></div>`)
	root := NewRoot(doc)
	if err := root.Render(ctx, app, vdom.Div()); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if root.Current() != nil {
		t.Error("canceled pass should not mount")
	}
}

func TestRootApplyErrorIsWrapped(t *testing.T) {
	ctx := context.Background()
	doc, app := loadApp(t, `<div id="app"><p>x</p></div>`)
	metrics := newTestMetrics()
	root := NewRoot(doc, WithMetrics(metrics))

	v := vdom.Div(vdom.ID("app"), vdom.P(vdom.Text("x")))
	if err := root.Hydrate(ctx, app, v); err != nil {
		t.Fatal(err)
	}

	// Detach the live <p> behind the root's back; deleting it must fail.
	p := app.FirstChild
	app.RemoveChild(p)

	err := root.Update(ctx, vdom.Div(vdom.ID("app")))
	if err == nil {
		t.Fatal("Update() error = nil, want apply failure")
	}
	if !stderrors.Is(err, ErrApply) {
		t.Errorf("Update() error = %v, want code E060", err)
	}
	if got := metricCounterValue(t, metrics.passErrors.WithLabelValues(PassUpdate)); got != 1 {
		t.Errorf("update errors = %v, want 1", got)
	}
}
