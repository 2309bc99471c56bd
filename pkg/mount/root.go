package mount

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/dom"
	"github.com/vango-dev/cargo/pkg/vdom"
)

const tracerName = "github.com/vango-dev/cargo/pkg/mount"

// Pass kinds, used as metric labels and span names.
const (
	PassHydrate = "hydrate"
	PassRender  = "render"
	PassUpdate  = "update"
	PassUnmount = "unmount"
)

var (
	// ErrPassInFlight is returned when a pass starts while another pass on
	// the same Root is running, e.g. from a lifecycle hook.
	ErrPassInFlight = errors.New("E044")

	// ErrNotMounted is returned by Update and Unmount before the first
	// Hydrate or Render.
	ErrNotMounted = errors.New("E045")

	// ErrApply matches errors from passes whose changes failed to apply.
	ErrApply = errors.New("E060")
)

// Root owns one mounted virtual tree and drives diff/apply passes for it.
// It keeps the previous tree between passes.
//
// Passes on a Root are serialised; a pass started while another is in
// flight fails with ErrPassInFlight instead of blocking, so a hook that
// re-renders its own root gets an error rather than a deadlock.
type Root struct {
	doc     vdom.Document
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics

	mu      sync.Mutex
	parent  *vdom.VNode
	current *vdom.VNode
}

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used for pass spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Root) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithMetrics records passes in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Root) {
		r.metrics = m
	}
}

// NewRoot creates an unmounted Root bound to doc.
func NewRoot(doc vdom.Document, opts ...Option) *Root {
	r := &Root{
		doc:    doc,
		logger: slog.Default().With("component", "mount"),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Current returns the tree of the last successful pass, or nil.
func (r *Root) Current() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Hydrate adopts the server-rendered node for v.
func (r *Root) Hydrate(ctx context.Context, node *html.Node, v *vdom.VNode) error {
	if node == nil {
		return errors.New("E040").Wrap(dom.ErrNilNode)
	}
	parent := liveElement(node.Parent)
	return r.pass(ctx, PassHydrate, func() (vdom.ChangeSet, *vdom.VNode, *vdom.VNode) {
		changes := vdom.Diff(vdom.DiffProps{Node: node, VNode: v, ParentVNode: parent})
		return changes, parent, v
	})
}

// Render mounts v as the last child of the live element parent.
func (r *Root) Render(ctx context.Context, parent *html.Node, v *vdom.VNode) error {
	if parent == nil {
		return errors.New("E062").Wrap(dom.ErrNilNode)
	}
	host := liveElement(parent)
	return r.pass(ctx, PassRender, func() (vdom.ChangeSet, *vdom.VNode, *vdom.VNode) {
		changes := vdom.Diff(vdom.DiffProps{VNode: v, ParentVNode: host})
		return changes, host, v
	})
}

// Update re-renders the root with next.
func (r *Root) Update(ctx context.Context, next *vdom.VNode) error {
	return r.pass(ctx, PassUpdate, func() (vdom.ChangeSet, *vdom.VNode, *vdom.VNode) {
		if r.current == nil {
			return nil, nil, nil
		}
		changes := vdom.Diff(vdom.DiffProps{
			VNode:         next,
			PreviousVNode: r.current,
			ParentVNode:   r.parent,
		})
		return changes, r.parent, next
	})
}

// Unmount removes the mounted tree and runs its destroy hooks.
func (r *Root) Unmount(ctx context.Context) error {
	return r.pass(ctx, PassUnmount, func() (vdom.ChangeSet, *vdom.VNode, *vdom.VNode) {
		if r.current == nil {
			return nil, nil, nil
		}
		changes := vdom.Diff(vdom.DiffProps{PreviousVNode: r.current, ParentVNode: r.parent})
		// The top-level element delete carries the current (absent) node;
		// point it at the tree being removed.
		for i, c := range changes {
			if c.Type == vdom.ChangeElement && c.Action == vdom.ActionDelete && c.Payload.VNode == nil {
				changes[i].Payload.VNode = vdom.Unwrap(r.current)
			}
		}
		return changes, nil, nil
	})
}

// pass runs one diff/apply cycle. plan computes the changes and the
// parent/current pair to keep on success; a nil parent means the root is
// not mounted.
func (r *Root) pass(ctx context.Context, kind string, plan func() (vdom.ChangeSet, *vdom.VNode, *vdom.VNode)) (err error) {
	if !r.mu.TryLock() {
		r.metrics.recordRejected()
		r.logger.Warn("pass rejected", "kind", kind)
		return ErrPassInFlight
	}
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	_, span := r.tracer.Start(ctx, "cargo."+kind,
		trace.WithAttributes(attribute.String("cargo.pass", kind)),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		r.metrics.recordPass(kind, time.Since(start).Seconds(), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}()

	if (kind == PassUpdate || kind == PassUnmount) && r.current == nil {
		return ErrNotMounted
	}

	changes, parent, current := plan()
	span.SetAttributes(attribute.Int("cargo.changes", len(changes)))

	applier := vdom.NewApplier(r.doc,
		vdom.WithLogger(r.logger),
		vdom.WithAppliedHandler(r.metrics.recordChange),
		vdom.WithUnsupportedHandler(func(c vdom.Change) {
			r.metrics.recordUnsupported(c)
			span.AddEvent("unsupported change", trace.WithAttributes(
				attribute.String("cargo.change.type", string(c.Type)),
				attribute.String("cargo.change.action", string(c.Action)),
			))
		}),
	)
	if err := applier.ApplyAll(changes); err != nil {
		r.logger.Error("apply failed", "kind", kind, "changes", len(changes), "error", err)
		// The live tree may be partially updated; keep the new tree so the
		// next pass diffs against what was attempted.
		r.parent, r.current = parent, current
		return errors.New("E060").WithSubject(kind).Wrap(err)
	}

	r.logger.Debug("pass applied", "kind", kind, "changes", len(changes))
	r.parent, r.current = parent, current
	return nil
}

// liveElement wraps a live node in a virtual element so it can serve as
// a ParentVNode.
func liveElement(n *html.Node) *vdom.VNode {
	if n == nil {
		return nil
	}
	return &vdom.VNode{Kind: vdom.KindElement, Tag: n.Data, NodeRef: n}
}
