package vdom

// DestroyHook is a teardown callback run when its element leaves the live tree.
type DestroyHook func()

// MountHook runs when its element is attached to a live parent. A non-nil
// return value is registered as a DestroyHook.
type MountHook func() DestroyHook

// Hooks is the lifecycle record of an element.
type Hooks struct {
	OnMount   []MountHook
	OnDestroy []DestroyHook
}

// LifecycleHook is an element argument registering a lifecycle callback.
type LifecycleHook struct {
	Mount   MountHook
	Destroy DestroyHook
}

// OnMount registers a hook run once when the element is attached.
func OnMount(hook MountHook) LifecycleHook {
	return LifecycleHook{Mount: hook}
}

// OnDestroy registers a hook run once when the element is removed.
func OnDestroy(hook DestroyHook) LifecycleHook {
	return LifecycleHook{Destroy: hook}
}

func (v *VNode) addHook(h LifecycleHook) {
	if h.Mount == nil && h.Destroy == nil {
		return
	}
	if v.Hooks == nil {
		v.Hooks = &Hooks{}
	}
	if h.Mount != nil {
		v.Hooks.OnMount = append(v.Hooks.OnMount, h.Mount)
	}
	if h.Destroy != nil {
		v.Hooks.OnDestroy = append(v.Hooks.OnDestroy, h.Destroy)
	}
}

// hasMountHooks reports whether v has any mount hooks registered.
func hasMountHooks(v *VNode) bool {
	return v != nil && v.Hooks != nil && len(v.Hooks.OnMount) > 0
}

// runMount runs v's mount hooks in registration order. Returned teardowns are
// appended to OnDestroy after any existing ones.
func runMount(v *VNode) {
	if v == nil || v.Hooks == nil {
		return
	}
	mounts := v.Hooks.OnMount
	for _, hook := range mounts {
		if hook == nil {
			continue
		}
		if teardown := hook(); teardown != nil {
			v.Hooks.OnDestroy = append(v.Hooks.OnDestroy, teardown)
		}
	}
}

// runDestroy runs the destroy hooks of v and then of its descendants in
// document order, clearing NodeRefs as it goes. Each hook list is dropped after
// running so a subtree cannot be torn down twice.
func runDestroy(v *VNode) {
	v = Unwrap(v)
	if v == nil {
		return
	}
	v.NodeRef = nil
	if v.Kind != KindElement {
		return
	}
	if v.Hooks != nil {
		destroys := v.Hooks.OnDestroy
		v.Hooks.OnDestroy = nil
		for _, hook := range destroys {
			if hook != nil {
				hook()
			}
		}
	}
	for _, child := range v.Children {
		runDestroy(child)
	}
}
