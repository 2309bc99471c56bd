package vdom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"hidden":          true,
	"inert":           true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"readonly":        true,
	"required":        true,
	"selected":        true,
}

// IsBooleanAttr reports whether name is an HTML boolean attribute.
func IsBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// EffectiveAttrs returns the string attributes that should be present on the
// live node for v. Internal props ("key", "_"-prefixed), function values and
// false/nil values are omitted; React-style aliases are normalised.
func EffectiveAttrs(v *VNode) map[string]string {
	if v == nil || v.Kind != KindElement || len(v.Props) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(v.Props))
	for key, value := range v.Props {
		name, ok := attrName(key)
		if !ok {
			continue
		}
		s, ok := AttrString(value)
		if !ok {
			continue
		}
		attrs[name] = s
	}
	return attrs
}

// AttrString converts a prop value to its attribute string. The boolean
// result is false when the attribute should be absent.
func AttrString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		// Present-without-value for true, absent for false.
		return "", v
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	}
	if isFunc(value) {
		return "", false
	}
	return fmt.Sprintf("%v", value), true
}

// SortedKeys returns the keys of attrs in lexical order.
func SortedKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// attrName maps a prop key to its attribute name.
func attrName(key string) (string, bool) {
	switch {
	case key == "" || key == "key" || key == "children":
		return "", false
	case strings.HasPrefix(key, "_"):
		return "", false
	case key == "className":
		return "class", true
	case key == "htmlFor":
		return "for", true
	}
	return key, true
}

func isFunc(value any) bool {
	switch value.(type) {
	case func(), MountHook, DestroyHook:
		return true
	}
	return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
}
