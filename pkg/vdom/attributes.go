package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrKV sets an arbitrary attribute.
func AttrKV(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("island", "counter") → data-island="counter"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute (for labels).
func For(id string) Attr { return attr("for", id) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// Checked sets the checked attribute.
func Checked() Attr { return attr("checked", true) }

// Selected sets the selected attribute.
func Selected() Attr { return attr("selected", true) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// SVG presentation attributes

// ViewBox sets the viewBox attribute.
func ViewBox(box string) Attr { return attr("viewBox", box) }

// Fill sets the fill attribute.
func Fill(paint string) Attr { return attr("fill", paint) }

// Stroke sets the stroke attribute.
func Stroke(paint string) Attr { return attr("stroke", paint) }

// Cx sets the cx attribute.
func Cx(v float64) Attr { return attr("cx", v) }

// Cy sets the cy attribute.
func Cy(v float64) Attr { return attr("cy", v) }

// R sets the r attribute.
func R(v float64) Attr { return attr("r", v) }

// D sets the d (path data) attribute.
func D(path string) Attr { return attr("d", path) }

// Conditional attributes

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}
