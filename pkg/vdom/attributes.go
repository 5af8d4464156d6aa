package vdom

import (
	"fmt"
	"strconv"
	"strings"
)

// attr creates a plain Attr with the given name and value.
func attr(name, value string) Attr {
	return Attr{Name: name, Kind: AttrPlain, Value: value}
}

// ClassAttr builds the class attribute, joining non-empty classes with spaces.
func ClassAttr(classes ...string) Attr {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return Attr{Name: "class", Kind: AttrClass, Value: strings.Join(parts, " ")}
}

// Class is the factory-friendly alias for ClassAttr.
func Class(classes ...string) Attr { return ClassAttr(classes...) }

// ClassIf returns class when cond holds and "" otherwise, for use inside
// Class(...).
func ClassIf(cond bool, class string) string {
	if cond {
		return class
	}
	return ""
}

// StyleAttr sets the style attribute verbatim.
func StyleAttr(style string) Attr { return attr("style", style) }

// StyleMap sets inline style property by property.
func StyleMap(props map[string]string) Attr {
	cp := make(map[string]string, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return Attr{Name: "style", Kind: AttrStyle, Style: cp}
}

// Flag sets a boolean host property such as checked or hidden.
func Flag(name string, on bool) Attr {
	return Attr{Name: name, Kind: AttrFlag, On: on}
}

// Key sets the keyed-list identity. The key is converted with fmt.Sprint.
func Key(key any) Attr { return attr(KeyAttr, fmt.Sprint(key)) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Form input attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("for", id) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", strconv.Itoa(index)) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Boolean properties

// Checked sets the checked property.
func Checked(on bool) Attr { return Flag("checked", on) }

// Disabled sets the disabled property.
func Disabled(on bool) Attr { return Flag("disabled", on) }

// Hidden sets the hidden property.
func Hidden(on bool) Attr { return Flag("hidden", on) }

// Autofocus marks the element to be focused when it is mounted by an
// item rebuild.
func Autofocus() Attr { return Flag("autofocus", true) }
