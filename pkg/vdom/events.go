package vdom

import "github.com/vango-dev/vlite/pkg/dom"

// On binds handler to the named host event ("click" → "onclick").
// A nil handler yields an empty Attr, which builders drop.
func On(event string, handler EventHandler) Attr {
	if handler == nil || event == "" {
		return Attr{}
	}
	return Attr{Name: EventPrefix + event, Kind: AttrEvent, Handler: handler}
}

// Mouse events

// OnClick handles click events.
func OnClick(handler EventHandler) Attr { return On("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler EventHandler) Attr { return On("dblclick", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler EventHandler) Attr { return On("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler EventHandler) Attr { return On("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler EventHandler) Attr { return On("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler EventHandler) Attr { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler EventHandler) Attr { return On("submit", handler) }

// OnBlur handles blur events.
func OnBlur(handler EventHandler) Attr { return On("blur", handler) }

// OnFocus handles focus events.
func OnFocus(handler EventHandler) Attr { return On("focus", handler) }

// OnEnter fires handler for keydown events whose key is Enter.
func OnEnter(handler EventHandler) Attr {
	if handler == nil {
		return Attr{}
	}
	return OnKeyDown(func(ev dom.Event) {
		if ev.Key == "Enter" {
			handler(ev)
		}
	})
}
