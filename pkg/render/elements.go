package render

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

func isVoidElement(tag string) bool {
	return voidElements[tag]
}

// inlineElements stay on one line in pretty output.
var inlineElements = map[string]bool{
	"a":        true,
	"b":        true,
	"button":   true,
	"code":     true,
	"em":       true,
	"i":        true,
	"label":    true,
	"small":    true,
	"span":     true,
	"strong":   true,
	"textarea": true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}
