package errors

import "sort"

// Template defines a registered error.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]Template{
	// Mounting and rendering (E100-E199)

	"E101": {
		Category: CategoryMount,
		Message:  "Mount target not found",
		Detail:   "No element with the requested id exists in the document. The app stays inert: nothing is rendered and state changes do not trigger updates.",
	},
	"E102": {
		Category: CategoryMount,
		Message:  "App already mounted",
		Detail:   "An app renders into exactly one mount point. Create a second app to render elsewhere.",
	},
	"E103": {
		Category: CategoryRender,
		Message:  "App not mounted",
		Detail:   "Render was called before Mount succeeded.",
	},
	"E104": {
		Category: CategoryRender,
		Message:  "Render pass failed",
		Detail:   "The host document rejected a node while the view was being mounted or patched.",
	},

	// Configuration (E200-E299)

	"E201": {
		Category: CategoryConfig,
		Message:  "Config file could not be parsed",
		Detail:   "vlite.json must be valid JSON and vlite.yaml valid YAML.",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or malformed.",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The config file given on the command line does not exist.",
	},

	// Command line and preview server (E300-E399)

	"E301": {
		Category: CategoryCLI,
		Message:  "Unknown route",
		Detail:   "The route is not one of the registered hash routes.",
	},
	"E302": {
		Category: CategoryServer,
		Message:  "Preview server failed",
		Detail:   "The preview server could not listen on the configured address.",
	},
	"E303": {
		Category: CategoryCLI,
		Message:  "Output could not be written",
	},
}

// Lookup returns the template for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for c := range registry {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// CodesIn returns the registered codes of one category, in order.
func CodesIn(cat Category) []string {
	var codes []string
	for _, c := range Codes() {
		if registry[c].Category == cat {
			codes = append(codes, c)
		}
	}
	return codes
}
