package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://cargo.vango.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Hydration Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryHydration,
		Message:  "Hydration target not found",
		Detail:   "No live element carries the id the island was rendered with. The server markup and the island list are out of sync.",
		DocURL:   docBase + "E040",
	},
	"E041": {
		Category: CategoryHydration,
		Message:  "Island not registered",
		Detail:   "The bootstrap script names an island that the client registry does not know.",
		DocURL:   docBase + "E041",
	},
	"E042": {
		Category: CategoryHydration,
		Message:  "Duplicate island name",
		Detail:   "Two components were registered under the same island name.",
		DocURL:   docBase + "E042",
	},
	"E043": {
		Category: CategoryHydration,
		Message:  "Island has no root element",
		Detail:   "An island must render an element so it can be located by id. Text-only components cannot be islands.",
		DocURL:   docBase + "E043",
	},
	"E044": {
		Category: CategoryHydration,
		Message:  "Render pass in flight",
		Detail:   "A diff/apply pass was started while another pass on the same root was still running.",
		DocURL:   docBase + "E044",
	},
	"E045": {
		Category: CategoryHydration,
		Message:  "Root not mounted",
		Detail:   "Update and Unmount need a root that was hydrated or rendered first.",
		DocURL:   docBase + "E045",
	},
	"E046": {
		Category: CategoryHydration,
		Message:  "Island props not serialisable",
		Detail:   "Island props travel to the browser as JSON in the data-props attribute. Functions, channels and cyclic values cannot be encoded.",
		DocURL:   docBase + "E046",
	},
	"E047": {
		Category: CategoryHydration,
		Message:  "Invalid island props",
		Detail:   "The data-props attribute of a live island is not valid JSON.",
		DocURL:   docBase + "E047",
	},

	// ============================================
	// Apply Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryApply,
		Message:  "Change could not be applied",
		Detail:   "The live document rejected a mutation. Changes before it stay applied and the virtual tree may be out of sync with the document.",
		DocURL:   docBase + "E060",
	},
	"E061": {
		Category: CategoryApply,
		Message:  "Unsupported change action",
		Detail:   "The change-set contains a (type, action) pair no applier implements. It was skipped.",
		DocURL:   docBase + "E061",
	},
	"E062": {
		Category: CategoryApply,
		Message:  "Missing live parent",
		Detail:   "The parent virtual node has no live node to attach into.",
		DocURL:   docBase + "E062",
	},

	// ============================================
	// Render Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryRender,
		Message:  "Page render failed",
		Detail:   "The page component could not be rendered to HTML.",
		DocURL:   docBase + "E080",
	},
	"E081": {
		Category: CategoryRender,
		Message:  "Duplicate route",
		Detail:   "Two pages were registered for the same path.",
		DocURL:   docBase + "E081",
	},
	"E082": {
		Category: CategoryRender,
		Message:  "Invalid route path",
		Detail:   "Route paths must start with '/' and use {name} for parameter segments.",
		DocURL:   docBase + "E082",
	},
	"E083": {
		Category: CategoryRender,
		Message:  "No route found",
		Detail:   "No registered page matches the requested path.",
		DocURL:   docBase + "E083",
	},
	"E084": {
		Category: CategoryRender,
		Message:  "Page data failed to load",
		Detail:   "The route's data loader returned an error.",
		DocURL:   docBase + "E084",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No cargo.json was found in the working directory or its parents.",
		DocURL:   docBase + "E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration JSON",
		Detail:   "cargo.json could not be parsed.",
		DocURL:   docBase + "E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration field has a value outside its allowed range.",
		DocURL:   docBase + "E122",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Input file not readable",
		Detail:   "The file given on the command line could not be opened.",
		DocURL:   docBase + "E140",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Invalid HTML input",
		Detail:   "The input has no element to compare. Pass a document with a <body> containing at least one element.",
		DocURL:   docBase + "E141",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
