// Package errors provides structured, actionable error messages for cargo.
//
// Each error has a unique code (e.g., "E040") that maps to a short message,
// a detailed explanation and a documentation URL. Codes are grouped by
// category:
//
//   - hydration (E040-E059): islands and mount roots
//   - apply (E060-E079): executing change-sets against the live document
//   - render (E080-E099): server-side rendering and routes
//   - config (E120-E139): cargo.json
//   - cli (E140-E159): command-line input
//
// # Usage
//
//	err := errors.New("E040").
//	    WithSubject("counter-1").
//	    WithSuggestion("Render the page and the bootstrap script in the same pass")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E040: Hydration target not found
//	//
//	//   counter-1
//	//
//	//   No live element carries the id the island was rendered with. ...
//	//
//	//   Hint: Render the page and the bootstrap script in the same pass
//	//
//	//   Learn more: https://cargo.vango.dev/docs/errors/E040
//
// CargoError supports errors.Is (matching by code) and errors.As.
package errors
