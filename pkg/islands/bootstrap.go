package islands

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/vango-dev/cargo/internal/errors"
)

// Script locations used when BootstrapConfig leaves them empty.
const (
	DefaultClientScript = "/main.js"
	DefaultScriptPrefix = "/island-"
)

// BootstrapConfig locates the client runtime and island modules.
type BootstrapConfig struct {
	// ClientScript is the module exporting launch.
	ClientScript string

	// ScriptPrefix is prepended to the island name to form its module
	// path; ".js" is appended.
	ScriptPrefix string
}

// BootstrapScript returns the body of the module script that hydrates
// islands in the browser:
//
//	import { launch } from "/main.js";
//	import counter from "/island-counter.js";
//	launch([{ id: "3f9a0c1e", name: "counter", node: counter, props: {"start":1} }]);
//
// Each island module is imported once however often it occurs. It returns
// "" when there are no islands.
func BootstrapScript(found []Island, cfg BootstrapConfig) (string, error) {
	if len(found) == 0 {
		return "", nil
	}
	if cfg.ClientScript == "" {
		cfg.ClientScript = DefaultClientScript
	}
	if cfg.ScriptPrefix == "" {
		cfg.ScriptPrefix = DefaultScriptPrefix
	}

	var b strings.Builder
	fmt.Fprintf(&b, "import { launch } from %s;\n", jsString(cfg.ClientScript))

	imported := make(map[string]bool, len(found))
	for _, island := range found {
		if imported[island.Name] {
			continue
		}
		imported[island.Name] = true
		fmt.Fprintf(&b, "import %s from %s;\n",
			Identifier(island.Name), jsString(cfg.ScriptPrefix+island.Name+".js"))
	}

	b.WriteString("launch([")
	for i, island := range found {
		if i > 0 {
			b.WriteString(", ")
		}
		props := "{}"
		if len(island.Props) > 0 {
			data, err := json.Marshal(island.Props)
			if err != nil {
				return "", errors.New("E046").WithSubject(island.Name).Wrap(err)
			}
			props = string(data)
		}
		fmt.Fprintf(&b, "{ id: %s, name: %s, node: %s, props: %s }",
			jsString(island.ID), jsString(island.Name), Identifier(island.Name), props)
	}
	b.WriteString("]);")
	return b.String(), nil
}

// Identifier turns an island name into a JavaScript identifier: characters
// outside [A-Za-z0-9_$] are dropped and a leading digit gets a "_" prefix.
//
//	Identifier("todo-list") == "todolist"
func Identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || r == '$' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	id := b.String()
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = "_" + id
	}
	return id
}

// jsString quotes s as a JavaScript string literal. JSON encoding escapes
// <, > and & so the result is safe inside a script element.
func jsString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
