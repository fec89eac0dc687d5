package schema

import _ "embed"

// Default catalog describing the llama-server flag surface. Used when no
// catalog path is configured.
//
//go:embed catalog.yaml
var defaultCatalog []byte

// Default parses the embedded llama-server flag catalog.
func Default() (*Registry, error) {
	return Parse(defaultCatalog, "yaml")
}
