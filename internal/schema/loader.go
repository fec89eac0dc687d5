package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a flag catalog file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (*Registry, error) {
	if path == "" {
		return nil, errSchema("empty catalog path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Parse decodes a flag catalog from raw bytes in the given format
// ("yaml", "json" or "toml") and validates it. YAML and JSON documents are a
// bare top-level list of entries; TOML documents use a "flags" table array.
func Parse(b []byte, format string) (*Registry, error) {
	var defs []FlagDef
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(b, &defs); err != nil {
			return nil, errSchema("decode yaml: " + err.Error())
		}
	case "json":
		if err := json.Unmarshal(b, &defs); err != nil {
			return nil, errSchema("decode json: " + err.Error())
		}
	case "toml":
		// TOML cannot express a top-level array; the catalog lives under a
		// "flags" table array.
		var doc struct {
			Flags []FlagDef `toml:"flags"`
		}
		if err := toml.Unmarshal(b, &doc); err != nil {
			return nil, errSchema("decode toml: " + err.Error())
		}
		defs = doc.Flags
	default:
		return nil, errSchema("unsupported catalog format: " + format)
	}
	return build(defs)
}

// build validates definitions and constructs the immutable registry.
func build(defs []FlagDef) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errSchema("catalog has no flags")
	}
	r := &Registry{defs: make([]FlagDef, 0, len(defs)), byName: make(map[string]int, len(defs))}
	for i, d := range defs {
		if strings.TrimSpace(d.Name) == "" {
			return nil, errSchema(fmt.Sprintf("entry %d has no name", i))
		}
		if !d.Type.valid() {
			return nil, errSchema(fmt.Sprintf("flag %q has unknown type %q", d.Name, d.Type))
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, errSchema("duplicate flag name: " + d.Name)
		}
		if d.Type == TypeChoice && len(d.Options) == 0 {
			return nil, errSchema("choice flag " + d.Name + " has no options")
		}
		if d.Type != TypeChoice && len(d.Options) > 0 {
			return nil, errSchema("flag " + d.Name + " is not a choice but lists options")
		}
		if d.Default != nil {
			norm, err := normalizeDefault(d)
			if err != nil {
				return nil, err
			}
			d.Default = norm
		}
		r.byName[d.Name] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// normalizeDefault type-checks a default against its flag type. Numbers are
// normalized to float64 regardless of the decoder that produced them.
func normalizeDefault(d FlagDef) (any, error) {
	switch d.Type {
	case TypeBoolean:
		b, ok := d.Default.(bool)
		if !ok {
			return nil, errSchema("flag " + d.Name + " default is not a boolean")
		}
		return b, nil
	case TypeNumber:
		f, ok := ToNumber(d.Default)
		if !ok {
			return nil, errSchema("flag " + d.Name + " default is not a number")
		}
		return f, nil
	case TypeString, TypePath:
		s, ok := d.Default.(string)
		if !ok {
			return nil, errSchema("flag " + d.Name + " default is not a string")
		}
		return s, nil
	case TypeChoice:
		s, ok := d.Default.(string)
		if !ok {
			return nil, errSchema("flag " + d.Name + " default is not a string")
		}
		for _, o := range d.Options {
			if o == s {
				return s, nil
			}
		}
		return nil, errSchema("flag " + d.Name + " default " + s + " is not among its options")
	}
	return nil, errSchema("flag " + d.Name + " has unknown type")
}

// ToNumber widens the numeric representations the yaml/json/toml decoders
// produce into float64.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
