package schema

// FlagType is the closed set of value kinds a flag can carry.
type FlagType string

const (
	TypeBoolean FlagType = "boolean"
	TypeNumber  FlagType = "number"
	TypeString  FlagType = "string"
	TypeChoice  FlagType = "choice"
	TypePath    FlagType = "path"
)

func (t FlagType) valid() bool {
	switch t {
	case TypeBoolean, TypeNumber, TypeString, TypeChoice, TypePath:
		return true
	}
	return false
}

// Sections with semantics beyond presentation grouping: a start request must
// set a model-section flag or enable a presets-section boolean.
const (
	SectionModel   = "model"
	SectionPresets = "presets"
)

// FlagDef describes one entry of the flag catalog. Immutable after load.
type FlagDef struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Type        FlagType `json:"type" yaml:"type" toml:"type"`
	Default     any      `json:"default,omitempty" yaml:"default" toml:"default"`
	Required    bool     `json:"required,omitempty" yaml:"required" toml:"required"`
	Section     string   `json:"section,omitempty" yaml:"section" toml:"section"`
	Options     []string `json:"options,omitempty" yaml:"options" toml:"options"`
	Description string   `json:"description,omitempty" yaml:"description" toml:"description"`
}

// Registry holds the loaded flag catalog. It is immutable after load and
// therefore safe for concurrent readers.
type Registry struct {
	defs   []FlagDef
	byName map[string]int
}

// Get returns the definition for name, if present.
func (r *Registry) Get(name string) (FlagDef, bool) {
	i, ok := r.byName[name]
	if !ok {
		return FlagDef{}, false
	}
	return r.defs[i], true
}

// All returns the definitions in catalog order. The slice is a copy and may
// be retained by the caller.
func (r *Registry) All() []FlagDef {
	out := make([]FlagDef, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of flags in the catalog.
func (r *Registry) Len() int { return len(r.defs) }
