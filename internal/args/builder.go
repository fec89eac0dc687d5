// Package args derives a minimal llama-server command line from a
// configuration map by diffing it against the flag catalog's defaults.
// Flags whose value equals the default are omitted entirely, so an omitted
// flag always means "use the server's own default".
package args

import (
	"fmt"
	"strconv"

	"llamactl/internal/schema"
)

// Build produces the ordered argument list for a start request. Keys absent
// from the catalog are skipped. It fails with a validation error when a
// supplied value's type disagrees with its catalog entry, or when a choice
// value is outside its options.
//
// Emission order follows Go's map iteration order; the order carries no
// meaning to llama-server.
func Build(cfg map[string]any, reg *schema.Registry) ([]string, error) {
	out := make([]string, 0, len(cfg))
	for name, raw := range cfg {
		def, ok := reg.Get(name)
		if !ok {
			continue
		}
		tokens, err := emit(def, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, tokens...)
	}
	return out, nil
}

// RequireModel enforces the start precondition: at least one model-section
// flag set to a non-default value, or one presets-section boolean enabled.
func RequireModel(cfg map[string]any, reg *schema.Registry) error {
	for name, raw := range cfg {
		def, ok := reg.Get(name)
		if !ok {
			continue
		}
		switch def.Section {
		case schema.SectionModel:
			tokens, err := emit(def, raw)
			if err == nil && len(tokens) > 0 {
				return nil
			}
		case schema.SectionPresets:
			if b, ok := raw.(bool); ok && b {
				return nil
			}
		}
	}
	return ErrValidation("no model selected and no preset enabled")
}

// emit serializes one flag. It returns no tokens when the value equals the
// catalog default under type-aware equality (absent default counts as the
// zero value: false, 0, "").
func emit(def schema.FlagDef, raw any) ([]string, error) {
	flag := "--" + def.Name
	switch def.Type {
	case schema.TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, ErrValidation(fmt.Sprintf("flag %q expects a boolean, got %T", def.Name, raw))
		}
		deflt, _ := def.Default.(bool)
		// A boolean only ever emits a presence token: false is expressed by
		// omission even when it differs from a true default.
		if b == deflt || !b {
			return nil, nil
		}
		return []string{flag}, nil
	case schema.TypeNumber:
		f, ok := schema.ToNumber(raw)
		if !ok {
			return nil, ErrValidation(fmt.Sprintf("flag %q expects a number, got %T", def.Name, raw))
		}
		deflt, _ := def.Default.(float64)
		if f == deflt {
			return nil, nil
		}
		return []string{flag, strconv.FormatFloat(f, 'f', -1, 64)}, nil
	case schema.TypeString, schema.TypePath:
		s, ok := raw.(string)
		if !ok {
			return nil, ErrValidation(fmt.Sprintf("flag %q expects a string, got %T", def.Name, raw))
		}
		deflt, _ := def.Default.(string)
		if s == deflt {
			return nil, nil
		}
		return []string{flag, s}, nil
	case schema.TypeChoice:
		s, ok := raw.(string)
		if !ok {
			return nil, ErrValidation(fmt.Sprintf("flag %q expects a string, got %T", def.Name, raw))
		}
		found := false
		for _, o := range def.Options {
			if o == s {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrValidation(fmt.Sprintf("flag %q does not allow value %q", def.Name, s))
		}
		deflt, _ := def.Default.(string)
		if s == deflt {
			return nil, nil
		}
		return []string{flag, s}, nil
	}
	return nil, ErrValidation(fmt.Sprintf("flag %q has unsupported type %q", def.Name, def.Type))
}
