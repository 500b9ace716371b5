package palette

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/compression"
)

// Override is the persisted, user-tunable state of one entry.
type Override struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Weight  *float64 `json:"weight,omitempty"`
	Name    string   `json:"name,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// Overrides maps entry ids to their persisted state.
type Overrides map[string]Override

func (o Override) update() (Update, error) {
	var u Update
	if o.Weight != nil {
		if *o.Weight < 0 {
			return Update{}, fmt.Errorf("weight must be non-negative, got %v", *o.Weight)
		}
		w := *o.Weight
		u.Weight = &w
	}
	if o.Name != "" {
		name := o.Name
		u.Name = &name
	}
	if o.Color != "" {
		c, err := colour.ParseHex(o.Color)
		if err != nil {
			return Update{}, err
		}
		u.Color = &c
	}
	return u, nil
}

// Overrides exports every entry's enabled flag and weight, plus its name and
// colour when they differ from the derived values.
func (s *Snapshot) Overrides() Overrides {
	out := make(Overrides, len(s.entries))
	for _, e := range s.entries {
		enabled := e.Enabled
		weight := e.Weight
		ov := Override{Enabled: &enabled, Weight: &weight}
		if e.NameOverridden() {
			ov.Name = e.Name
		}
		if e.ColorOverridden() {
			ov.Color = e.Color.Hex()
		}
		out[e.ID] = ov
	}
	return out
}

// ReadOverrides decodes a settings file written by WriteOverrides. The file may
// be xz or gzip compressed, chosen by extension.
func ReadOverrides(path string) (Overrides, error) {
	data, err := compression.ReadFile(path)
	if err != nil {
		return nil, err
	}

	o := make(Overrides)
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse palette settings %s: %w", path, err)
	}
	for id, ov := range o {
		if _, err := ov.update(); err != nil {
			return nil, fmt.Errorf("invalid settings for %s in %s: %w", id, path, err)
		}
	}
	return o, nil
}

// WriteOverrides encodes o as indented JSON at path.
func WriteOverrides(path string, o Overrides) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode palette settings: %w", err)
	}
	return compression.WriteFile(path, append(data, '\n'))
}
