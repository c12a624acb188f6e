package preset

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadFromTOML parses a single user-defined preset from TOML data.
func LoadFromTOML(data []byte) (Preset, error) {
	var p Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("preset: parse TOML: %w", err)
	}
	if p.Name == "" {
		return Preset{}, fmt.Errorf("preset: missing required field 'name'")
	}
	if _, known := filterByName[p.Filter]; p.Filter != "" && !known {
		return Preset{}, fmt.Errorf("preset %q: unknown filter %q", p.Name, p.Filter)
	}
	return p, nil
}

// LoadUserPresetsFile reads a TOML file containing one or more [[preset]]
// tables and registers each one, overriding any built-in of the same name.
// A missing file is not an error: user presets are optional.
func LoadUserPresetsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("preset: read %s: %w", path, err)
	}

	var doc struct {
		Preset []Preset `toml:"preset"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("preset: parse %s: %w", path, err)
	}
	for _, p := range doc.Preset {
		if p.Name == "" {
			return fmt.Errorf("preset: %s contains a preset with no name", path)
		}
		if _, known := filterByName[p.Filter]; p.Filter != "" && !known {
			return fmt.Errorf("preset %q in %s: unknown filter %q", p.Name, path, p.Filter)
		}
		Register(p)
	}
	return nil
}

// SaveToTOML serializes a preset to TOML format.
func SaveToTOML(p Preset) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("preset: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}
