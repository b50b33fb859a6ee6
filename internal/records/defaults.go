package records

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults is the static field-name to value table applied to every record
// when neither the model nor the filename supplies a value.
type Defaults map[string]string

// BuiltinDefaults returns the standing defaults for the slide collection.
func BuiltinDefaults() Defaults {
	return Defaults{
		"ColDepartment":     "Special Collections - Archive Collections",
		"ColObjectType":     "Photograph",
		"PhoRecordLevel":    "Item",
		"EADLevelAttribute": "Item",
		"ColObjectStatus":   "1- Available",
		"PhoRecordStatus":   "Catalogued",
		"PhoMedia_tab":      "slides (photographs)",
		"PhoFormat_tab":     "positives (photographs)",
	}
}

// LoadDefaults reads a YAML field-name to value mapping and merges it over
// the builtin table. Entries naming fields outside the fixed schema are
// rejected so schema drift surfaces as a configuration error rather than a
// silently dropped column.
func LoadDefaults(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse defaults file: %w", err)
	}

	known := make(map[string]bool, len(schemaFields))
	for _, f := range schemaFields {
		known[f.Name] = true
	}

	defaults := BuiltinDefaults()
	for name, value := range overrides {
		if !known[name] {
			return nil, fmt.Errorf("defaults file %s names unknown field %q", path, name)
		}
		defaults[name] = value
	}

	return defaults, nil
}
