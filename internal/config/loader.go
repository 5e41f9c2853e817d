package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BartekS5/loadplan/internal/plan"
	"github.com/BartekS5/loadplan/pkg/models"
)

// Format is the on-disk encoding of a load plan.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
	}
}

// LoadPlanFile reads, parses and validates the load plan at filePath.
// Validation problems come back as *plan.ValidationErrors.
func LoadPlanFile(filePath string) (*models.LoadPlan, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read load plan '%s': %w", filePath, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read load plan '%s': %w", filePath, err)
	}

	p, err := ParsePlan(data, FormatForPath(filePath))
	if err != nil {
		return nil, fmt.Errorf("load plan '%s': %w", filePath, err)
	}
	return p, nil
}

// ParsePlan decodes and validates a load plan.
func ParsePlan(data []byte, format Format) (*models.LoadPlan, error) {
	var p models.LoadPlan
	var dups []error
	switch format {
	case FormatYAML:
		// yaml.v3 already rejects duplicate mapping keys.
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		for _, key := range duplicateContextKeys(data) {
			dups = append(dups, &plan.DuplicateKeyError{Path: "context." + key})
		}
	}

	if err := plan.Join(plan.Validate(&p), dups...); err != nil {
		return nil, err
	}
	return &p, nil
}

// duplicateContextKeys walks the top-level "context" object and returns the
// keys that occur more than once, in document order. encoding/json keeps the
// last value silently, so this has to look at the tokens. Malformed input
// yields nil; json.Unmarshal has already reported it.
func duplicateContextKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		if key, _ := tok.(string); key != "context" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil
			}
			continue
		}

		if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
			return nil
		}
		var dups []string
		seen := map[string]int{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil
			}
			key, _ := tok.(string)
			seen[key]++
			if seen[key] == 2 {
				dups = append(dups, key)
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil
			}
		}
		return dups
	}
	return nil
}

// MarshalPlan serializes a load plan. JSON output is indented.
func MarshalPlan(p *models.LoadPlan, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(p)
	default:
		out, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
}

// WritePlanFile writes a load plan to path in the format its extension names.
func WritePlanFile(p *models.LoadPlan, path string) error {
	data, err := MarshalPlan(p, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("failed to marshal load plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write load plan '%s': %w", path, err)
	}
	return nil
}
