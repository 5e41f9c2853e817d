package models

import (
	"sort"
	"strings"
)

// LoadPlan represents the root of the JSON load plan file.
type LoadPlan struct {
	Context    Context    `json:"context" yaml:"context"`
	SourcePlan EntityPlan `json:"source_plan" yaml:"source_plan"`
	TargetPlan EntityPlan `json:"target_plan" yaml:"target_plan"`
	EdgePlan   EdgePlan   `json:"edge_plan" yaml:"edge_plan"`
}

// Context maps a short namespace name to a URI prefix.
type Context map[string]string

// Lookup returns the URI prefix registered under name.
func (c Context) Lookup(name string) (string, bool) {
	prefix, ok := c[name]
	return prefix, ok
}

// LookupFold is Lookup with a case-insensitive fallback, for CURIEs such as
// "MESH:D003920" whose namespace is spelled differently from the context key.
func (c Context) LookupFold(name string) (string, bool) {
	if prefix, ok := c[name]; ok {
		return prefix, true
	}
	for key, prefix := range c {
		if strings.EqualFold(key, name) {
			return prefix, true
		}
	}
	return "", false
}

// Names returns the namespace names in sorted order.
func (c Context) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EntityPlan describes how a node is derived from a table row.
type EntityPlan struct {
	RepPrefix       string   `json:"rep_prefix,omitempty" yaml:"rep_prefix,omitempty"`
	RepColumn       string   `json:"rep_column" yaml:"rep_column"`
	NodeNameColumn  string   `json:"node_name_column" yaml:"node_name_column"`
	PropertyColumns []Column `json:"property_columns,omitempty" yaml:"property_columns,omitempty"`
}

// EdgePlan describes how an edge between a source and a target node is derived.
type EdgePlan struct {
	DefaultPredicate string   `json:"default_predicate" yaml:"default_predicate"`
	PredicateColumn  string   `json:"predicate_column,omitempty" yaml:"predicate_column,omitempty"`
	PropertyColumns  []Column `json:"property_columns,omitempty" yaml:"property_columns,omitempty"`
}
