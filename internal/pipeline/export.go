package pipeline

import (
	"gopkg.in/yaml.v3"

	"cap-structure-generator/internal/criterion"
)

// MappingsFile is the YAML export of a finalized table, for review.
type MappingsFile struct {
	Version  string            `yaml:"version"`
	Criteria []CriterionValues `yaml:"criteria"`
}

// CriterionValues lists one component type's values in ascending order.
type CriterionValues struct {
	Name   string         `yaml:"name"`
	Values []LiteralValue `yaml:"values"`
}

// LiteralValue is one exported pair.
type LiteralValue struct {
	Literal string `yaml:"literal"`
	Value   uint64 `yaml:"value"`
}

// ExportMappings converts a table into its exported form.
func ExportMappings(table criterion.Table) *MappingsFile {
	mf := &MappingsFile{
		Version:  "1",
		Criteria: []CriterionValues{},
	}

	for _, m := range table.Mappings() {
		cv := CriterionValues{Name: string(m.Name()), Values: []LiteralValue{}}
		for _, e := range m.Entries() {
			cv.Values = append(cv.Values, LiteralValue{Literal: e.Literal, Value: e.Value})
		}

		mf.Criteria = append(mf.Criteria, cv)
	}

	return mf
}

// ExportMappingsYAML generates the YAML export as a byte slice.
func ExportMappingsYAML(table criterion.Table) ([]byte, error) {
	return yaml.Marshal(ExportMappings(table))
}
