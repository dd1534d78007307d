// Package match finds near-miss component type names so that a template
// whose ComponentType names drift from the generated criteria can be
// diagnosed with a suggestion instead of a bare "not found".
package match
