package structure

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"cap-structure-generator/internal/bitpos"
	"cap-structure-generator/internal/criterion"
	"cap-structure-generator/internal/diagnostic"
	"cap-structure-generator/internal/match"
)

// Element and attribute names of the structure file schema.
const (
	tagComponentType     = "ComponentType"
	tagBitParameterBlock = "BitParameterBlock"
	tagBitParameter      = "BitParameter"
	tagEnumParameter     = "EnumParameter"
	tagValuePair         = "ValuePair"

	attrName      = "Name"
	attrSize      = "Size"
	attrPos       = "Pos"
	attrLiteral   = "Literal"
	attrNumerical = "Numerical"

	bitParameterSize = "1"
)

// ErrNoRoot is returned for a template without a root element.
var ErrNoRoot = errors.New("structure template has no root element")

// Merge appends the values of every mapping in table to the matching
// ComponentType nodes of doc. reps declares how each type is rendered.
// Unmatched nodes and mappings are left alone and reported as infos; a
// mapping without a node names the closest unmatched node, if any.
func Merge(
	doc *etree.Document,
	table criterion.Table,
	reps map[criterion.Name]criterion.Representation,
) (diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	root := doc.Root()
	if root == nil {
		return diags, ErrNoRoot
	}

	nodes := root.SelectElements(tagComponentType)
	unmatched := unmatchedNames(nodes, table)

	for _, m := range table.Mappings() {
		name := m.Name()
		matched := 0

		for _, node := range nodes {
			if node.SelectAttrValue(attrName, "") != string(name) {
				continue
			}

			matched++

			mergeNode(node, m, reps[name], &diags)
		}

		if matched == 0 {
			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticInfo,
				Code:        diagnostic.CodeTemplateMissing,
				Message:     "no ComponentType node in template",
				Criterion:   string(name),
				Suggestions: match.Closest(string(name), unmatched, match.DefaultMaxDistance),
			})
		}
	}

	for _, name := range unmatched {
		diags.AddInfo(diagnostic.CodeMappingMissing, "template node has no generated values", name, "")
	}

	return diags, nil
}

// unmatchedNames lists the names of nodes no mapping of table targets,
// in document order.
func unmatchedNames(nodes []*etree.Element, table criterion.Table) []string {
	var names []string

	for _, node := range nodes {
		name := node.SelectAttrValue(attrName, "")
		if _, ok := table.Get(criterion.Name(name)); !ok {
			names = append(names, name)
		}
	}

	return names
}

func mergeNode(node *etree.Element, m criterion.Mapping, rep criterion.Representation, diags *diagnostic.Diagnostics) {
	crit := string(m.Name())

	if rep == criterion.RepresentationNone {
		diags.AddInfo(diagnostic.CodeBlockMissing, "no representation declared, node left untouched", crit, "")
		return
	}

	if rep.Has(criterion.RepresentationBitField) {
		if block := node.SelectElement(tagBitParameterBlock); block != nil {
			appendBitParameters(block, m, diags)
		} else {
			diags.AddWarning(diagnostic.CodeBlockMissing, "node has no "+tagBitParameterBlock, crit, "")
		}
	}

	if rep.Has(criterion.RepresentationEnumeration) {
		if enum := node.SelectElement(tagEnumParameter); enum != nil {
			appendValuePairs(enum, m)
		} else {
			diags.AddWarning(diagnostic.CodeBlockMissing, "node has no "+tagEnumParameter, crit, "")
		}
	}
}

func appendBitParameters(block *etree.Element, m criterion.Mapping, diags *diagnostic.Diagnostics) {
	crit := string(m.Name())

	for _, e := range m.Entries() {
		pos, err := bitpos.Resolve(e.Value)

		switch {
		case errors.Is(err, bitpos.ErrMultipleBits):
			diags.AddWarning(diagnostic.CodeBitSkipped,
				fmt.Sprintf("value %#x has multiple bits set, skipped", e.Value), crit, e.Literal)

			continue

		case errors.Is(err, bitpos.ErrOverflow):
			diags.AddWarning(diagnostic.CodeBitOverflow,
				fmt.Sprintf("value %#x does not fit in %d bits, skipped", e.Value, bitpos.MaxBits), crit, e.Literal)

			continue
		}

		param := block.CreateElement(tagBitParameter)
		param.CreateAttr(attrName, e.Literal)
		param.CreateAttr(attrSize, bitParameterSize)
		param.CreateAttr(attrPos, strconv.Itoa(pos))
	}
}

func appendValuePairs(enum *etree.Element, m criterion.Mapping) {
	for _, e := range m.Entries() {
		pair := enum.CreateElement(tagValuePair)
		pair.CreateAttr(attrLiteral, e.Literal)
		pair.CreateAttr(attrNumerical, strconv.FormatUint(e.Value, 10))
	}
}
