// Package structure loads a parameter-framework structure template, appends
// the generated criterion values to it and writes the result.
//
// For every ComponentType node whose Name matches a mapping:
//   - bit fields get one BitParameter (Name, Size="1", Pos) per literal
//     under the node's BitParameterBlock
//   - enumerations get one ValuePair (Literal, Numerical) per literal under
//     the node's EnumParameter
//
// Children are appended in ascending numeric order. Which of the two a type
// uses is declared by the rule set rather than guessed from the template.
package structure
