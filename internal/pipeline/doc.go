// Package pipeline runs one header-to-structure generation.
//
// Generation pipeline:
//  1. Validate the rule set
//  2. Extract constants from the header
//  3. Reduce them into one mapping per component type
//  4. Load the structure template and merge the mappings into it
//  5. Render the document
//
// Nothing is written to the destination unless every step succeeded.
// Diagnostics from each step are logged and returned in the Report.
package pipeline
