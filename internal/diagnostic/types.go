package diagnostic

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"cap-structure-generator/internal/common"
)

// Diagnostic codes emitted by the pipeline.
const (
	CodeRenamed           = "renamed"
	CodeDeprecated        = "deprecated"
	CodeDuplicate         = "duplicate_value"
	CodeMultiBitRemapped  = "multi_bit_remapped"
	CodeBitSpaceExhausted = "bit_space_exhausted"
	CodeStubInjected      = "stub_injected"
	CodeSummary           = "summary"
	CodeBitSkipped        = "bit_skipped"
	CodeBitOverflow       = "bit_overflow"
	CodeTemplateMissing   = "template_missing"
	CodeMappingMissing    = "mapping_missing"
	CodeBlockMissing      = "block_missing"
	CodeInvalidRule       = "invalid_rule"
)

// Diagnostics holds all diagnostic information from a generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic

	// ordered holds every diagnostic added through the methods, in order.
	ordered []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Criterion names the component type this relates to (if any).
	Criterion string
	// Literal names the literal this relates to (if any).
	Literal string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, criterion, literal string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticError,
		Code:      code,
		Message:   message,
		Criterion: criterion,
		Literal:   literal,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, criterion, literal string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      code,
		Message:   message,
		Criterion: criterion,
		Literal:   literal,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, criterion, literal string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticInfo,
		Code:      code,
		Message:   message,
		Criterion: criterion,
		Literal:   literal,
	})
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.ordered = append(d.ordered, diag)

	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
	d.ordered = append(d.ordered, other.All()...)
}

// All returns every diagnostic in the order it was added. Lists filled
// directly rather than through Add come last, infos before warnings before
// errors.
func (d *Diagnostics) All() []Diagnostic {
	out := slices.Clone(d.ordered)
	if len(out) == len(d.Errors)+len(d.Warnings)+len(d.Infos) {
		return out
	}

	out = out[:0]
	out = append(out, d.Infos...)
	out = append(out, d.Warnings...)

	return append(out, d.Errors...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// ByCode returns every diagnostic with the given code, errors first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Criterion != "" {
		prefix = append(prefix, "["+d.Criterion+"]")
	}

	if d.Literal != "" {
		prefix = append(prefix, d.Literal)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
