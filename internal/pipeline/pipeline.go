package pipeline

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"cap-structure-generator/internal/criterion"
	"cap-structure-generator/internal/diagnostic"
	"cap-structure-generator/internal/header"
	"cap-structure-generator/internal/policy"
	"cap-structure-generator/internal/rules"
	"cap-structure-generator/internal/structure"
)

// Options configures a run.
type Options struct {
	// Rules drives extraction and value policy. Nil means rules.Default().
	Rules *rules.RuleSet
	// Logger receives diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// Report is the outcome of a successful run.
type Report struct {
	// Table holds the finalized mappings.
	Table criterion.Table
	// Diagnostics collects every decision made along the way.
	Diagnostics diagnostic.Diagnostics
	// Constants is the number of constants recognised in the header.
	Constants int
	// Output is the rendered structure document.
	Output []byte
}

// Run reads the header and the template and renders the augmented document.
func Run(headerSrc, templateSrc io.Reader, opts Options) (*Report, error) {
	rs := opts.Rules
	if rs == nil {
		rs = rules.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if res := rules.Validate(rs); !res.IsValid() {
		return nil, fmt.Errorf("invalid rule set: %w", res.Error())
	}

	extractor, err := header.NewExtractor(rs, logger.Named("header"))
	if err != nil {
		return nil, err
	}

	constants, err := extractor.Extract(headerSrc)
	if err != nil {
		return nil, err
	}

	reduced, err := policy.Reduce(constants, rs)
	if err != nil {
		if reduced != nil {
			LogDiagnostics(logger, reduced.Diagnostics)
		}

		return nil, fmt.Errorf("applying value policy: %w", err)
	}

	doc, err := structure.Load(templateSrc)
	if err != nil {
		return nil, err
	}

	merged, err := structure.Merge(doc, reduced.Table, rs.Representations())
	if err != nil {
		return nil, err
	}

	output, err := structure.Render(doc)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Table:       reduced.Table,
		Diagnostics: reduced.Diagnostics,
		Constants:   len(constants),
		Output:      output,
	}
	report.Diagnostics.Merge(merged)

	LogDiagnostics(logger, report.Diagnostics)

	return report, nil
}

// Generate runs the pipeline and writes the document to w.
func Generate(headerSrc, templateSrc io.Reader, w io.Writer, opts Options) (*Report, error) {
	report, err := Run(headerSrc, templateSrc, opts)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(report.Output); err != nil {
		return nil, fmt.Errorf("writing structure: %w", err)
	}

	return report, nil
}

// LogDiagnostics writes each diagnostic, in the order it was recorded, at the
// level matching its severity.
func LogDiagnostics(logger *zap.Logger, d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		fields := []zap.Field{zap.String("code", diag.Code)}
		if diag.Criterion != "" {
			fields = append(fields, zap.String("criterion", diag.Criterion))
		}

		if diag.Literal != "" {
			fields = append(fields, zap.String("literal", diag.Literal))
		}

		if len(diag.Suggestions) > 0 {
			fields = append(fields, zap.Strings("did_you_mean", diag.Suggestions))
		}

		switch diag.Severity {
		case diagnostic.DiagnosticError:
			logger.Error(diag.Message, fields...)
		case diagnostic.DiagnosticWarning:
			logger.Warn(diag.Message, fields...)
		default:
			logger.Info(diag.Message, fields...)
		}
	}
}
