package header

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"cap-structure-generator/internal/rules"
)

// maxLineSize bounds a single header line.
const maxLineSize = 1 << 20

// Constant is one recognised definition.
type Constant struct {
	// Line is the 1-based line number in the header.
	Line int
	// Prefix is the matched symbolic prefix, e.g. AUDIO_DEVICE_OUT.
	Prefix string
	// Literal is the suffix after the prefix, as written.
	Literal string
	// Value is the numeric text, as written (hex or decimal).
	Value string
}

// Extractor matches header lines against the constant pattern.
type Extractor struct {
	pattern  *regexp.Regexp
	reserved []string
	logger   *zap.Logger
}

// NewExtractor builds an extractor from the wrapper, prefix, mask and
// reserved suffix settings of rs.
func NewExtractor(rs *rules.RuleSet, logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	prefixes := rs.Prefixes()
	if len(prefixes) == 0 {
		return nil, errors.New("no prefixes configured")
	}

	// Longest first so that overlapping prefixes pick the most specific one.
	slices.SortStableFunc(prefixes, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})

	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}

	var b strings.Builder

	b.WriteString(`^\s*`)
	b.WriteString(regexp.QuoteMeta(rs.Wrapper))
	b.WriteString(`(` + strings.Join(quoted, "|") + `)_`)
	b.WriteString(`(\w*)\s*,\s*`)

	if rs.Mask != "" {
		b.WriteString(`(?:` + regexp.QuoteMeta(rs.Mask) + `)?`)
	}

	b.WriteString(`(0[xX][0-9a-fA-F]+|[0-9]+)`)

	pattern, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compiling constant pattern: %w", err)
	}

	return &Extractor{
		pattern:  pattern,
		reserved: slices.Clone(rs.ReservedSuffixes),
		logger:   logger,
	}, nil
}

// Match parses a single line. The boolean is false when the line does not
// define a usable constant.
func (e *Extractor) Match(line string) (Constant, bool) {
	m := e.pattern.FindStringSubmatch(line)
	if m == nil {
		return Constant{}, false
	}

	literal := m[2]
	if e.isReserved(literal) {
		return Constant{}, false
	}

	return Constant{Prefix: m[1], Literal: literal, Value: m[3]}, true
}

func (e *Extractor) isReserved(literal string) bool {
	for _, r := range e.reserved {
		if strings.HasPrefix(literal, r) {
			return true
		}
	}

	return false
}

// Extract reads r line by line and returns every recognised constant in
// source order. Only read errors are returned.
func (e *Extractor) Extract(r io.Reader) ([]Constant, error) {
	var out []Constant

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		c, ok := e.Match(line)
		if !ok {
			continue
		}

		c.Line = lineNo
		e.logger.Debug("constant matched",
			zap.Int("line", lineNo),
			zap.String("prefix", c.Prefix),
			zap.String("literal", c.Literal),
			zap.String("value", c.Value),
		)

		out = append(out, c)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading header at line %d: %w", lineNo+1, err)
	}

	e.logger.Debug("header scanned",
		zap.Int("lines", lineNo),
		zap.Int("constants", len(out)),
		zap.Int("skipped", lineNo-len(out)),
	)

	return out, nil
}
