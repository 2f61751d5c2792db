package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/chargefleet/chargefleet/internal/finance"
)

// ExtractDocumentValues parses a markdown planning document and collects
// `name = value` assignments for whitelisted parameter names. The document
// is walked as an AST, so assignments are recognized wherever they appear
// (fenced code blocks, indented code, plain paragraphs) without depending on
// any particular markup convention. The first assignment of a name wins;
// names outside the whitelist are ignored, since a planning document carries
// plenty of unrelated prose.
func ExtractDocumentValues(source []byte) (map[string]float64, error) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	values := make(map[string]float64)
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := n.Lines()
		if lines == nil {
			return ast.WalkContinue, nil
		}
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			collectAssignments(string(segment.Value(source)), values)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking parameter document: %w", err)
	}

	if err := ValidateValues(values); err != nil {
		return nil, err
	}
	return values, nil
}

// LoadDocument reads a markdown parameter document and builds a parameter
// set with per-key fallback to the documented defaults. A document with no
// recognizable assignments yields the full default set.
func LoadDocument(path string) (finance.Parameters, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return finance.Parameters{}, fmt.Errorf("reading parameter document %s: %w", path, err)
	}

	values, err := ExtractDocumentValues(source)
	if err != nil {
		return finance.Parameters{}, fmt.Errorf("extracting parameters from %s: %w", path, err)
	}

	return ParametersFromValues(values)
}

// collectAssignments scans one source line for `name = value` pairs and
// records whitelisted names not seen before.
func collectAssignments(line string, values map[string]float64) {
	name, rest, found := strings.Cut(line, "=")
	if !found {
		return
	}

	name = strings.TrimSpace(name)
	// Assignment lines inside documents may carry list bullets.
	name = strings.TrimLeft(name, "-* \t")
	if !IsParameter(name) {
		return
	}
	if _, seen := values[name]; seen {
		return
	}

	value, ok := leadingNumber(strings.TrimSpace(rest))
	if !ok {
		return
	}
	values[name] = value
}

// leadingNumber parses the numeric token at the start of s, tolerating
// trailing prose such as units or inline comments.
func leadingNumber(s string) (float64, bool) {
	end := 0
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
