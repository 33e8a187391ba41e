// Package record defines the extracted-string records produced by the
// upstream scanner and consumed by the transformer.
//
// The scanner walks a project, decides which hard-coded strings should be
// localized, and emits one JSON array of records describing each occurrence:
// where the text lives, its exact source form, and the stable semantic ID
// under which the localized message will be registered. This package only
// reads that format; it never decides what to extract.
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Context identifies which section of a component file a record was
// extracted from.
type Context string

const (
	// ContextScript: the record lives in the script section (or in a
	// plain .js file, which is all script).
	ContextScript Context = "script"
	// ContextTemplate: the record lives in the markup section of a
	// single-file component.
	ContextTemplate Context = "template"
)

// TemplateContext is the syntactic position of a text fragment within the
// template section. It determines the exact replacement syntax.
type TemplateContext string

const (
	// TemplateContextText: free text between tags, e.g. <p>Hello</p>.
	TemplateContextText TemplateContext = "text-node"
	// TemplateContextStaticAttr: plain attribute value, e.g. title="Confirm".
	TemplateContextStaticAttr TemplateContext = "static-attribute"
	// TemplateContextInterpolation: text inside {{ ... }} delimiters.
	TemplateContextInterpolation TemplateContext = "interpolation"
	// TemplateContextDynamicAttr: bound attribute value, e.g. :title="...".
	TemplateContextDynamicAttr TemplateContext = "dynamic-attribute"
)

// ExtractedString describes one piece of literal text to localize.
// Produced by the scanner; immutable input to the transformer.
type ExtractedString struct {
	// FilePath is the source file the text was extracted from.
	FilePath string `json:"filePath"`
	// Original is the exact source substring, including its own quote
	// characters when the text was lifted from a quoted literal.
	Original string `json:"original"`
	// Line is the 1-based line number within the whole file.
	Line int `json:"line"`
	// Column is the 0-based column hint on that line. Hints can drift by
	// a character or a few lines; the transformer verifies every match.
	Column int `json:"column"`
	// Context tells which section the record belongs to.
	Context Context `json:"context"`
	// SemanticID is the stable localization lookup key, e.g.
	// "dialog.confirmButtonText".
	SemanticID string `json:"semanticId"`
	// IsTemplateString is true when Original is a backtick template
	// literal with interpolated expressions.
	IsTemplateString bool `json:"isTemplateString"`
	// TemplateVariables lists the source expressions interpolated into
	// Original, in order of appearance.
	TemplateVariables []string `json:"templateVariables,omitempty"`
	// TemplateContext is set for template-section records only.
	TemplateContext TemplateContext `json:"templateContext,omitempty"`
	// AttributeName is set only for attribute contexts.
	AttributeName string `json:"attributeName,omitempty"`
}

// Parse decodes a scanner output JSON array.
func Parse(data []byte) ([]ExtractedString, error) {
	var recs []ExtractedString
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}
	return recs, nil
}

// ParseFile reads and decodes a scanner output file.
func ParseFile(path string) ([]ExtractedString, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	recs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ForFile returns the records whose FilePath matches path, in input order.
func ForFile(recs []ExtractedString, path string) []ExtractedString {
	var out []ExtractedString
	for _, r := range recs {
		if r.FilePath == path {
			out = append(out, r)
		}
	}
	return out
}

// GroupByFile buckets records by FilePath and returns the sorted list of
// file paths alongside the buckets, so callers can iterate deterministically.
func GroupByFile(recs []ExtractedString) ([]string, map[string][]ExtractedString) {
	groups := make(map[string][]ExtractedString)
	for _, r := range recs {
		groups[r.FilePath] = append(groups[r.FilePath], r)
	}
	paths := make([]string, 0, len(groups))
	for p := range groups {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, groups
}

// SortDescending orders records by descending (line, column) so that
// applying replacements in slice order never shifts the position of a
// record that has not been applied yet.
func SortDescending(recs []ExtractedString) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Line != recs[j].Line {
			return recs[i].Line > recs[j].Line
		}
		return recs[i].Column > recs[j].Column
	})
}
