// Package sfc splits single-file components into their script and template
// sections.
//
// A .vue file carries up to one <script> block and one top-level <template>
// block; each section needs a different rewriting strategy, so the splitter
// reports per-section content together with the byte offsets and the 0-based
// line number at which the content starts inside the full file. Plain .js
// and .ts files are treated as a single script section starting at offset 0.
package sfc

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrMalformed is returned when a section tag is opened but never closed.
// Files with malformed boundaries are left untouched by the caller.
var ErrMalformed = errors.New("malformed section boundaries")

// Section is one top-level region of a component file.
type Section struct {
	// Content is the raw section text, excluding the surrounding tags.
	Content string
	// Start and End are the byte offsets of Content within the full file.
	Start int
	End   int
	// StartLine is the 0-based line on which Content begins.
	StartLine int
	// StartCol is the 0-based column on that line at which Content begins;
	// nonzero when the opening tag shares its line with the content.
	StartCol int
}

// Document is a parsed component file. Script and Template are nil when the
// corresponding section is absent.
type Document struct {
	// Path is the source file path the document was read from.
	Path string
	// Source is the full original file text.
	Source string
	// Script is the script section, if present.
	Script *Section
	// Template is the markup section, if present (only for .vue files).
	Template *Section
	// ScriptSetup is true when the script tag carries the setup attribute.
	ScriptSetup bool
}

var (
	scriptOpenRe   = regexp.MustCompile(`<script([^>]*)>`)
	templateOpenRe = regexp.MustCompile(`<template([^>]*)>`)
)

const (
	scriptClose   = "</script>"
	templateClose = "</template>"
)

// scriptExtensions are the file extensions treated as script-only sources.
var scriptExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
}

// Parse splits source into sections. For script-only extensions the whole
// file is the script section; for .vue files both sections are located by
// their tags. A tag opened without its closing counterpart yields
// ErrMalformed.
func Parse(path, source string) (*Document, error) {
	doc := &Document{Path: path, Source: source}

	if scriptExtensions[filepath.Ext(path)] {
		doc.Script = &Section{Content: source, Start: 0, End: len(source), StartLine: 0}
		return doc, nil
	}

	script, setup, err := locateScript(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Script = script
	doc.ScriptSetup = setup

	template, err := locateTemplate(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Template = template

	if doc.Script == nil && doc.Template == nil {
		return nil, fmt.Errorf("%s: %w: no script or template section found", path, ErrMalformed)
	}

	return doc, nil
}

// locateScript finds the first <script> block. The closing tag is the first
// </script> after the opening tag; script content cannot itself contain one.
func locateScript(source string) (*Section, bool, error) {
	loc := scriptOpenRe.FindStringSubmatchIndex(source)
	if loc == nil {
		return nil, false, nil
	}
	attrs := source[loc[2]:loc[3]]
	start := loc[1]

	rel := strings.Index(source[start:], scriptClose)
	if rel < 0 {
		return nil, false, fmt.Errorf("%w: <script> has no closing tag", ErrMalformed)
	}
	end := start + rel

	setup := regexp.MustCompile(`(^|\s)setup(\s|=|$)`).MatchString(attrs)
	return newSection(source, start, end), setup, nil
}

// locateTemplate finds the top-level <template> block. Templates may nest
// further <template> tags, so the block ends at the LAST closing tag in the
// file, not the first.
func locateTemplate(source string) (*Section, error) {
	loc := templateOpenRe.FindStringIndex(source)
	if loc == nil {
		return nil, nil
	}
	start := loc[1]

	end := strings.LastIndex(source, templateClose)
	if end < start {
		return nil, fmt.Errorf("%w: <template> has no closing tag", ErrMalformed)
	}
	return newSection(source, start, end), nil
}

func newSection(source string, start, end int) *Section {
	lineStart := strings.LastIndexByte(source[:start], '\n') + 1
	return &Section{
		Content:   source[start:end],
		Start:     start,
		End:       end,
		StartLine: strings.Count(source[:start], "\n"),
		StartCol:  start - lineStart,
	}
}
