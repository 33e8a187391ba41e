// Package transform rewrites hard-coded UI text in component sources into
// localization-library calls, leaving every other byte of the file intact.
//
// The transformer consumes extracted-string records produced by an upstream
// scanner. Each record carries only approximate position hints, so every
// replacement is verified against the exact original text before it is
// applied; records that cannot be verified are skipped and reported, never
// guessed at. Skipping already-rewritten occurrences is also what makes the
// transform idempotent: running it twice over the same input produces
// byte-identical output.
//
// The core is purely functional over in-memory strings. It performs no I/O;
// the driver reads the file before and writes it after.
package transform

import (
	"fmt"

	"github.com/sunweijieMJ/aix-sub005/library"
	"github.com/sunweijieMJ/aix-sub005/record"
	"github.com/sunweijieMJ/aix-sub005/sfc"
)

// Config carries the per-run settings shared by all files.
type Config struct {
	// Library is the target localization library adapter.
	Library library.Adapter
	// OnLog, when set, receives non-fatal diagnostics (skipped records).
	OnLog func(format string, args ...any)
}

// SkippedRecord is a record that could not be applied, with the reason.
type SkippedRecord struct {
	Record record.ExtractedString
	Reason string
}

// Report summarizes one file's transform.
type Report struct {
	// Replaced counts applied replacements across both sections.
	Replaced int
	// Skipped lists the records that matched nothing.
	Skipped []SkippedRecord
	// Notes lists per-file diagnostics that are not tied to one record.
	Notes []string

	onLog func(format string, args ...any)
}

func (r *Report) skip(rec record.ExtractedString, reason string) {
	r.Skipped = append(r.Skipped, SkippedRecord{Record: rec, Reason: reason})
	if r.onLog != nil {
		r.onLog("skipping %s:%d:%d %q: %s", rec.FilePath, rec.Line, rec.Column, rec.Original, reason)
	}
}

func (r *Report) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
	if r.onLog != nil {
		r.onLog(format, args...)
	}
}

// File rewrites one component file and returns the full new text. Records
// not belonging to path are ignored. A structural failure (malformed section
// boundaries, unlexable script) returns an error and the file must be left
// unmodified by the caller; unmatched records are reported in the Report
// and do not fail the file.
func File(path, source string, recs []record.ExtractedString, cfg Config) (string, *Report, error) {
	if cfg.Library == nil {
		return "", nil, fmt.Errorf("%s: no library adapter configured", path)
	}

	recs = record.ForFile(recs, path)
	rep := &Report{onLog: cfg.OnLog}

	doc, err := sfc.Parse(path, source)
	if err != nil {
		return "", nil, err
	}

	var scriptRecs, templateRecs []record.ExtractedString
	for _, r := range recs {
		if r.Context == record.ContextTemplate {
			templateRecs = append(templateRecs, r)
		} else {
			scriptRecs = append(scriptRecs, r)
		}
	}

	// The two sections are disjoint texts; transform each independently.
	scriptOut := ""
	if doc.Script != nil {
		scriptOut, err = transformScript(doc.Script.Content, doc.Script.StartLine, doc.Script.StartCol, scriptRecs, cfg.Library, rep)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		for _, r := range scriptRecs {
			rep.skip(r, "file has no script section")
		}
	}

	templateReplaced := 0
	templateOut := ""
	if doc.Template != nil {
		before := rep.Replaced
		templateOut = transformTemplate(doc.Template.Content, doc.Template.StartLine, doc.Template.StartCol, templateRecs, cfg.Library, rep)
		templateReplaced = rep.Replaced - before
	} else {
		for _, r := range templateRecs {
			rep.skip(r, "file has no template section")
		}
	}

	// Supporting declarations are only ensured when something was actually
	// rewritten; an untouched file stays untouched.
	if rep.Replaced > 0 && doc.Script != nil {
		scriptOut = ensureImport(scriptOut, cfg.Library)
		templateUsesBinding := templateReplaced > 0 &&
			cfg.Library.TemplateFunctionName() == cfg.Library.CallName()
		scriptOut = ensureHookDeclaration(scriptOut, cfg.Library, doc.ScriptSetup, templateUsesBinding)
	}
	if templateReplaced > 0 && doc.Script == nil {
		rep.note("%s: template now calls %s() but the file has no script section to hold the supporting import", path, cfg.Library.TemplateFunctionName())
	}

	out, err := mergeSections(doc, scriptOut, templateOut)
	if err != nil {
		return "", nil, err
	}
	return out, rep, nil
}

// mergeSections splices the rewritten section texts back into the original
// source, back-to-front by section offset so the earlier splice cannot
// shift the later section's range.
func mergeSections(doc *sfc.Document, scriptOut, templateOut string) (string, error) {
	var patches []Interval
	if doc.Script != nil {
		patches = append(patches, Interval{Start: doc.Script.Start, End: doc.Script.End, Content: scriptOut})
	}
	if doc.Template != nil {
		patches = append(patches, Interval{Start: doc.Template.Start, End: doc.Template.End, Content: templateOut})
	}

	out, err := applyIntervals(doc.Source, patches)
	if err != nil {
		return "", fmt.Errorf("%s: merging sections: %w", doc.Path, err)
	}
	return out, nil
}
