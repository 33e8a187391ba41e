package transform

import (
	"regexp"
	"strings"

	"github.com/sunweijieMJ/aix-sub005/library"
	"github.com/sunweijieMJ/aix-sub005/record"
)

// maxLineDrift bounds the fallback search around a hinted line. Upstream
// processing can shift line numbers by a few lines; ±5 catches the drift
// seen in practice without matching unrelated occurrences far away.
const maxLineDrift = 5

// transformTemplate rewrites matched text in the markup section. The section
// has no tree representation, so matching is line-based: each record is
// resolved against the raw line its hint points at, falling back to nearby
// lines. Records are applied in descending (line, column) order so a
// replacement never shifts the position of one still pending. startCol is
// the column at which the section content begins on its first line.
func transformTemplate(src string, startLine, startCol int, recs []record.ExtractedString, lib library.Adapter, rep *Report) string {
	if len(recs) == 0 {
		return src
	}

	lines := strings.Split(src, "\n")

	// The key argument of an existing call is a previous run's output; text
	// matched inside one of these spans must never be rewritten again, or
	// a key whose last segment spells the original would break idempotence.
	// The leading boundary keeps fmt('...')-style calls unclaimed.
	claimRe := regexp.MustCompile(`(^|[^\w$.])` + regexp.QuoteMeta(lib.TemplateFunctionName()) + `\(\s*'[^']*'`)

	sorted := make([]record.ExtractedString, len(recs))
	copy(sorted, recs)
	record.SortDescending(sorted)

	for _, rec := range sorted {
		replacement := generateReplacement(rec, lib)
		if replaceInTemplate(lines, startLine, startCol, rec, replacement, claimRe) {
			rep.Replaced++
		} else {
			rep.skip(rec, "no template occurrence found near the hinted position")
		}
	}

	return strings.Join(lines, "\n")
}

// replaceInTemplate resolves one record against the template lines, trying
// the hinted line first (anchored at the hinted column) and then lines at
// increasing distance from it. Returns false when nothing matched.
func replaceInTemplate(lines []string, startLine, startCol int, rec record.ExtractedString, replacement string, claimRe *regexp.Regexp) bool {
	hinted := rec.Line - 1 - startLine

	if hinted >= 0 && hinted < len(lines) {
		col := rec.Column
		if hinted == 0 {
			// The section content starts right after the opening tag, but
			// column hints count from the start of the file line.
			col -= startCol
		}
		anchor := col - 1
		if anchor < 0 {
			anchor = 0
		}
		if out, ok := replaceOnLine(lines[hinted], rec, replacement, anchor, claimRe); ok {
			lines[hinted] = out
			return true
		}
	}

	// Nearest lines first, to tolerate upstream line-number drift.
	for dist := 1; dist <= maxLineDrift; dist++ {
		for _, idx := range []int{hinted - dist, hinted + dist} {
			if idx < 0 || idx >= len(lines) {
				continue
			}
			if out, ok := replaceOnLine(lines[idx], rec, replacement, 0, claimRe); ok {
				lines[idx] = out
				return true
			}
		}
	}
	return false
}

// replaceOnLine tries the ordered match rules against a single line,
// most specific first:
//
//  1. static-attribute conversion: the whole attribute token
//     name="original" becomes the dynamic-binding form (the replacement
//     text announces this with its leading ':' marker);
//  2. the original carries its own quotes: match it verbatim;
//  3. the original wrapped in each quote style, to catch text embedded in
//     a conditional or other expression;
//  4. the bare original, bounded so that a longer word containing it never
//     matches (Cancel must not claim CancelAll).
//
// Rules 2-4 skip occurrences inside a claimRe span: those bytes are the key
// of an already-generated call, not source text.
func replaceOnLine(line string, rec record.ExtractedString, replacement string, anchor int, claimRe *regexp.Regexp) (string, bool) {
	if strings.HasPrefix(replacement, ":") {
		return replaceStaticAttribute(line, rec, replacement)
	}

	claimed := claimRe.FindAllStringIndex(line, -1)

	if isQuoted(rec.Original) {
		if start := findOutsideClaims(line, rec.Original, anchor, claimed, false); start >= 0 {
			return spliceLine(line, start, len(rec.Original), replacement), true
		}
		return "", false
	}

	for _, quote := range []string{"'", `"`, "`"} {
		needle := quote + rec.Original + quote
		if start := findOutsideClaims(line, needle, anchor, claimed, false); start >= 0 {
			return spliceLine(line, start, len(needle), replacement), true
		}
	}

	if start := findOutsideClaims(line, rec.Original, anchor, claimed, true); start >= 0 {
		return spliceLine(line, start, len(rec.Original), replacement), true
	}
	return "", false
}

// replaceStaticAttribute rewrites name="original" into the binding form.
// The attribute name pattern allows hyphens (data-label, aria-label).
func replaceStaticAttribute(line string, rec record.ExtractedString, replacement string) (string, bool) {
	name := `[A-Za-z_][A-Za-z0-9_-]*`
	if rec.AttributeName != "" {
		name = regexp.QuoteMeta(rec.AttributeName)
	}
	attrRe := regexp.MustCompile(name + `\s*=\s*"` + regexp.QuoteMeta(stripQuotes(rec.Original)) + `"`)

	loc := attrRe.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return spliceLine(line, loc[0], loc[1]-loc[0], replacement), true
}

// indexFrom finds needle in line at or after the anchor column.
func indexFrom(line, needle string, anchor int) int {
	if anchor > len(line) {
		return -1
	}
	i := strings.Index(line[anchor:], needle)
	if i < 0 {
		return -1
	}
	return anchor + i
}

// findOutsideClaims finds needle in line at or after anchor, skipping
// occurrences that overlap a claimed span. When bounded is set it also
// requires word boundaries on both sides so a substring of a longer token
// never matches.
func findOutsideClaims(line, needle string, anchor int, claimed [][]int, bounded bool) int {
	if needle == "" {
		return -1
	}
	for from := anchor; from <= len(line); {
		i := indexFrom(line, needle, from)
		if i < 0 {
			return -1
		}
		if !insideClaim(i, i+len(needle), claimed) && (!bounded || boundedAt(line, i, len(needle))) {
			return i
		}
		from = i + 1
	}
	return -1
}

func insideClaim(start, end int, claimed [][]int) bool {
	for _, c := range claimed {
		if start < c[1] && c[0] < end {
			return true
		}
	}
	return false
}

func boundedAt(line string, start, length int) bool {
	if start > 0 && isWordByte(line[start-1]) {
		return false
	}
	end := start + length
	if end < len(line) && isWordByte(line[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= 0x80
}

func spliceLine(line string, start, length int, replacement string) string {
	return line[:start] + replacement + line[start+length:]
}
