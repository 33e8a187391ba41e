package transform

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/sunweijieMJ/aix-sub005/library"
	"github.com/sunweijieMJ/aix-sub005/record"
)

// literalNode is a string literal or a whole template literal with its byte
// span in the script text. These are the only nodes the rewriter may touch:
// localizable text always lives in a literal.
type literalNode struct {
	start int
	end   int
	text  string
}

// scanLiterals lexes the script and returns every string literal and every
// complete template literal (backtick to backtick, substitutions included)
// in source order. A lexer error other than EOF is a structural error for
// the file.
func scanLiterals(src string) ([]literalNode, error) {
	lexer := js.NewLexer(parse.NewInputString(src))

	var nodes []literalNode
	var templateStarts []int
	offset := 0

	for {
		tt, text := lexer.Next()
		if tt == js.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("lexing script: %w", err)
			}
			break
		}

		switch tt {
		case js.StringToken:
			nodes = append(nodes, literalNode{offset, offset + len(text), string(text)})
		case js.TemplateToken:
			// Template literal without substitutions.
			nodes = append(nodes, literalNode{offset, offset + len(text), string(text)})
		case js.TemplateStartToken:
			templateStarts = append(templateStarts, offset)
		case js.TemplateEndToken:
			if n := len(templateStarts); n > 0 {
				start := templateStarts[n-1]
				templateStarts = templateStarts[:n-1]
				end := offset + len(text)
				nodes = append(nodes, literalNode{start, end, src[start:end]})
			}
		}
		offset += len(text)
	}

	return nodes, nil
}

// lineColOffset converts a 0-based (line, column) position into a byte
// offset in text, clamping to the text bounds.
func lineColOffset(text string, line, col int) int {
	offset := 0
	for line > 0 {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return len(text)
		}
		offset += nl + 1
		line--
	}
	offset += col
	if offset > len(text) {
		return len(text)
	}
	return offset
}

// matchLiteral finds the smallest literal node whose text exactly equals
// want and whose start is at or after hint. Position hints can drift by one
// character, so one byte of slack is allowed before hint; the text equality
// check is the actual correctness guard — a node that does not render
// exactly as want is never replaced.
func matchLiteral(nodes []literalNode, want string, hint int) (literalNode, bool) {
	best := -1
	for i, n := range nodes {
		if n.text != want || n.start < hint-1 {
			continue
		}
		if best < 0 || n.start < nodes[best].start ||
			(n.start == nodes[best].start && n.end-n.start < nodes[best].end-nodes[best].start) {
			best = i
		}
	}
	if best < 0 {
		return literalNode{}, false
	}
	return nodes[best], true
}

// transformScript replaces matched literal nodes in the script section with
// generated call expressions. startLine is the 0-based line of the section
// within the whole file and startCol the column at which the content begins
// on that line. Records that match no node are skipped and reported; a
// lexer failure aborts the section.
func transformScript(src string, startLine, startCol int, recs []record.ExtractedString, lib library.Adapter, rep *Report) (string, error) {
	if len(recs) == 0 {
		return src, nil
	}

	nodes, err := scanLiterals(src)
	if err != nil {
		return "", err
	}

	// A literal that sits as the key argument of an existing call is a
	// previous run's output; replacing it again would nest calls when the
	// key spells the original text. The leading boundary keeps literals
	// inside fmt('...')-style calls eligible.
	claimRe := regexp.MustCompile(`(^|[^\w$.])` + regexp.QuoteMeta(lib.CallName()) + `\(\s*$`)
	candidates := make([]literalNode, 0, len(nodes))
	for _, n := range nodes {
		if claimRe.MatchString(src[:n.start]) {
			continue
		}
		candidates = append(candidates, n)
	}

	var intervals []Interval
	for _, rec := range recs {
		localLine := rec.Line - 1 - startLine
		if localLine < 0 {
			rep.skip(rec, "hinted line precedes the script section")
			continue
		}
		col := rec.Column
		if localLine == 0 {
			// Column hints count from the start of the file line, but the
			// content may begin right after the opening tag.
			col -= startCol
			if col < 0 {
				col = 0
			}
		}
		hint := lineColOffset(src, localLine, col)

		node, ok := matchLiteral(candidates, rec.Original, hint)
		if !ok {
			rep.skip(rec, "no script literal matches the original text")
			continue
		}

		iv := Interval{Start: node.start, End: node.end, Content: generateReplacement(rec, lib)}
		if overlapsAny(iv, intervals) {
			rep.skip(rec, "occurrence already claimed by another record")
			continue
		}
		intervals = append(intervals, iv)
		rep.Replaced++
	}

	return applyIntervals(src, intervals)
}

func overlapsAny(iv Interval, planned []Interval) bool {
	for _, p := range planned {
		if iv.overlaps(p) {
			return true
		}
	}
	return false
}
