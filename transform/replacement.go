package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sunweijieMJ/aix-sub005/library"
	"github.com/sunweijieMJ/aix-sub005/record"
)

// literalExprRes match interpolated "variables" that are actually literals:
// numbers, booleans, null/undefined, and quoted strings. These carry no
// runtime value worth passing, so they never enter the placeholder map.
var literalExprRes = []*regexp.Regexp{
	regexp.MustCompile(`^-?\d+(\.\d+)?$`),
	regexp.MustCompile(`^(true|false|null|undefined)$`),
	regexp.MustCompile(`^'[^']*'$`),
	regexp.MustCompile(`^"[^"]*"$`),
	regexp.MustCompile("^`[^`]*`$"),
}

func isLiteralExpression(expr string) bool {
	expr = strings.TrimSpace(expr)
	for _, re := range literalExprRes {
		if re.MatchString(expr) {
			return true
		}
	}
	return false
}

// Placeholder maps one interpolated source expression to the synthetic key
// used inside the generated call's argument object.
type Placeholder struct {
	Key  string
	Expr string
}

var identTailRe = regexp.MustCompile(`([A-Za-z_$][A-Za-z0-9_$]*)\s*$`)

// placeholderKey derives a readable key from a source expression: the last
// identifier segment of a property path ("user.name" -> "name"), or "value"
// when the expression ends in something else (a call, an index, an operator).
func placeholderKey(expr string) string {
	expr = strings.TrimSpace(expr)
	if i := strings.LastIndex(expr, "."); i >= 0 {
		expr = expr[i+1:]
	}
	if m := identTailRe.FindStringSubmatch(expr); m != nil && m[1] == strings.TrimSpace(expr) {
		return m[1]
	}
	return "value"
}

// buildPlaceholders filters literal expressions out of vars and assigns each
// survivor a unique key, preserving order. An empty result means the record
// is effectively plain text.
func buildPlaceholders(vars []string) []Placeholder {
	var phs []Placeholder
	used := make(map[string]int)
	for _, v := range vars {
		v = strings.TrimSpace(v)
		if v == "" || isLiteralExpression(v) {
			continue
		}
		key := placeholderKey(v)
		used[key]++
		if n := used[key]; n > 1 {
			key = key + strconv.Itoa(n)
		}
		phs = append(phs, Placeholder{Key: key, Expr: v})
	}
	return phs
}

// callKey returns the localization lookup key for a record, prefixed with
// the adapter namespace when the call is evaluated in global scope (no
// scoped binding carries an implicit namespace there).
func callKey(rec record.ExtractedString, lib library.Adapter) string {
	key := rec.SemanticID
	if lib.SupportsNamespace() && lib.Namespace() != "" && lib.HookName() == "" {
		key = lib.Namespace() + ":" + key
	}
	return key
}

// buildCall renders callName('key') or callName('key', { k: expr, ... }).
func buildCall(callName, key string, phs []Placeholder) string {
	var b strings.Builder
	b.WriteString(callName)
	b.WriteString("('")
	b.WriteString(key)
	b.WriteString("'")
	if len(phs) > 0 {
		b.WriteString(", { ")
		for i, ph := range phs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ph.Key)
			b.WriteString(": ")
			b.WriteString(ph.Expr)
		}
		b.WriteString(" }")
	}
	b.WriteString(")")
	return b.String()
}

// generateReplacement turns one record into the literal replacement text.
// The surrounding syntax depends on where the text lives:
//
//	script section        -> t('key', {...})
//	template text node    -> {{ t('key') }}
//	interpolation         -> t('key')            (already in expression position)
//	dynamic attribute     -> t('key')            (already in expression position)
//	static attribute      -> :title="t('key')"   (attribute becomes a binding)
func generateReplacement(rec record.ExtractedString, lib library.Adapter) string {
	var phs []Placeholder
	if rec.IsTemplateString {
		phs = buildPlaceholders(rec.TemplateVariables)
	}
	key := callKey(rec, lib)

	if rec.Context == record.ContextScript {
		return buildCall(lib.CallName(), key, phs)
	}

	call := buildCall(lib.TemplateFunctionName(), key, phs)
	switch rec.TemplateContext {
	case record.TemplateContextText:
		return "{{ " + call + " }}"
	case record.TemplateContextStaticAttr:
		return ":" + rec.AttributeName + `="` + call + `"`
	case record.TemplateContextInterpolation, record.TemplateContextDynamicAttr:
		return call
	default:
		return call
	}
}

var interpRe = regexp.MustCompile(`\$\{([^}]*)\}`)

// CatalogMessage renders the message text to seed into the source-language
// catalog for a record: the original with quotes stripped and every ${expr}
// interpolation rewritten to the adapter's placeholder syntax, using the
// same keys the generated call passes.
func CatalogMessage(rec record.ExtractedString, lib library.Adapter) string {
	text := stripQuotes(rec.Original)
	if !rec.IsTemplateString {
		return text
	}

	phs := buildPlaceholders(rec.TemplateVariables)
	byExpr := make(map[string]string, len(phs))
	for _, ph := range phs {
		byExpr[ph.Expr] = ph.Key
	}
	return interpRe.ReplaceAllStringFunc(text, func(m string) string {
		expr := strings.TrimSpace(interpRe.FindStringSubmatch(m)[1])
		if key, ok := byExpr[expr]; ok {
			return lib.FormatPlaceholder(key)
		}
		if isLiteralExpression(expr) {
			return stripQuotes(expr)
		}
		return m
	})
}

// stripQuotes removes one matching pair of surrounding quote characters.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// isQuoted reports whether s carries its own matching quote characters.
func isQuoted(s string) bool {
	return len(s) >= 2 && stripQuotes(s) != s
}
