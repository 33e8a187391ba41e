package transform

import (
	"regexp"
	"strings"

	"github.com/sunweijieMJ/aix-sub005/library"
)

var importLineRe = regexp.MustCompile(`(?m)^\s*import\b[^\n]*$`)

// ensureImport inserts the adapter's import statement exactly once. The
// adapter's own check regex decides whether the library is already imported,
// which is what keeps repeated runs from stacking imports.
func ensureImport(script string, lib library.Adapter) string {
	if lib.ImportCheckRegex().MatchString(script) {
		return script
	}
	return insertAfterImports(script, lib.GenerateImportStatement())
}

// ensureHookDeclaration inserts the local binding of the translation call
// for adapters that need one (hook convention). The declaration is only
// added when the transformed script contains a bare, unqualified call to
// the call name — or when templateUsesBinding says the template section now
// relies on it — and never twice.
func ensureHookDeclaration(script string, lib library.Adapter, scriptSetup, templateUsesBinding bool) string {
	if lib.HookName() == "" || lib.GenerateHookDeclaration() == "" {
		return script
	}
	if lib.HookDeclarationCheckRegex().MatchString(script) {
		return script
	}
	if !templateUsesBinding && !hasBareCall(script, lib.CallName()) {
		return script
	}

	decl := lib.GenerateHookDeclaration()

	// <script setup> bodies are plain statement scope: the binding goes
	// right under the imports. Declaration-style components need it inside
	// their setup() body instead.
	if !scriptSetup {
		if out, ok := insertIntoSetup(script, decl); ok {
			return out
		}
	}
	return insertAfterImports(script, decl)
}

// hasBareCall reports whether script invokes callName without a qualifying
// scope prefix (no leading '.', '$', or identifier character). Qualified
// calls like i18next.t(...) or this.$t(...) resolve through their own scope
// and need no local binding.
func hasBareCall(script, callName string) bool {
	if strings.ContainsAny(callName, ".$") {
		return false
	}
	re := regexp.MustCompile(`(^|[^\w$.])` + regexp.QuoteMeta(callName) + `\s*\(`)
	return re.MatchString(script)
}

// insertAfterImports places stmt on its own line after the last top-level
// import, or at the top of the script when there are none.
func insertAfterImports(script, stmt string) string {
	locs := importLineRe.FindAllStringIndex(script, -1)
	if len(locs) == 0 {
		if !strings.HasSuffix(stmt, "\n") {
			stmt += "\n"
		}
		return stmt + script
	}

	last := locs[len(locs)-1]
	insertAt := last[1]
	if insertAt < len(script) && script[insertAt] == '\n' {
		insertAt++
	}
	if !strings.HasSuffix(stmt, "\n") {
		stmt += "\n"
	}
	return script[:insertAt] + stmt + script[insertAt:]
}

var setupOpenRe = regexp.MustCompile(`\bsetup\s*\([^)]*\)\s*\{`)

// insertIntoSetup places decl as the first statement of a declaration-style
// component's setup() body, indented to match the body.
func insertIntoSetup(script, decl string) (string, bool) {
	loc := setupOpenRe.FindStringIndex(script)
	if loc == nil {
		return "", false
	}
	insertAt := loc[1]
	if insertAt < len(script) && script[insertAt] == '\n' {
		insertAt++
	}

	indent := bodyIndent(script, loc[0])
	decl = strings.TrimRight(decl, "\n")
	return script[:insertAt] + indent + decl + "\n" + script[insertAt:], true
}

// bodyIndent guesses the indentation of a block body from the indentation
// of the line that opens it, plus one level.
func bodyIndent(script string, at int) string {
	lineStart := strings.LastIndexByte(script[:at], '\n') + 1
	line := script[lineStart:]
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if strings.HasPrefix(line[:i], "\t") {
		return line[:i] + "\t"
	}
	return line[:i] + "  "
}
