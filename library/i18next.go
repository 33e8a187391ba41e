package library

import "regexp"

// i18next targets the plain i18next API: the translation call is reached
// through the imported module object (i18next.t) and is therefore available
// in any scope without a local binding. Because no scoped binding carries an
// implicit namespace, lookup keys are namespace-prefixed when a namespace is
// configured. Template-section calls go through the $t helper the host app
// installs globally.
type i18next struct {
	importPath string
	namespace  string
}

func newI18next(o Options) *i18next {
	path := o.ImportPath
	if path == "" {
		path = "i18next"
	}
	return &i18next{importPath: path, namespace: o.Namespace}
}

func (a *i18next) Name() string                 { return "i18next" }
func (a *i18next) PackageName() string          { return a.importPath }
func (a *i18next) CallName() string             { return "i18next.t" }
func (a *i18next) TemplateFunctionName() string { return "$t" }
func (a *i18next) HookName() string             { return "" }
func (a *i18next) SupportsNamespace() bool      { return true }
func (a *i18next) Namespace() string            { return a.namespace }

func (a *i18next) IsLibraryImport(moduleName string) bool {
	return moduleName == a.importPath
}

func (a *i18next) IsHookDeclaration(string) bool { return false }

func (a *i18next) GenerateImportStatement() string {
	return "import i18next from '" + a.importPath + "';\n"
}

func (a *i18next) GenerateHookDeclaration() string { return "" }

func (a *i18next) FormatPlaceholder(key string) string {
	return "{{" + key + "}}"
}

func (a *i18next) ImportCheckRegex() *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*import\s+i18next\b[^;\n]*from\s*['"]` +
		regexp.QuoteMeta(a.importPath) + `['"]`)
}

// HookDeclarationCheckRegex never matches: i18next needs no local binding.
func (a *i18next) HookDeclarationCheckRegex() *regexp.Regexp {
	return neverMatch
}

func (a *i18next) ImportCleanupRegex() *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*import\s+i18next\s+from\s*['"]` +
		regexp.QuoteMeta(a.importPath) + `['"];?\r?\n?`)
}

func (a *i18next) HookDeclarationCleanupRegex() *regexp.Regexp {
	return neverMatch
}

// neverMatch cannot match any input: "a" cannot precede start-of-text.
var neverMatch = regexp.MustCompile(`a\A`)
