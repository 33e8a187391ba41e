package library

import "regexp"

// vueI18n targets the vue-i18n composition API: the translation call is a
// local binding produced by the useI18n() hook, both in the script section
// and (via the same binding) in the template section.
type vueI18n struct {
	importPath string
}

func newVueI18n(o Options) *vueI18n {
	path := o.ImportPath
	if path == "" {
		path = "vue-i18n"
	}
	return &vueI18n{importPath: path}
}

func (v *vueI18n) Name() string                 { return "vue-i18n" }
func (v *vueI18n) PackageName() string          { return v.importPath }
func (v *vueI18n) CallName() string             { return "t" }
func (v *vueI18n) TemplateFunctionName() string { return "t" }
func (v *vueI18n) HookName() string             { return "useI18n" }
func (v *vueI18n) SupportsNamespace() bool      { return false }
func (v *vueI18n) Namespace() string            { return "" }

func (v *vueI18n) IsLibraryImport(moduleName string) bool {
	return moduleName == v.importPath
}

func (v *vueI18n) IsHookDeclaration(callExpressionName string) bool {
	return callExpressionName == "useI18n"
}

func (v *vueI18n) GenerateImportStatement() string {
	return "import { useI18n } from '" + v.importPath + "';\n"
}

func (v *vueI18n) GenerateHookDeclaration() string {
	return "const { t } = useI18n();\n"
}

func (v *vueI18n) FormatPlaceholder(key string) string {
	return "{" + key + "}"
}

func (v *vueI18n) ImportCheckRegex() *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*import\s+[^;\n]*\buseI18n\b[^;\n]*from\s*['"]` +
		regexp.QuoteMeta(v.importPath) + `['"]`)
}

func (v *vueI18n) HookDeclarationCheckRegex() *regexp.Regexp {
	return regexp.MustCompile(`const\s*\{[^}]*\bt\b[^}]*\}\s*=\s*useI18n\s*\(`)
}

func (v *vueI18n) ImportCleanupRegex() *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*import\s*\{\s*useI18n\s*\}\s*from\s*['"]` +
		regexp.QuoteMeta(v.importPath) + `['"];?\r?\n?`)
}

func (v *vueI18n) HookDeclarationCleanupRegex() *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*const\s*\{\s*t\s*\}\s*=\s*useI18n\s*\(\s*\)\s*;?\r?\n?`)
}
