// Package library models the conventions of one target localization library
// as a strategy object, so the transformer stays library-agnostic.
//
// An Adapter describes how a library is imported, how its translation call
// is spelled in the script and template sections, whether the call must be
// locally bound via a hook declaration, and how to detect an import or
// declaration that already exists (the idempotency checks for repeated runs).
package library

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Adapter describes one target localization library. Adapters are stateless,
// selected once per run, and shared across all files.
type Adapter interface {
	// Name is the registry identifier, e.g. "vue-i18n".
	Name() string
	// PackageName is the module specifier the import statement pulls from.
	PackageName() string
	// CallName is the translation call usable in the script section,
	// e.g. "t" or "i18next.t".
	CallName() string
	// TemplateFunctionName is the call usable in the template section;
	// it may differ from CallName.
	TemplateFunctionName() string
	// HookName is the function that produces the local binding of the
	// translation call, or "" when the call is globally available.
	HookName() string
	// SupportsNamespace reports whether lookup keys may carry an
	// "ns:key" namespace prefix.
	SupportsNamespace() bool
	// Namespace is the configured namespace, or "".
	Namespace() string

	// IsLibraryImport reports whether an import of moduleName belongs to
	// this library.
	IsLibraryImport(moduleName string) bool
	// IsHookDeclaration reports whether a call expression of the given
	// name declares this library's local binding.
	IsHookDeclaration(callExpressionName string) bool

	// GenerateImportStatement returns the import line to insert,
	// including the trailing newline.
	GenerateImportStatement() string
	// GenerateHookDeclaration returns the local-binding declaration to
	// insert, or "" when none is needed.
	GenerateHookDeclaration() string

	// FormatPlaceholder renders an interpolation placeholder for the
	// library's message syntax, e.g. "{name}" or "{{name}}".
	FormatPlaceholder(key string) string

	// ImportCheckRegex matches a script that already imports the library.
	ImportCheckRegex() *regexp.Regexp
	// HookDeclarationCheckRegex matches a script that already declares
	// the local binding.
	HookDeclarationCheckRegex() *regexp.Regexp
	// ImportCleanupRegex matches the whole import line for removal.
	ImportCleanupRegex() *regexp.Regexp
	// HookDeclarationCleanupRegex matches the whole declaration line for
	// removal.
	HookDeclarationCleanupRegex() *regexp.Regexp
}

// Options carries the per-run settings an adapter may honor.
type Options struct {
	// ImportPath overrides the module specifier the call is imported
	// from, for libraries that delegate to a locally-configured instance
	// (e.g. "@/locales" instead of "i18next").
	ImportPath string
	// Namespace is the lookup-key namespace for libraries that support
	// one.
	Namespace string
}

type factory func(Options) Adapter

var registry = map[string]factory{
	"vue-i18n": func(o Options) Adapter { return newVueI18n(o) },
	"i18next":  func(o Options) Adapter { return newI18next(o) },
}

// Get returns the adapter registered under name.
func Get(name string, opts Options) (Adapter, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown localization library %q (supported: %s)",
			name, strings.Join(Names(), ", "))
	}
	return f(opts), nil
}

// Names returns the sorted list of registered adapter names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
