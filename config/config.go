// Package config loads the optional .aixrc.yaml project configuration.
//
// When the file exists in the project root it selects the target
// localization library and where the seeded message catalogs live; every
// field has a sensible default so the file may be omitted entirely.
// Environment variables (AIX_*) override file values, and a .env file in
// the project root is honored for them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sunweijieMJ/aix-sub005/library"
)

// FileName is the project configuration file name.
const FileName = ".aixrc.yaml"

// Config holds the per-project transformer settings.
type Config struct {
	// Library is the target localization library: "vue-i18n" or "i18next".
	Library string `yaml:"library"`
	// CallImportPath overrides the module the translation call is
	// imported from, for projects that re-export a configured instance
	// (e.g. "@/locales").
	CallImportPath string `yaml:"call_import_path,omitempty"`
	// Namespace is the lookup-key namespace, for libraries that support
	// one.
	Namespace string `yaml:"namespace,omitempty"`
	// CatalogDir is the directory holding the JSON message catalogs,
	// relative to the project root.
	CatalogDir string `yaml:"catalog_dir"`
	// SourceLang is the source language code; the seeded catalog is
	// <catalog_dir>/<source_lang>.json.
	SourceLang string `yaml:"source_lang"`
	// RecordsFile is the default scanner output to read when the
	// --records flag is not given.
	RecordsFile string `yaml:"records_file,omitempty"`
}

// Default returns the configuration used when no .aixrc.yaml exists.
func Default() *Config {
	return &Config{
		Library:    "vue-i18n",
		CatalogDir: "src/locales",
		SourceLang: "en",
	}
}

// Load reads rootDir/.aixrc.yaml, falling back to defaults when the file is
// absent, then applies AIX_* environment overrides. A present but malformed
// file is an error.
func Load(rootDir string) (*Config, error) {
	// Optional .env in the project root; absence is not an error.
	_ = godotenv.Load(filepath.Join(rootDir, ".env"))

	cfg := Default()

	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Library == "" {
		cfg.Library = "vue-i18n"
	}
	if cfg.CatalogDir == "" {
		cfg.CatalogDir = "src/locales"
	}
	if cfg.SourceLang == "" {
		cfg.SourceLang = "en"
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"AIX_LIBRARY":          &cfg.Library,
		"AIX_CALL_IMPORT_PATH": &cfg.CallImportPath,
		"AIX_NAMESPACE":        &cfg.Namespace,
		"AIX_CATALOG_DIR":      &cfg.CatalogDir,
		"AIX_SOURCE_LANG":      &cfg.SourceLang,
		"AIX_RECORDS_FILE":     &cfg.RecordsFile,
	}
	for key, dst := range overrides {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

// Adapter resolves the configured library adapter.
func (c *Config) Adapter() (library.Adapter, error) {
	return library.Get(c.Library, library.Options{
		ImportPath: c.CallImportPath,
		Namespace:  c.Namespace,
	})
}

// CatalogPath returns the source-language catalog path under rootDir.
func (c *Config) CatalogPath(rootDir string) string {
	return filepath.Join(rootDir, c.CatalogDir, c.SourceLang+".json")
}
