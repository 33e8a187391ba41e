// aix — automatic i18n source rewriter for Vue single-file components.
//
// Given a scanner-produced list of extracted-string records, aix rewrites
// the hard-coded text each record points at into a localization-library
// call, seeds the referenced lookup keys into the source-language message
// catalog, and leaves every other byte of the sources untouched.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sunweijieMJ/aix-sub005/catalog"
	"github.com/sunweijieMJ/aix-sub005/config"
	"github.com/sunweijieMJ/aix-sub005/i18n"
	"github.com/sunweijieMJ/aix-sub005/record"
	"github.com/sunweijieMJ/aix-sub005/transform"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var log zerolog.Logger

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aix",
		Short: "Automatic i18n source rewriter for Vue/JS components",
		Long: `aix — automatic i18n source rewriter.

Rewrites hard-coded UI text in .vue and .js sources into localization
calls, driven by the record list an upstream scanner produced. Matched
text becomes t('semantic.id')-style calls (syntax depends on the target
library and on where the text lives); the required import and hook
declaration are inserted once per file; referenced lookup keys are seeded
into the source-language catalog.

Commands:
  status      Show record statistics without modifying anything
  transform   Rewrite source files per the record list
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newTransformCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("aix failed")
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aix version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only record statistics)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var recordsFile string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show record statistics without modifying anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			path := resolveRecordsFile(recordsFile, cfg)
			if path == "" {
				return fmt.Errorf("no records file: pass --records or set records_file in %s", config.FileName)
			}
			recs, err := record.ParseFile(path)
			if err != nil {
				return err
			}
			printStatus(recs, cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&recordsFile, "records", "", "Scanner output JSON with extracted-string records")
	return cmd
}

func printStatus(recs []record.ExtractedString, cfg *config.Config) {
	paths, groups := record.GroupByFile(recs)

	fmt.Fprintf(os.Stderr, "\nRecords: %d in %d file(s), library: %s\n", len(recs), len(paths), cfg.Library)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	for _, p := range paths {
		byCtx := contextSummary(groups[p])
		var parts []string
		for _, ctx := range summaryOrder {
			if n := byCtx[ctx]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, ctx))
			}
		}
		fmt.Fprintf(os.Stderr, "  %-44s %s\n", p, strings.Join(parts, ", "))
	}
	fmt.Fprintln(os.Stderr)
}

// summaryOrder fixes the context column order in status output.
var summaryOrder = []string{"script", "text-node", "static-attribute", "interpolation", "dynamic-attribute"}

// contextSummary counts a file's records per syntactic context. Script
// records count under "script"; template records under their template
// context.
func contextSummary(recs []record.ExtractedString) map[string]int {
	out := make(map[string]int)
	for _, r := range recs {
		switch {
		case r.Context == record.ContextScript:
			out["script"]++
		case r.TemplateContext != "":
			out[string(r.TemplateContext)]++
		default:
			out["template"]++
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// transform
// ---------------------------------------------------------------------------

type transformArgs struct {
	recordsFile string
	libName     string
	namespace   string
	importPath  string
	write       bool
	noCatalog   bool
	watch       bool
}

func newTransformCmd() *cobra.Command {
	var a transformArgs

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Rewrite source files per the record list",
		Long: `Rewrite the sources referenced by the record list.

Without --write this is a dry run: files are transformed in memory and the
outcome is reported, but nothing is written back. With --watch the records
file is re-read and the transform re-run whenever it changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(a)
		},
	}

	cmd.Flags().StringVar(&a.recordsFile, "records", "", "Scanner output JSON with extracted-string records")
	cmd.Flags().StringVar(&a.libName, "library", "", "Target library: vue-i18n or i18next (default from config)")
	cmd.Flags().StringVar(&a.namespace, "namespace", "", "Lookup-key namespace (i18next)")
	cmd.Flags().StringVar(&a.importPath, "import-path", "", "Module the translation call is imported from")
	cmd.Flags().BoolVar(&a.write, "write", false, "Write rewritten files back to disk")
	cmd.Flags().BoolVar(&a.noCatalog, "no-catalog", false, "Skip seeding the source-language catalog")
	cmd.Flags().BoolVar(&a.watch, "watch", false, "Re-run whenever the records file changes")

	return cmd
}

func runTransform(a transformArgs) error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	if a.libName != "" {
		cfg.Library = a.libName
	}
	if a.namespace != "" {
		cfg.Namespace = a.namespace
	}
	if a.importPath != "" {
		cfg.CallImportPath = a.importPath
	}

	recordsPath := resolveRecordsFile(a.recordsFile, cfg)
	if recordsPath == "" {
		return fmt.Errorf("no records file: pass --records or set records_file in %s", config.FileName)
	}

	if err := runOnce(recordsPath, cfg, a); err != nil {
		return err
	}
	if !a.watch {
		return nil
	}
	return watchAndRerun(recordsPath, cfg, a)
}

func runOnce(recordsPath string, cfg *config.Config, a transformArgs) error {
	adapter, err := cfg.Adapter()
	if err != nil {
		return err
	}
	recs, err := record.ParseFile(recordsPath)
	if err != nil {
		return err
	}

	tcfg := transform.Config{
		Library: adapter,
		OnLog: func(format string, args ...any) {
			log.Warn().Msgf(format, args...)
		},
	}

	paths, groups := record.GroupByFile(recs)
	entries := make(map[string]string)
	changed, replaced, skipped := 0, 0, 0

	for _, p := range paths {
		srcPath := resolvePath(p)
		source, err := os.ReadFile(srcPath)
		if err != nil {
			log.Error().Err(err).Str("file", p).Msg("cannot read source file")
			continue
		}

		out, rep, err := transform.File(p, string(source), groups[p], tcfg)
		if err != nil {
			// Structural error: the file is left unmodified, the batch continues.
			log.Error().Err(err).Str("file", p).Msg("file not transformed")
			continue
		}

		replaced += rep.Replaced
		skipped += len(rep.Skipped)
		for _, rec := range appliedRecords(groups[p], rep) {
			entries[rec.SemanticID] = transform.CatalogMessage(rec, adapter)
		}

		if out == string(source) {
			continue
		}
		changed++
		if a.write {
			if err := os.WriteFile(srcPath, []byte(out), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", srcPath, err)
			}
			log.Info().Str("file", p).Int("replaced", rep.Replaced).Msg("rewritten")
		} else {
			log.Info().Str("file", p).Int("replaced", rep.Replaced).Msg("would rewrite")
		}
	}

	if a.write && !a.noCatalog && len(entries) > 0 {
		catalogPath := cfg.CatalogPath(rootDir)
		added, err := catalog.Seed(catalogPath, entries)
		if err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
		if added > 0 {
			log.Info().Str("catalog", catalogPath).Int("added", added).Msg("seeded lookup keys")
		}
	}

	summary := i18n.N("replaced %d string", "replaced %d strings", replaced, replaced)
	log.Info().Int("files", changed).Int("skipped", skipped).Msg(summary)
	switch {
	case changed == 0:
		log.Info().Msg(i18n.T("No files required changes"))
	case !a.write:
		log.Info().Msg(i18n.T("Dry run: no files were written"))
	default:
		log.Info().Msg(i18n.T("Transform complete!"))
	}
	return nil
}

// appliedRecords returns the records of one file that were actually
// replaced, i.e. not listed in the report's skipped set.
func appliedRecords(recs []record.ExtractedString, rep *transform.Report) []record.ExtractedString {
	skipped := make(map[string]bool, len(rep.Skipped))
	for _, s := range rep.Skipped {
		skipped[recKey(s.Record)] = true
	}
	var out []record.ExtractedString
	for _, r := range recs {
		if !skipped[recKey(r)] {
			out = append(out, r)
		}
	}
	return out
}

func recKey(r record.ExtractedString) string {
	return fmt.Sprintf("%d:%d:%s", r.Line, r.Column, r.Original)
}

// ---------------------------------------------------------------------------
// watch mode
// ---------------------------------------------------------------------------

// watchAndRerun re-runs the transform whenever the records file is written.
// Events are debounced because editors and scanners often emit several
// writes in quick succession.
func watchAndRerun(recordsPath string, cfg *config.Config, a transformArgs) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: scanners typically replace the file atomically,
	// which unregisters a direct file watch.
	if err := watcher.Add(filepath.Dir(recordsPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(recordsPath), err)
	}
	log.Info().Str("records", recordsPath).Msg("watching for changes (Ctrl-C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	var pending *time.Timer
	runs := make(chan struct{}, 1)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(recordsPath) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(200*time.Millisecond, func() {
				runs <- struct{}{}
			})

		case <-runs:
			if err := runOnce(recordsPath, cfg, a); err != nil {
				log.Error().Err(err).Msg("transform run failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")

		case <-sigCh:
			log.Info().Msg("stopping watch")
			return nil
		}
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func resolveRecordsFile(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return resolvePath(flagValue)
	}
	if cfg.RecordsFile != "" {
		return resolvePath(cfg.RecordsFile)
	}
	return ""
}

func resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(rootDir, p)
}
