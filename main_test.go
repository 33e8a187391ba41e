package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sunweijieMJ/aix-sub005/config"
	"github.com/sunweijieMJ/aix-sub005/record"
	"github.com/sunweijieMJ/aix-sub005/transform"
)

func TestContextSummary(t *testing.T) {
	t.Parallel()

	recs := []record.ExtractedString{
		{Context: record.ContextScript},
		{Context: record.ContextScript},
		{Context: record.ContextTemplate, TemplateContext: record.TemplateContextText},
		{Context: record.ContextTemplate, TemplateContext: record.TemplateContextStaticAttr},
		{Context: record.ContextTemplate},
	}

	got := contextSummary(recs)
	want := map[string]int{
		"script":           2,
		"text-node":        1,
		"static-attribute": 1,
		"template":         1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("contextSummary = %v, want %v", got, want)
	}
}

func TestAppliedRecords(t *testing.T) {
	t.Parallel()

	recs := []record.ExtractedString{
		{Line: 3, Column: 7, Original: "Hello", SemanticID: "greeting.hello"},
		{Line: 4, Column: 12, Original: "Confirm", SemanticID: "dialog.confirmButtonText"},
	}
	rep := &transform.Report{
		Replaced: 1,
		Skipped: []transform.SkippedRecord{
			{Record: recs[1], Reason: "no template occurrence found near the hinted position"},
		},
	}

	got := appliedRecords(recs, rep)
	if len(got) != 1 || got[0].SemanticID != "greeting.hello" {
		t.Fatalf("appliedRecords = %+v", got)
	}
}

func TestResolveRecordsFile(t *testing.T) {
	old := rootDir
	rootDir = "proj"
	defer func() { rootDir = old }()

	cfg := &config.Config{RecordsFile: "scan/output.json"}

	if got := resolveRecordsFile("explicit.json", cfg); got != filepath.Join("proj", "explicit.json") {
		t.Errorf("flag value: got %q", got)
	}
	if got := resolveRecordsFile("", cfg); got != filepath.Join("proj", "scan", "output.json") {
		t.Errorf("config value: got %q", got)
	}
	if got := resolveRecordsFile("", &config.Config{}); got != "" {
		t.Errorf("no source: got %q", got)
	}

	abs := filepath.Join(string(filepath.Separator), "tmp", "records.json")
	if got := resolveRecordsFile(abs, cfg); got != abs {
		t.Errorf("absolute path rewritten: %q", got)
	}
}

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	for _, name := range []string{"status", "transform", "version"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
