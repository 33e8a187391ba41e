package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAndGet(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(`{"dialog": {"confirmButtonText": "Confirm"}, "flat": "value"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got, ok := f.Get("dialog.confirmButtonText"); !ok || got != "Confirm" {
		t.Errorf("Get(dialog.confirmButtonText) = %q, %v", got, ok)
	}
	if got, ok := f.Get("flat"); !ok || got != "value" {
		t.Errorf("Get(flat) = %q, %v", got, ok)
	}
	if _, ok := f.Get("dialog"); ok {
		t.Error("Get on an interior node reported a message")
	}
	if _, ok := f.Get("missing.key"); ok {
		t.Error("Get on an absent path reported a message")
	}
	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}
}

func TestParseRejectsBadJSON(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte(`[1, 2]`)); err == nil {
		t.Fatal("expected error for non-object catalog")
	}
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(`{"common": {"yes": "Oui"}}`))
	if err != nil {
		t.Fatal(err)
	}

	changed, err := f.Ensure("common.no", "No")
	if err != nil || !changed {
		t.Fatalf("Ensure new leaf: changed=%v err=%v", changed, err)
	}

	// Existing values are never clobbered.
	changed, err = f.Ensure("common.yes", "Yes")
	if err != nil || changed {
		t.Fatalf("Ensure existing leaf: changed=%v err=%v", changed, err)
	}
	if got, _ := f.Get("common.yes"); got != "Oui" {
		t.Errorf("existing translation overwritten: %q", got)
	}

	changed, err = f.Ensure("deeply.nested.path", "Deep")
	if err != nil || !changed {
		t.Fatalf("Ensure nested path: changed=%v err=%v", changed, err)
	}
	if got, ok := f.Get("deeply.nested.path"); !ok || got != "Deep" {
		t.Errorf("nested leaf = %q, %v", got, ok)
	}
}

func TestEnsureConflicts(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(`{"common": {"yes": "Yes"}}`))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.Ensure("common.yes.again", "x"); err == nil {
		t.Error("path through a string value should conflict")
	}
	if _, err := f.Ensure("common", "x"); err == nil {
		t.Error("leaf over an existing subtree should conflict")
	}
	if _, err := f.Ensure("", "x"); err == nil {
		t.Error("empty key should error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "en.json")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Path != path || f.Len() != 0 {
		t.Fatalf("unexpected empty catalog: %+v", f)
	}
}

func TestWriteFileDeterministic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locales", "en.json")
	f := &File{Path: path, root: map[string]any{
		"b": "2",
		"a": map[string]any{"z": "3", "y": "4"},
	}}
	if err := f.WriteFile(); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": {\n    \"y\": \"4\",\n    \"z\": \"3\"\n  },\n  \"b\": \"2\"\n}\n"
	if string(data) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", data, want)
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "en.json")
	if err := os.WriteFile(path, []byte(`{"common": {"yes": "Oui"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	added, err := Seed(path, map[string]string{
		"common.yes":               "Yes",
		"dialog.confirmButtonText": "Confirm",
		"greeting.hello":           "Hello",
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if added != 2 {
		t.Fatalf("added = %d, want 2", added)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Get("common.yes"); got != "Oui" {
		t.Errorf("Seed overwrote an existing message: %q", got)
	}
	if got, _ := f.Get("dialog.confirmButtonText"); got != "Confirm" {
		t.Errorf("seeded message = %q", got)
	}
}

func TestSeedNoChangesLeavesFileAlone(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "en.json")
	// Deliberately unusual formatting: untouched runs must not rewrite it.
	original := `{"greeting":{"hello":"Hello"}}`
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	added, err := Seed(path, map[string]string{"greeting.hello": "Hello"})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if added != 0 {
		t.Fatalf("added = %d, want 0", added)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Fatalf("file rewritten without changes: %q", data)
	}
}

func TestMarshalEmpty(t *testing.T) {
	t.Parallel()

	f, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := f.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Fatalf("empty catalog = %q", data)
	}
}
