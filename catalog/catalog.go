// Package catalog seeds localization lookup keys into JSON message catalogs.
//
// After a transform run, every semantic ID referenced by a generated call
// must exist in the source-language catalog or the rewritten UI would render
// bare keys. The catalog format is the nested-object layout both vue-i18n
// and i18next load:
//
//	{
//	    "dialog": {
//	        "confirmButtonText": "Confirm"
//	    }
//	}
//
// Keys are '.'-separated paths. Seeding only ever adds missing leaves —
// existing values are someone's translations and are never clobbered.
// Managing the non-source languages is out of scope here.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is a loaded message catalog.
type File struct {
	// Path is where the catalog was loaded from and writes back to.
	Path string

	root map[string]any
}

// Load reads a catalog file. A missing file yields an empty catalog bound
// to the same path, so first runs need no setup step.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Path: path, root: make(map[string]any)}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes catalog JSON.
func Parse(data []byte) (*File, error) {
	root := make(map[string]any)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing catalog JSON: %w", err)
		}
	}
	return &File{root: root}, nil
}

// Get resolves a '.'-separated key path to its message, if present.
func (f *File) Get(key string) (string, bool) {
	node := f.root
	segs := strings.Split(key, ".")
	for i, seg := range segs {
		v, ok := node[seg]
		if !ok {
			return "", false
		}
		if i == len(segs)-1 {
			s, ok := v.(string)
			return s, ok
		}
		node, ok = v.(map[string]any)
		if !ok {
			return "", false
		}
	}
	return "", false
}

// Ensure adds message under the key path unless a value already exists
// there. It reports whether the catalog changed. A key path that runs
// through an existing non-object value is a conflict.
func (f *File) Ensure(key, message string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("empty catalog key")
	}

	node := f.root
	segs := strings.Split(key, ".")
	for _, seg := range segs[:len(segs)-1] {
		v, ok := node[seg]
		if !ok {
			child := make(map[string]any)
			node[seg] = child
			node = child
			continue
		}
		child, ok := v.(map[string]any)
		if !ok {
			return false, fmt.Errorf("catalog key %q conflicts with existing value at %q", key, seg)
		}
		node = child
	}

	leaf := segs[len(segs)-1]
	if v, ok := node[leaf]; ok {
		if _, isString := v.(string); !isString {
			return false, fmt.Errorf("catalog key %q conflicts with existing subtree", key)
		}
		return false, nil
	}
	node[leaf] = message
	return true, nil
}

// Len counts the message leaves in the catalog.
func (f *File) Len() int {
	return countLeaves(f.root)
}

func countLeaves(node map[string]any) int {
	n := 0
	for _, v := range node {
		if child, ok := v.(map[string]any); ok {
			n += countLeaves(child)
		} else {
			n++
		}
	}
	return n
}

// Marshal renders the catalog as indented JSON with a trailing newline.
// Map keys marshal in sorted order, so output is deterministic.
func (f *File) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(f.root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes the catalog back to its path, creating parent
// directories as needed.
func (f *File) WriteFile() error {
	data, err := f.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}

// Seed loads the catalog at path, ensures every entry exists, and writes it
// back when anything was added. Entries are applied in sorted key order so
// conflicts surface deterministically. Returns the number of keys added.
func Seed(path string, entries map[string]string) (int, error) {
	f, err := Load(path)
	if err != nil {
		return 0, err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	added := 0
	for _, k := range keys {
		ok, err := f.Ensure(k, entries[k])
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}

	if added > 0 {
		if err := f.WriteFile(); err != nil {
			return added, err
		}
	}
	return added, nil
}
