package transform

import (
	"strings"
	"testing"

	"github.com/sunweijieMJ/aix-sub005/library"
	"github.com/sunweijieMJ/aix-sub005/record"
)

const sampleScript = `import { ref } from 'vue';

const label = 'Cancel';
const all = 'CancelAll';
const plain = ` + "`no subs`" + `;
const greet = ` + "`Hello, ${user.name}`" + `;
`

func TestScanLiterals(t *testing.T) {
	t.Parallel()

	nodes, err := scanLiterals(sampleScript)
	if err != nil {
		t.Fatalf("scanLiterals: %v", err)
	}

	var texts []string
	for _, n := range nodes {
		if sampleScript[n.start:n.end] != n.text {
			t.Errorf("node span does not reproduce its text: %+v", n)
		}
		texts = append(texts, n.text)
	}

	want := []string{"'vue'", "'Cancel'", "'CancelAll'", "`no subs`", "`Hello, ${user.name}`"}
	if len(texts) != len(want) {
		t.Fatalf("literals = %q, want %q", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("literal %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestScanLiteralsNestedTemplate(t *testing.T) {
	t.Parallel()

	src := "const s = `outer ${fn(`inner`)} end`;"
	nodes, err := scanLiterals(src)
	if err != nil {
		t.Fatalf("scanLiterals: %v", err)
	}

	var full *literalNode
	for i, n := range nodes {
		if strings.HasPrefix(n.text, "`outer") {
			full = &nodes[i]
		}
	}
	if full == nil {
		t.Fatalf("full template literal not captured: %+v", nodes)
	}
	if !strings.HasSuffix(full.text, "end`") {
		t.Errorf("template span stops early: %q", full.text)
	}
}

func TestLineColOffset(t *testing.T) {
	t.Parallel()

	text := "ab\ncdef\ng"
	tests := []struct {
		line, col, want int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 3},
		{1, 3, 6},
		{2, 0, 8},
		{5, 0, len(text)},
		{1, 99, len(text)},
	}
	for _, tc := range tests {
		if got := lineColOffset(text, tc.line, tc.col); got != tc.want {
			t.Errorf("lineColOffset(%d, %d) = %d, want %d", tc.line, tc.col, got, tc.want)
		}
	}
}

func TestMatchLiteral(t *testing.T) {
	t.Parallel()

	nodes := []literalNode{
		{start: 10, end: 18, text: "'Cancel'"},
		{start: 30, end: 41, text: "'CancelAll'"},
		{start: 50, end: 58, text: "'Cancel'"},
	}

	// An exact hint picks the node at that position.
	if n, ok := matchLiteral(nodes, "'Cancel'", 10); !ok || n.start != 10 {
		t.Fatalf("hint 10: got %+v, %v", n, ok)
	}

	// One byte of slack before the hint is tolerated.
	if n, ok := matchLiteral(nodes, "'Cancel'", 11); !ok || n.start != 10 {
		t.Fatalf("hint 11: got %+v, %v", n, ok)
	}

	// Past the first occurrence, the second one wins.
	if n, ok := matchLiteral(nodes, "'Cancel'", 12); !ok || n.start != 50 {
		t.Fatalf("hint 12: got %+v, %v", n, ok)
	}

	// Text equality is strict: 'Cancel' never claims 'CancelAll'.
	if _, ok := matchLiteral(nodes, "'Missing'", 0); ok {
		t.Fatal("matched a literal that is not present")
	}
}

func scriptRecord(src, original, semanticID string) record.ExtractedString {
	idx := strings.Index(src, original)
	line := strings.Count(src[:idx], "\n")
	col := idx - strings.LastIndexByte(src[:idx], '\n') - 1
	return record.ExtractedString{
		Original:   original,
		Line:       line + 1,
		Column:     col,
		Context:    record.ContextScript,
		SemanticID: semanticID,
	}
}

func TestTransformScript(t *testing.T) {
	t.Parallel()

	lib := mustAdapter(t, "vue-i18n", library.Options{})
	rep := &Report{}

	recs := []record.ExtractedString{
		scriptRecord(sampleScript, "'Cancel'", "common.cancel"),
	}
	greet := scriptRecord(sampleScript, "`Hello, ${user.name}`", "greeting.withName")
	greet.IsTemplateString = true
	greet.TemplateVariables = []string{"user.name"}
	recs = append(recs, greet)

	out, err := transformScript(sampleScript, 0, 0, recs, lib, rep)
	if err != nil {
		t.Fatalf("transformScript: %v", err)
	}

	if rep.Replaced != 2 || len(rep.Skipped) != 0 {
		t.Fatalf("replaced %d, skipped %d", rep.Replaced, len(rep.Skipped))
	}
	if !strings.Contains(out, "const label = t('common.cancel');") {
		t.Errorf("string literal not rewritten:\n%s", out)
	}
	if !strings.Contains(out, "const greet = t('greeting.withName', { name: user.name });") {
		t.Errorf("template literal not rewritten:\n%s", out)
	}
	if !strings.Contains(out, "const all = 'CancelAll';") {
		t.Errorf("unrelated literal touched:\n%s", out)
	}
}

func TestTransformScriptSkipsUnmatched(t *testing.T) {
	t.Parallel()

	lib := mustAdapter(t, "vue-i18n", library.Options{})
	rep := &Report{}

	rec := record.ExtractedString{
		Original:   "'Submit'",
		Line:       3,
		Column:     14,
		Context:    record.ContextScript,
		SemanticID: "common.submit",
	}
	out, err := transformScript(sampleScript, 0, 0, []record.ExtractedString{rec}, lib, rep)
	if err != nil {
		t.Fatalf("transformScript: %v", err)
	}
	if out != sampleScript {
		t.Error("unmatched record modified the script")
	}
	if rep.Replaced != 0 || len(rep.Skipped) != 1 {
		t.Fatalf("replaced %d, skipped %d", rep.Replaced, len(rep.Skipped))
	}
	if rep.Skipped[0].Reason == "" {
		t.Error("skip has no reason")
	}
}

func TestTransformScriptDuplicateRecords(t *testing.T) {
	t.Parallel()

	lib := mustAdapter(t, "vue-i18n", library.Options{})
	rep := &Report{}

	rec := scriptRecord(sampleScript, "'Cancel'", "common.cancel")
	out, err := transformScript(sampleScript, 0, 0, []record.ExtractedString{rec, rec}, lib, rep)
	if err != nil {
		t.Fatalf("transformScript: %v", err)
	}
	if rep.Replaced != 1 || len(rep.Skipped) != 1 {
		t.Fatalf("replaced %d, skipped %d", rep.Replaced, len(rep.Skipped))
	}
	if strings.Count(out, "t('common.cancel')") != 1 {
		t.Errorf("occurrence claimed twice:\n%s", out)
	}
}

func TestTransformScriptSectionOffset(t *testing.T) {
	t.Parallel()

	lib := mustAdapter(t, "vue-i18n", library.Options{})
	rep := &Report{}

	// The section starts at file line 10 (0-based); record lines are
	// file-relative and 1-based.
	src := "const msg = 'Hi';\n"
	rec := record.ExtractedString{
		Original:   "'Hi'",
		Line:       11,
		Column:     12,
		Context:    record.ContextScript,
		SemanticID: "greeting.hi",
	}
	out, err := transformScript(src, 10, 0, []record.ExtractedString{rec}, lib, rep)
	if err != nil {
		t.Fatalf("transformScript: %v", err)
	}
	if out != "const msg = t('greeting.hi');\n" {
		t.Errorf("got %q", out)
	}
}

func TestTransformScriptSkipsGeneratedCalls(t *testing.T) {
	t.Parallel()

	lib := mustAdapter(t, "vue-i18n", library.Options{})
	rep := &Report{}

	// The literal is already the key argument of a call and its text is
	// spelled exactly like the key; it must never be rewritten again.
	src := "const label = t('OK');\n"
	rec := record.ExtractedString{
		Original:   "'OK'",
		Line:       1,
		Column:     16,
		Context:    record.ContextScript,
		SemanticID: "OK",
	}
	out, err := transformScript(src, 0, 0, []record.ExtractedString{rec}, lib, rep)
	if err != nil {
		t.Fatalf("transformScript: %v", err)
	}
	if out != src {
		t.Fatalf("generated call rewritten: %q", out)
	}
	if rep.Replaced != 0 || len(rep.Skipped) != 1 {
		t.Fatalf("replaced %d, skipped %d", rep.Replaced, len(rep.Skipped))
	}

	// A literal inside an unrelated call stays eligible.
	rep = &Report{}
	src = "const label = fmt('OK');\n"
	rec.Column = 18
	out, err = transformScript(src, 0, 0, []record.ExtractedString{rec}, lib, rep)
	if err != nil {
		t.Fatalf("transformScript: %v", err)
	}
	if out != "const label = fmt(t('OK'));\n" {
		t.Fatalf("unrelated call argument not rewritten: %q", out)
	}
}

func TestTransformScriptIdempotentWhenKeySpellsOriginal(t *testing.T) {
	t.Parallel()

	lib := mustAdapter(t, "vue-i18n", library.Options{})

	src := "const label = 'OK';\n"
	rec := record.ExtractedString{
		Original:   "'OK'",
		Line:       1,
		Column:     14,
		Context:    record.ContextScript,
		SemanticID: "OK",
	}

	rep1 := &Report{}
	once, err := transformScript(src, 0, 0, []record.ExtractedString{rec}, lib, rep1)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if once != "const label = t('OK');\n" {
		t.Fatalf("first pass: got %q", once)
	}

	rep2 := &Report{}
	twice, err := transformScript(once, 0, 0, []record.ExtractedString{rec}, lib, rep2)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if twice != once {
		t.Fatalf("second pass changed the output: %q", twice)
	}
	if rep2.Replaced != 0 || len(rep2.Skipped) != 1 {
		t.Fatalf("second pass replaced %d, skipped %d", rep2.Replaced, len(rep2.Skipped))
	}
}

func TestTransformScriptFirstLineColumnOffset(t *testing.T) {
	t.Parallel()

	lib := mustAdapter(t, "vue-i18n", library.Options{})
	rep := &Report{}

	// The section content begins right after the opening tag, so the
	// column hint counts the tag width (len("<script>") == 8).
	src := "const m = 'Hi';"
	rec := record.ExtractedString{
		Original:   "'Hi'",
		Line:       1,
		Column:     18,
		Context:    record.ContextScript,
		SemanticID: "greeting.hi",
	}
	out, err := transformScript(src, 0, 8, []record.ExtractedString{rec}, lib, rep)
	if err != nil {
		t.Fatalf("transformScript: %v", err)
	}
	if out != "const m = t('greeting.hi');" {
		t.Fatalf("got %q", out)
	}
}
