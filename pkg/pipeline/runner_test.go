package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/graphtools/graphmark/pkg/config"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	cfg := config.Default()
	cfg.Output = filepath.Join(t.TempDir(), "out")
	return New(cfg, log.New(io.Discard))
}

func feed(r *Runner, source, text string) {
	ctx := context.Background()
	r.ProcessReader(ctx, strings.NewReader(text), source)
}

func TestRunEndToEnd(t *testing.T) {
	r := newTestRunner(t)

	feed(r, "sample.c", `
int main(void) { return 0; }
/* @@graph {'command':'definition', 'graphtype':'code', 'graphid':'g1',
            'title':'Sample', 'description':'demo', 'filenamesuffix':'_sample'} */
// @@graph {'graphid':'g1', 'datatype':'node', 'nodename':'main', 'nodetype':'function'}
# @@graph {'graphid':'g1', 'datatype':'node', 'nodename':'helper', 'nodetype':'function'}
// @@graph {'graphid':'g1', 'datatype':'edge', 'fromnodename':'main', 'tonodename':'helper', 'label':'calls'}
`)

	report := r.Finish()

	if report.Counters.Errors != 0 {
		t.Fatalf("errors = %d, want 0", report.Counters.Errors)
	}
	if report.Counters.Tags != 4 {
		t.Errorf("tags = %d, want 4", report.Counters.Tags)
	}
	if len(report.Artifacts) != 1 {
		t.Fatalf("artifacts = %v, want one", report.Artifacts)
	}
	if !strings.HasSuffix(report.Artifacts[0], "_sample_graphviz.txt") {
		t.Errorf("artifact name = %q", report.Artifacts[0])
	}

	data, err := os.ReadFile(report.Artifacts[0])
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	out := string(data)
	if got := strings.Count(out, "label=\"function:"); got != 2 {
		t.Errorf("node statements = %d, want 2\n%s", got, out)
	}
	if !strings.Contains(out, `n01 -> n02 [label="calls"];`) {
		t.Errorf("edge statement missing:\n%s", out)
	}
}

func TestRunAnnotationSpansFiles(t *testing.T) {
	// A block comment and its annotation left open at the end of one source
	// continue into the next.
	r := newTestRunner(t)

	feed(r, "a.c", `/* @@graph {'command':'definition', 'graphtype':'workflow',`)
	if r.Counters().Tags != 0 {
		t.Fatal("annotation completed too early")
	}
	feed(r, "b.c", `'graphid':'w1', 'title':'W', 'description':'d', 'filenamesuffix':'_w1'} */`)

	report := r.Finish()
	if report.Counters.Errors != 0 {
		t.Fatalf("errors = %d, want 0", report.Counters.Errors)
	}
	if report.Counters.Tags != 1 {
		t.Errorf("tags = %d, want 1", report.Counters.Tags)
	}
	if len(report.Artifacts) != 1 {
		t.Errorf("artifacts = %v, want one", report.Artifacts)
	}
	if report.Counters.Files != 2 {
		t.Errorf("files = %d, want 2", report.Counters.Files)
	}
}

func TestRunDanglingAnnotationDropped(t *testing.T) {
	// An annotation still open at end of all input is silently discarded.
	r := newTestRunner(t)
	feed(r, "a.c", `/* @@graph {'command':'definition', 'graphtype':'code',`)

	report := r.Finish()
	if report.Counters.Tags != 0 {
		t.Errorf("tags = %d, want 0", report.Counters.Tags)
	}
	if report.Counters.Errors != 0 {
		t.Errorf("errors = %d, want 0", report.Counters.Errors)
	}
	if len(report.Artifacts) != 0 {
		t.Errorf("artifacts = %v, want none", report.Artifacts)
	}
}

func TestRunErrorsAreCountedNotFatal(t *testing.T) {
	r := newTestRunner(t)

	feed(r, "a.c", `
// @@graph {'graphid':'nope', 'datatype':'node', 'nodename':'x', 'nodetype':'function'}
// @@graph {'graphid':'g1', 'datatype':'node', 'nodename':'x', 'nodetype':'alien'}
// @@graph {'command':'definition', 'graphtype':'code', 'graphid':'g1', 'title':'T', 'description':'d', 'filenamesuffix':'_g1'}
// @@graph {'graphid':'g1', 'datatype':'node', 'nodename':'x', 'nodetype':'function'}
`)

	report := r.Finish()
	// Undefined graph reference plus unknown nodetype.
	if report.Counters.Errors != 2 {
		t.Errorf("errors = %d, want 2", report.Counters.Errors)
	}
	// The valid definition and node still land.
	g, err := r.Registry().Get("g1")
	if err != nil {
		t.Fatalf("graph g1 missing: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("nodes = %d, want 1", g.NodeCount())
	}
	if len(report.Artifacts) != 1 {
		t.Errorf("artifacts = %v, want one", report.Artifacts)
	}
}

func TestRunRedefinitionWarns(t *testing.T) {
	r := newTestRunner(t)

	feed(r, "a.c", `
// @@graph {'command':'definition', 'graphtype':'code', 'graphid':'g1', 'title':'One', 'description':'d', 'filenamesuffix':'_one'}
// @@graph {'graphid':'g1', 'datatype':'node', 'nodename':'x', 'nodetype':'function'}
// @@graph {'command':'definition', 'graphtype':'code', 'graphid':'g1', 'title':'Two', 'description':'d', 'filenamesuffix':'_two'}
`)

	report := r.Finish()
	if report.Counters.Warnings != 1 {
		t.Errorf("warnings = %d, want 1", report.Counters.Warnings)
	}
	g, _ := r.Registry().Get("g1")
	if g.Title != "Two" || g.NodeCount() != 0 {
		t.Errorf("redefinition did not replace graph: title=%q nodes=%d", g.Title, g.NodeCount())
	}
	if len(report.Artifacts) != 1 || !strings.HasSuffix(report.Artifacts[0], "_two_graphviz.txt") {
		t.Errorf("artifacts = %v", report.Artifacts)
	}
}

func TestRunUnresolvedEndpointCounted(t *testing.T) {
	r := newTestRunner(t)
	feed(r, "a.c", `
// @@graph {'command':'definition', 'graphtype':'code', 'graphid':'g1', 'title':'T', 'description':'d', 'filenamesuffix':'_g1'}
// @@graph {'graphid':'g1', 'datatype':'node', 'nodename':'a', 'nodetype':'function'}
// @@graph {'graphid':'g1', 'datatype':'edge', 'fromnodename':'a', 'tonodename':'ghost'}
`)

	report := r.Finish()
	if report.Counters.Errors != 1 {
		t.Errorf("errors = %d, want 1", report.Counters.Errors)
	}
	// Artifact still written, without the unresolved edge.
	if len(report.Artifacts) != 1 {
		t.Fatalf("artifacts = %v", report.Artifacts)
	}
	data, _ := os.ReadFile(report.Artifacts[0])
	if strings.Contains(string(data), "->") {
		t.Errorf("unresolved edge emitted:\n%s", data)
	}
}

func TestProcessFileMissing(t *testing.T) {
	r := newTestRunner(t)
	r.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.c"))
	if r.Counters().Errors != 1 {
		t.Errorf("errors = %d, want 1", r.Counters().Errors)
	}
}

func TestProcessPatterns(t *testing.T) {
	dir := t.TempDir()
	content := "// @@graph {'command':'definition', 'graphtype':'code', 'graphid':'g1', 'title':'T', 'description':'d', 'filenamesuffix':'_g1'}\n"
	if err := os.WriteFile(filepath.Join(dir, "a.c"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.go"), []byte("package b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestRunner(t)
	r.ProcessPatterns(context.Background(), []string{
		filepath.Join(dir, "**", "*.c"),
		filepath.Join(dir, "*.go"),
		filepath.Join(dir, "*.rs"), // matches nothing
	})

	c := r.Counters()
	if c.Files != 2 {
		t.Errorf("files = %d, want 2", c.Files)
	}
	if c.Errors != 1 {
		t.Errorf("errors = %d, want 1 (empty pattern)", c.Errors)
	}
	if r.Registry().Len() != 1 {
		t.Errorf("graphs = %d, want 1", r.Registry().Len())
	}
}

func TestRunDeterministicOutput(t *testing.T) {
	input := `
/* @@graph {'command':'definition', 'graphtype':'code', 'graphid':'g1', 'title':'T', 'description':'d', 'filenamesuffix':'_g1'} */
// @@graph {'graphid':'g1', 'datatype':'node', 'nodename':'a', 'nodetype':'class', 'group':'grp'}
// @@graph {'graphid':'g1', 'datatype':'node', 'nodename':'b', 'nodetype':'class', 'group':'grp'}
// @@graph {'graphid':'g1', 'datatype':'edge', 'fromnodename':'a', 'tonodename':'b'}
`

	run := func() []byte {
		r := newTestRunner(t)
		feed(r, "x.c", input)
		report := r.Finish()
		if len(report.Artifacts) != 1 {
			t.Fatalf("artifacts = %v", report.Artifacts)
		}
		data, err := os.ReadFile(report.Artifacts[0])
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	if string(run()) != string(run()) {
		t.Error("two identical runs produced different artifacts")
	}
}
