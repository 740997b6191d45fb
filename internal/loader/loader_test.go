package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/ember/internal/classrt"
	"github.com/cwbudde/ember/internal/heap"
	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

func newTestRegistry(t *testing.T) (*Registry, *classrt.Builtins) {
	t.Helper()
	h := heap.New()
	b := classrt.NewBuiltins(h)
	return New(b), b
}

func TestLoadBuiltinCachesAcrossCalls(t *testing.T) {
	r, b := newTestRegistry(t)
	calls := 0
	r.RegisterBuiltin("math", func(b *classrt.Builtins) map[string]runtime.Value {
		calls++
		return map[string]runtime.Value{"pi": runtime.Float(3.14159)}
	})

	m1, exc := r.LoadBuiltin("math")
	if exc != nil {
		t.Fatalf("unexpected exception: %s", classrt.ExceptionMessage(exc))
	}
	m2, exc := r.LoadBuiltin("math")
	if exc != nil {
		t.Fatalf("unexpected exception: %s", classrt.ExceptionMessage(exc))
	}
	if m1 != m2 {
		t.Errorf("LoadBuiltin returned distinct Modules for the same name")
	}
	if calls != 1 {
		t.Errorf("factory ran %d times, want 1", calls)
	}
	if pi, ok := m1.Exports["pi"]; !ok || pi.Float != 3.14159 {
		t.Errorf("exports[\"pi\"] = %v, ok=%v", pi, ok)
	}
	_ = b
}

func TestLoadBuiltinUnknownName(t *testing.T) {
	r, b := newTestRegistry(t)
	_, exc := r.LoadBuiltin("nope")
	if exc == nil || !exc.IsA(b.ImportError) {
		t.Errorf("expected ImportError, got %v", exc)
	}
}

func TestLoadFileParsesAndEvaluatesOnce(t *testing.T) {
	r, _ := newTestRegistry(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "helper.ember"), []byte("1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	evalCalls := 0
	eval := func(scope *runtime.Scope, program *emberast.Sequence) runtime.Result {
		evalCalls++
		scope.Declare("answer", runtime.Int(42))
		return runtime.Ok(runtime.Int(1))
	}

	m1, exc := r.LoadFile(dir, 1, "helper", eval)
	if exc != nil {
		t.Fatalf("unexpected exception: %s", classrt.ExceptionMessage(exc))
	}
	m2, exc := r.LoadFile(dir, 1, "helper", eval)
	if exc != nil {
		t.Fatalf("unexpected exception: %s", classrt.ExceptionMessage(exc))
	}
	if m1 != m2 {
		t.Errorf("LoadFile returned distinct Modules for the same path")
	}
	if evalCalls != 1 {
		t.Errorf("module body evaluated %d times, want 1", evalCalls)
	}
	if m1.Name != "helper" {
		t.Errorf("module name = %q, want helper", m1.Name)
	}
}

func TestLoadFileRejectsInvalidIdentifier(t *testing.T) {
	r, b := newTestRegistry(t)
	_, exc := r.LoadFile(t.TempDir(), 1, "not-an-identifier", nil)
	if exc == nil || !exc.IsA(b.ImportError) {
		t.Errorf("expected ImportError for invalid module name, got %v", exc)
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	r, b := newTestRegistry(t)
	_, exc := r.LoadFile(t.TempDir(), 1, "missing", nil)
	if exc == nil || !exc.IsA(b.ImportError) {
		t.Errorf("expected ImportError for a missing file, got %v", exc)
	}
}

func TestLoadFileEvictsCacheOnFailure(t *testing.T) {
	r, b := newTestRegistry(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.ember"), []byte("1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	failing := func(scope *runtime.Scope, program *emberast.Sequence) runtime.Result {
		return runtime.Raise(b.ValueErrorf("boom"))
	}
	_, exc := r.LoadFile(dir, 1, "bad", failing)
	if exc == nil {
		t.Fatalf("expected the raised exception to propagate")
	}
	if len(r.fileCache) != 0 {
		t.Errorf("failed module stayed cached: %d entries", len(r.fileCache))
	}
}
