package codebase

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.d", "module app;\nint x;\n")
	writeFile(t, dir, filepath.Join("sub", "util.d"), "module app.util;\nvoid help() {}\n")
	writeFile(t, dir, "notes.txt", "not source")

	cb := New(dir, nil)
	if err := cb.ScanAll(); err != nil {
		t.Fatal(err)
	}

	paths := cb.Paths()
	if len(paths) != 2 {
		t.Fatalf("scanned %d files, want 2: %v", len(paths), paths)
	}

	file := cb.Lookup(filepath.Join(dir, "app.d"))
	if file == nil {
		t.Fatal("app.d not scanned")
	}
	if file.Module == nil {
		t.Fatal("app.d: no module")
	}
	if file.ErrorCount != 0 {
		t.Errorf("app.d: %d errors, want 0", file.ErrorCount)
	}
	if len(file.Outline) == 0 {
		t.Error("app.d: empty outline")
	}
}

func TestScanAllSkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.d", "module app;\n")
	writeFile(t, dir, filepath.Join(".dub", "gen.d"), "module gen;\n")
	writeFile(t, dir, filepath.Join("vendor", "dep.d"), "module dep;\n")

	cb := New(dir, &Config{Exclude: []string{".dub", "vendor"}, MaxDiagnostics: 10})
	if err := cb.ScanAll(); err != nil {
		t.Fatal(err)
	}

	if got := len(cb.Paths()); got != 1 {
		t.Fatalf("scanned %d files, want 1: %v", got, cb.Paths())
	}
}

func TestUpdateFileReplacesState(t *testing.T) {
	cb := New(".", nil)

	cb.UpdateFile("mem.d", []byte("int x = ;"))
	file := cb.Lookup("mem.d")
	if file == nil {
		t.Fatal("mem.d missing")
	}
	if file.ErrorCount == 0 {
		t.Fatal("expected errors for broken source")
	}
	if len(file.Diagnostics) == 0 {
		t.Fatal("expected diagnostics for broken source")
	}
	if !file.Diagnostics[0].IsError {
		t.Error("first diagnostic should be an error")
	}

	cb.UpdateFile("mem.d", []byte("int x = 1;"))
	file = cb.Lookup("mem.d")
	if file.ErrorCount != 0 {
		t.Errorf("after fix: %d errors, want 0", file.ErrorCount)
	}
	if len(file.Diagnostics) != 0 {
		t.Errorf("after fix: %d diagnostics, want 0", len(file.Diagnostics))
	}
}

func TestDiagnosticsCapped(t *testing.T) {
	cb := New(".", &Config{MaxDiagnostics: 2})

	src := "int a = ;\nint b = ;\nint c = ;\nint d = ;\n"
	cb.UpdateFile("bad.d", []byte(src))

	file := cb.Lookup("bad.d")
	if file == nil {
		t.Fatal("bad.d missing")
	}
	if len(file.Diagnostics) > 2 {
		t.Errorf("%d diagnostics, want at most 2", len(file.Diagnostics))
	}
}

func TestRemoveFile(t *testing.T) {
	cb := New(".", nil)
	cb.UpdateFile("gone.d", []byte("module gone;"))
	cb.RemoveFile("gone.d")
	if cb.Lookup("gone.d") != nil {
		t.Error("file still present after RemoveFile")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if config.MaxDiagnostics != 100 {
		t.Errorf("MaxDiagnostics = %d, want 100", config.MaxDiagnostics)
	}
	if !config.Excluded(filepath.Join("a", ".git", "b")) {
		t.Error(".git should be excluded by default")
	}
	if config.Excluded(filepath.Join("src", "app")) {
		t.Error("src/app should not be excluded")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dlt.yaml", "exclude:\n  - generated\nmax_diagnostics: 5\n")

	config, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if config.MaxDiagnostics != 5 {
		t.Errorf("MaxDiagnostics = %d, want 5", config.MaxDiagnostics)
	}
	if !config.Excluded("generated/x.d") {
		t.Error("generated should be excluded")
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dlt.yaml", "exclude: [unclosed\n")

	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}
