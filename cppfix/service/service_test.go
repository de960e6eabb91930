package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	git "github.com/go-git/go-git/v6"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(&Config{SkipGitStatus: true})
}

func writeSource(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, "GeodesicLine3.cpp")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}
	return path
}

func Test_Patch_rewrites_file(t *testing.T) {
	svc := newTestService(t)
	path := writeSource(t, t.TempDir(), geodesicSample)

	out, err := svc.Patch(context.Background(), &PatchInput{Path: path})
	if err != nil {
		t.Fatalf("patch error: %v", err)
	}
	if !out.Changed {
		t.Fatalf("expected Changed=true")
	}
	if out.Includes != 1 || out.Prints != 2 || out.Continuations != 2 || out.NoOps != 1 {
		t.Fatalf("unexpected counts: %+v", out)
	}
	if out.LinesAfter-out.LinesBefore != out.NoOps {
		t.Fatalf("line delta %d != noOps %d", out.LinesAfter-out.LinesBefore, out.NoOps)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(data) != geodesicPatched {
		t.Fatalf("unexpected content:\n%s", data)
	}

	// second run is inert
	again, err := svc.Patch(context.Background(), &PatchInput{Path: path})
	if err != nil {
		t.Fatalf("second patch error: %v", err)
	}
	if again.Changed {
		t.Fatalf("expected Changed=false on second run: %+v", again)
	}
	data, _ = os.ReadFile(path)
	if string(data) != geodesicPatched {
		t.Fatalf("second run altered content:\n%s", data)
	}
}

func Test_Patch_non_matching_is_identical(t *testing.T) {
	svc := newTestService(t)
	input := "#include <vector>\nint main() { return 0; }\n"
	path := writeSource(t, t.TempDir(), input)

	out, err := svc.Patch(context.Background(), &PatchInput{Path: path})
	if err != nil {
		t.Fatalf("patch error: %v", err)
	}
	if out.Changed {
		t.Fatalf("expected Changed=false: %+v", out)
	}
	data, _ := os.ReadFile(path)
	if string(data) != input {
		t.Fatalf("content changed: %q", data)
	}
}

func Test_Patch_missing_file(t *testing.T) {
	svc := newTestService(t)
	path := filepath.Join(t.TempDir(), "missing.cpp")

	_, err := svc.Patch(context.Background(), &PatchInput{Path: path})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var accessErr *FileAccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("expected FileAccessError, got %T: %v", err, err)
	}
	if accessErr.Op != "read" || accessErr.Path != path {
		t.Fatalf("unexpected access error: %+v", accessErr)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist cause, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("missing file must not be created")
	}
}

func Test_Patch_default_path(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "  cout << \"x\";\n")
	svc := NewService(&Config{DefaultPath: path, SkipGitStatus: true})

	out, err := svc.Patch(context.Background(), &PatchInput{})
	if err != nil {
		t.Fatalf("patch error: %v", err)
	}
	if out.Path != path || out.Prints != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if got := NewService(nil).DefaultPath(); got != DefaultPath {
		t.Fatalf("unexpected default path: %s", got)
	}
}

func Test_Preview_does_not_write(t *testing.T) {
	svc := newTestService(t)
	path := writeSource(t, t.TempDir(), geodesicSample)

	out, err := svc.Preview(context.Background(), &PatchInput{Path: path})
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if !out.Changed || out.Truncated {
		t.Fatalf("unexpected preview: %+v", out)
	}
	if !strings.Contains(out.Diff, "-      cout << \"pos \" << s12\n") {
		t.Fatalf("diff misses removed line:\n%s", out.Diff)
	}
	if !strings.Contains(out.Diff, "+      (void)0; // R package: no-op for empty if block\n") {
		t.Fatalf("diff misses inserted no-op:\n%s", out.Diff)
	}
	data, _ := os.ReadFile(path)
	if string(data) != geodesicSample {
		t.Fatalf("preview modified the file")
	}
}

func Test_Preview_truncates(t *testing.T) {
	svc := NewService(&Config{DiffBytes: 16, SkipGitStatus: true})
	path := writeSource(t, t.TempDir(), geodesicSample)

	out, err := svc.Preview(context.Background(), &PatchInput{Path: path})
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if !out.Truncated || len(out.Diff) > 16 || !strings.HasSuffix(out.Diff, "\n") {
		t.Fatalf("expected diff cut at a line end within 16 bytes, got %q %v", out.Diff, out.Truncated)
	}
}

func Test_Patch_reports_git_status(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("git init error: %v", err)
	}
	path := writeSource(t, dir, geodesicSample)
	svc := NewService(&Config{})

	out, err := svc.Preview(context.Background(), &PatchInput{Path: path})
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if out.Git == nil {
		t.Fatalf("expected git status inside a worktree")
	}
	if out.Git.File != "GeodesicLine3.cpp" || out.Git.Tracked {
		t.Fatalf("unexpected git status: %+v", out.Git)
	}

	outside := writeSource(t, t.TempDir(), geodesicSample)
	got, err := svc.Preview(context.Background(), &PatchInput{Path: outside})
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if got.Git != nil {
		t.Fatalf("expected no git status outside a worktree: %+v", got.Git)
	}
}

func Test_LoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cppfix.yaml")
	content := "defaultPath: src/Other.cpp\ndiffBytes: 100\nrules:\n  streamToken: cerr\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}
	cfg, err := LoadConfig(context.Background(), path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.DefaultPath != "src/Other.cpp" || cfg.DiffBytes != 100 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Rules == nil || cfg.Rules.StreamToken != "cerr" {
		t.Fatalf("unexpected rules: %+v", cfg.Rules)
	}
	if _, err := LoadConfig(context.Background(), filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatalf("expected error for missing config")
	}
}
