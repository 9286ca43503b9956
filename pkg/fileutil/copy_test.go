package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyTree_FilesAndSubdirs(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	writeFile(t, filepath.Join(src, "a.sav"), "0123456789")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(src, "sub", "b.sav"), "01234567890123456789")

	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree: %v", err)
	}

	assertFileContent(t, filepath.Join(dst, "a.sav"), "0123456789")
	assertFileContent(t, filepath.Join(dst, "sub", "b.sav"), "01234567890123456789")
}

func TestCopyTree_EmptySubdir(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	if err := os.MkdirAll(filepath.Join(src, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "empty"))
	if err != nil {
		t.Fatalf("empty subdirectory not copied: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}

func TestCopyTree_OverwritesButKeepsExtras(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "a.sav"), "new")
	writeFile(t, filepath.Join(dst, "a.sav"), "old")
	writeFile(t, filepath.Join(dst, "extra.sav"), "keep me")

	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree: %v", err)
	}

	assertFileContent(t, filepath.Join(dst, "a.sav"), "new")
	assertFileContent(t, filepath.Join(dst, "extra.sav"), "keep me")
}

func TestCopyTree_PreservesMode(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	path := filepath.Join(src, "exec.sh")
	writeFile(t, path, "#!/bin/sh\n")
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "exec.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestCopyTree_SourceNotADirectory(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, src, "x")

	if err := CopyTree(src, t.TempDir()); err == nil {
		t.Error("expected error for non-directory source")
	}
}

func TestCountTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "1")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "sub", "b"), "2")

	n, err := CountTree(dir)
	if err != nil {
		t.Fatalf("CountTree: %v", err)
	}
	if n != 2 {
		t.Errorf("CountTree = %d, want 2", n)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(data) != want {
		t.Errorf("%s content = %q, want %q", path, data, want)
	}
}
