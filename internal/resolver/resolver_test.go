package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"

	vsmerrors "github.com/thoreinstein/vsave/internal/errors"
)

func TestResolve_NoCandidatesExist(t *testing.T) {
	tmp := t.TempDir()
	r := New(WithCandidates(
		filepath.Join(tmp, "missing1"),
		filepath.Join(tmp, "missing2"),
	))

	_, err := r.Resolve()
	if !errors.Is(err, vsmerrors.ErrSaveDirNotFound) {
		t.Errorf("expected ErrSaveDirNotFound, got %v", err)
	}
}

func TestResolve_ReturnsFirstExisting(t *testing.T) {
	tmp := t.TempDir()
	third := filepath.Join(tmp, "third")
	if err := os.MkdirAll(third, 0o755); err != nil {
		t.Fatal(err)
	}

	r := New(WithCandidates(
		filepath.Join(tmp, "first"),
		filepath.Join(tmp, "second"),
		third,
	))

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != third {
		t.Errorf("Resolve = %q, want %q", got, third)
	}
}

func TestResolve_SkipsPlainFiles(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(tmp, "dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	r := New(WithCandidates(file, dir))

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != dir {
		t.Errorf("Resolve = %q, want %q", got, dir)
	}
}

func TestResolve_CachesFirstResult(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	r := New(WithCandidates(dir))

	if _, err := r.Resolve(); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	// Removing the directory must not invalidate the cached result;
	// candidates are not re-probed.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if got != dir {
		t.Errorf("cached Resolve = %q, want %q", got, dir)
	}
}

func TestSet_ValidatesExistence(t *testing.T) {
	r := New(WithCandidates())

	if err := r.Set(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Set should reject a missing directory")
	}

	dir := t.TempDir()
	if err := r.Set(dir); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve after Set: %v", err)
	}
	if got != dir {
		t.Errorf("Resolve = %q, want %q", got, dir)
	}
}

func TestWithOverride(t *testing.T) {
	dir := t.TempDir()
	r := New(WithOverride(dir))

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != dir {
		t.Errorf("Resolve = %q, want %q", got, dir)
	}
}

func TestParseVDFPaths(t *testing.T) {
	tmp := t.TempDir()
	lib1 := filepath.Join(tmp, "lib1")
	if err := os.MkdirAll(lib1, 0o755); err != nil {
		t.Fatal(err)
	}

	vdf := filepath.Join(tmp, "libraryfolders.vdf")
	content := `"libraryfolders"
{
	"0"
	{
		"path"		"` + lib1 + `"
		"label"		""
	}
	"1"
	{
		"path"		"` + filepath.Join(tmp, "missing") + `"
	}
}
`
	if err := os.WriteFile(vdf, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := parseVDFPaths(vdf)
	if len(got) != 1 || got[0] != lib1 {
		t.Errorf("parseVDFPaths = %v, want [%s]", got, lib1)
	}
}

func TestIsSteamID(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"76561198000000000", true},
		{"123", false},
		{"76561198000x00000", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isSteamID(tt.name); got != tt.want {
			t.Errorf("isSteamID(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
