package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/vsave/internal/errors"
)

// setupDirs points the persistent flags at temp directories and seeds one
// save file. Returns the save dir and backup root.
func setupDirs(t *testing.T) (string, string) {
	t.Helper()

	saveDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "backups")

	if err := os.WriteFile(filepath.Join(saveDir, "slot0.sav"), []byte("alpha"), 0o644); err != nil {
		t.Fatalf("seeding save file: %v", err)
	}

	origSave, origBackup, origCfg := saveDirFlag, backupDirFlag, cfg
	t.Cleanup(func() { saveDirFlag, backupDirFlag, cfg = origSave, origBackup, origCfg })

	saveDirFlag = saveDir
	backupDirFlag = backupDir
	cfg = testConfig()

	return saveDir, backupDir
}

func TestSaveLoadDelete_RoundTrip(t *testing.T) {
	saveDir, backupDir := setupDirs(t)

	if err := runSave(saveCmd, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("reading backup root: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(entries))
	}
	label := entries[0].Name()

	// Overwrite the live file, then load the snapshot back
	if err := os.WriteFile(filepath.Join(saveDir, "slot0.sav"), []byte("corrupted"), 0o644); err != nil {
		t.Fatalf("overwriting save file: %v", err)
	}
	if err := runLoad(loadCmd, nil); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(saveDir, "slot0.sav"))
	if err != nil {
		t.Fatalf("reading restored file: %v", err)
	}
	if string(got) != "alpha" {
		t.Errorf("expected restored content %q, got %q", "alpha", got)
	}

	if err := runDelete(deleteCmd, []string{label}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(backupDir, label)); !os.IsNotExist(err) {
		t.Errorf("expected snapshot directory to be gone")
	}
}

func TestLoad_NoSnapshots(t *testing.T) {
	setupDirs(t)

	err := runLoad(loadCmd, nil)
	if err == nil {
		t.Fatal("expected error with no snapshots")
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T", err)
	}
	if !errors.Is(err, errors.ErrNoSnapshots) {
		t.Errorf("expected ErrNoSnapshots, got %v", err)
	}
}

func TestSave_SaveDirNotFound(t *testing.T) {
	setupDirs(t)
	saveDirFlag = filepath.Join(t.TempDir(), "missing")

	err := runSave(saveCmd, nil)
	if err == nil {
		t.Fatal("expected error for missing save directory")
	}
	if !errors.Is(err, errors.ErrSaveDirNotFound) {
		t.Errorf("expected ErrSaveDirNotFound, got %v", err)
	}
}

func TestRestore_UnknownLabel(t *testing.T) {
	setupDirs(t)

	if err := runSave(saveCmd, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	err := runRestore(restoreCmd, []string{"2001-01-01_00-00-00"})
	if err == nil {
		t.Fatal("expected error for unknown label")
	}
	if !errors.Is(err, errors.ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestPrune_KeepsMostRecent(t *testing.T) {
	_, backupDir := setupDirs(t)

	for i := 0; i < 3; i++ {
		if err := runSave(saveCmd, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	origKeep := pruneKeep
	defer func() { pruneKeep = origKeep }()
	pruneKeep = 1

	if err := runPrune(pruneCmd, nil); err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("reading backup root: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 snapshot after prune, got %d", len(entries))
	}
}
