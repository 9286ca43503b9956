package store

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	vsmerrors "github.com/thoreinstein/vsave/internal/errors"
	"github.com/thoreinstein/vsave/internal/paths"
	"github.com/thoreinstein/vsave/pkg/fileutil"
)

// tmpPrefix marks in-progress capture directories under the backup root.
// They never parse as labels, so List ignores them even if a crash leaves
// one behind.
const tmpPrefix = ".tmp-"

// Store owns the backup root directory and its snapshot children.
// The directory listing is the source of truth; there is no index file.
type Store struct {
	root string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithRoot sets the backup root directory.
func WithRoot(dir string) Option {
	return func(s *Store) {
		s.root = dir
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store rooted at the default backup location.
func New(opts ...Option) *Store {
	s := &Store{
		root: paths.BackupRoot(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the backup root directory.
func (s *Store) Root() string {
	return s.root
}

// Create captures a new snapshot of saveDir.
//
// The tree is copied into a temporary sibling directory first and renamed to
// its final timestamp label only after the copy completes, so no partial
// snapshot is ever visible under a final name. On failure the temporary
// directory is removed and ErrCaptureFailed is returned.
func (s *Store) Create(saveDir string) (Snapshot, error) {
	info, err := os.Stat(saveDir)
	if err != nil {
		return Snapshot{}, errors.Wrapf(vsmerrors.ErrCaptureFailed, "save directory: %v", err)
	}
	if !info.IsDir() {
		return Snapshot{}, errors.Wrapf(vsmerrors.ErrCaptureFailed, "%s is not a directory", saveDir)
	}

	if err := paths.EnsureDir(s.root, 0o755); err != nil {
		return Snapshot{}, errors.Wrapf(vsmerrors.ErrCaptureFailed, "creating backup root: %v", err)
	}

	tmpDir, err := os.MkdirTemp(s.root, tmpPrefix)
	if err != nil {
		return Snapshot{}, errors.Wrapf(vsmerrors.ErrCaptureFailed, "creating staging directory: %v", err)
	}

	if err := fileutil.CopyTree(saveDir, tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		return Snapshot{}, errors.Wrapf(vsmerrors.ErrCaptureFailed, "copying save tree: %v", err)
	}

	captured := s.now()
	label, finalPath := s.allocateLabel(captured)

	if err := os.Rename(tmpDir, finalPath); err != nil {
		os.RemoveAll(tmpDir)
		return Snapshot{}, errors.Wrapf(vsmerrors.ErrCaptureFailed, "publishing snapshot: %v", err)
	}

	files, err := fileutil.CountTree(finalPath)
	if err != nil {
		files = 0
	}

	ts, seq, _ := parseLabel(label)
	return Snapshot{
		Label:     label,
		Path:      finalPath,
		CreatedAt: ts,
		Seq:       seq,
		Files:     files,
	}, nil
}

// allocateLabel picks the first unused label for the capture time,
// disambiguating same-second captures with _1, _2, ... suffixes.
func (s *Store) allocateLabel(ts time.Time) (string, string) {
	base := ts.Format(LabelFormat)
	label := base
	path := filepath.Join(s.root, label)

	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return label, path
		}
		label = base + "_" + strconv.Itoa(n)
		path = filepath.Join(s.root, label)
	}
}

// List enumerates the backup root and returns all snapshots ordered
// ascending by capture time. Entries that do not parse as labels (staging
// directories, foreign files) are skipped. A missing backup root yields an
// empty collection, not an error.
func (s *Store) List() (Collection, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return Collection{}, nil
		}
		return nil, errors.Wrap(err, "reading backup root")
	}

	col := make(Collection, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ts, seq, err := parseLabel(entry.Name())
		if err != nil {
			continue
		}

		path := filepath.Join(s.root, entry.Name())
		files, err := fileutil.CountTree(path)
		if err != nil {
			files = 0
		}

		col = append(col, Snapshot{
			Label:     entry.Name(),
			Path:      path,
			CreatedAt: ts,
			Seq:       seq,
			Files:     files,
		})
	}

	slices.SortFunc(col, func(a, b Snapshot) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return a.Seq - b.Seq
	})

	return col, nil
}

// Restore copies every file from the snapshot into saveDir, overwriting
// files with the same relative path. Files present in saveDir but absent
// from the snapshot are left untouched; the game may have created them
// after the capture.
//
// A failure partway through may leave saveDir partially overwritten.
func (s *Store) Restore(label, saveDir string) error {
	// Reject anything that is not a well-formed label before touching the
	// filesystem; labels come from user input and are joined into paths.
	if _, _, err := parseLabel(label); err != nil {
		return errors.Wrapf(vsmerrors.ErrSnapshotNotFound, "%s", label)
	}

	snapPath := filepath.Join(s.root, label)
	info, err := os.Stat(snapPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(vsmerrors.ErrRestoreFailed, "snapshot %s no longer exists", label)
		}
		return errors.Wrapf(vsmerrors.ErrRestoreFailed, "snapshot %s: %v", label, err)
	}
	if !info.IsDir() {
		return errors.Wrapf(vsmerrors.ErrRestoreFailed, "snapshot %s is not a directory", label)
	}

	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return errors.Wrapf(vsmerrors.ErrRestoreFailed, "creating save directory: %v", err)
	}

	if err := fileutil.CopyTree(snapPath, saveDir); err != nil {
		return errors.Wrapf(vsmerrors.ErrRestoreFailed,
			"copying snapshot %s (save directory may be partially overwritten): %v", label, err)
	}

	return nil
}

// Delete removes the snapshot's directory tree.
// Returns ErrSnapshotNotFound if the snapshot is already absent, so callers
// can tell the user whether a deletion actually happened.
func (s *Store) Delete(label string) error {
	if _, _, err := parseLabel(label); err != nil {
		return errors.Wrapf(vsmerrors.ErrSnapshotNotFound, "%s", label)
	}

	snapPath := filepath.Join(s.root, label)

	if _, err := os.Stat(snapPath); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(vsmerrors.ErrSnapshotNotFound, "%s", label)
		}
		return errors.Wrapf(err, "stat snapshot %s", label)
	}

	if err := os.RemoveAll(snapPath); err != nil {
		return errors.Wrapf(err, "removing snapshot %s", label)
	}

	return nil
}

// Prune removes the oldest snapshots beyond keep, returning the labels that
// were removed. keep < 0 is an error; keep == 0 removes everything.
func (s *Store) Prune(keep int) ([]string, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	col, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(col) <= keep {
		return nil, nil
	}

	excess := col[:len(col)-keep]
	removed := make([]string, 0, len(excess))
	for _, snap := range excess {
		if err := s.Delete(snap.Label); err != nil {
			return removed, err
		}
		removed = append(removed, snap.Label)
	}

	return removed, nil
}
