// Package lifecycle orchestrates save and restore operations.
//
// The Manager is the sole serialization point for all mutation of the save
// directory and the backup root. Triggers (hotkeys, CLI commands, watchers)
// may arrive from any goroutine; only one save-or-restore operation is ever
// in flight. A trigger received while an operation is active is rejected
// immediately with ErrBusy rather than queued, so rapid double-presses
// produce exactly one snapshot and a visible "busy" notification for the
// rest.
package lifecycle

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	vsmerrors "github.com/thoreinstein/vsave/internal/errors"
	"github.com/thoreinstein/vsave/internal/resolver"
	"github.com/thoreinstein/vsave/internal/store"
)

// Manager coordinates the path resolver, the snapshot store, and the
// notification port. Safe for concurrent use from any goroutine.
type Manager struct {
	resolver *resolver.Resolver
	store    *store.Store
	notifier Notifier
	logger   *slog.Logger

	// op is held for the duration of one save/restore/delete operation.
	// TryLock is the atomic Idle -> InProgress transition.
	op sync.Mutex

	// mu guards the cached collection only.
	mu        sync.Mutex
	snapshots store.Collection
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier sets the notification port. Defaults to NopNotifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a Manager around the given resolver and store.
func NewManager(res *resolver.Resolver, st *store.Store, opts ...Option) *Manager {
	m := &Manager{
		resolver: res,
		store:    st,
		notifier: NopNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// QuickSave captures a new snapshot of the live save directory.
// Returns ErrBusy if another operation is in flight.
func (m *Manager) QuickSave() (store.Snapshot, error) {
	if !m.op.TryLock() {
		m.notifier.OperationFailed(KindSave, vsmerrors.ErrBusy)
		return store.Snapshot{}, vsmerrors.ErrBusy
	}
	defer m.op.Unlock()

	saveDir, err := m.resolver.Resolve()
	if err != nil {
		m.notifier.OperationFailed(KindSave, err)
		return store.Snapshot{}, err
	}

	m.notifier.OperationStarted(KindSave)
	m.logger.Debug("capturing snapshot", "save_dir", saveDir)

	snap, err := m.store.Create(saveDir)
	if err != nil {
		m.notifier.OperationFailed(KindSave, err)
		return store.Snapshot{}, err
	}

	m.notifier.OperationSucceeded(KindSave, snap.Label)
	m.logger.Info("snapshot created", "label", snap.Label, "files", snap.Files)

	m.refresh()
	return snap, nil
}

// QuickLoad restores the most recent snapshot.
// Returns ErrNoSnapshots if the collection is empty (nothing is mutated),
// or ErrBusy if another operation is in flight.
func (m *Manager) QuickLoad() (store.Snapshot, error) {
	if !m.op.TryLock() {
		m.notifier.OperationFailed(KindRestore, vsmerrors.ErrBusy)
		return store.Snapshot{}, vsmerrors.ErrBusy
	}
	defer m.op.Unlock()

	col := m.refresh()
	latest, ok := col.Latest()
	if !ok {
		m.notifier.OperationFailed(KindRestore, vsmerrors.ErrNoSnapshots)
		return store.Snapshot{}, vsmerrors.ErrNoSnapshots
	}

	if err := m.restoreLocked(latest); err != nil {
		return store.Snapshot{}, err
	}
	return latest, nil
}

// Restore restores the snapshot with the given label.
// Returns ErrSnapshotNotFound if no such snapshot exists, or ErrBusy if
// another operation is in flight.
func (m *Manager) Restore(label string) error {
	if !m.op.TryLock() {
		m.notifier.OperationFailed(KindRestore, vsmerrors.ErrBusy)
		return vsmerrors.ErrBusy
	}
	defer m.op.Unlock()

	col := m.refresh()
	snap, ok := col.Get(label)
	if !ok {
		return errors.Wrapf(vsmerrors.ErrSnapshotNotFound, "%s", label)
	}

	return m.restoreLocked(snap)
}

// restoreLocked performs the restore while m.op is held.
func (m *Manager) restoreLocked(snap store.Snapshot) error {
	saveDir, err := m.resolver.Resolve()
	if err != nil {
		m.notifier.OperationFailed(KindRestore, err)
		return err
	}

	m.notifier.OperationStarted(KindRestore)
	m.logger.Debug("restoring snapshot", "label", snap.Label, "save_dir", saveDir)

	if err := m.store.Restore(snap.Label, saveDir); err != nil {
		m.notifier.OperationFailed(KindRestore, err)
		return err
	}

	m.notifier.OperationSucceeded(KindRestore, snap.Label)
	m.logger.Info("snapshot restored", "label", snap.Label)
	return nil
}

// Delete removes the snapshot with the given label.
// Returns ErrSnapshotNotFound if it is already absent, so the caller can
// report whether a deletion actually occurred. Returns ErrBusy if a save or
// restore is in flight.
func (m *Manager) Delete(label string) error {
	if !m.op.TryLock() {
		return vsmerrors.ErrBusy
	}
	defer m.op.Unlock()

	if err := m.store.Delete(label); err != nil {
		return err
	}

	m.logger.Info("snapshot deleted", "label", label)
	m.refresh()
	return nil
}

// Refresh re-reads the backup root and returns the current collection.
func (m *Manager) Refresh() (store.Collection, error) {
	col, err := m.store.List()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.snapshots = col
	m.mu.Unlock()

	return col, nil
}

// Snapshots returns the cached collection from the last refresh.
func (m *Manager) Snapshots() store.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshots
}

// refresh updates the cache, logging rather than failing on error: the
// operation that triggered it has already succeeded.
func (m *Manager) refresh() store.Collection {
	col, err := m.Refresh()
	if err != nil {
		m.logger.Warn("refreshing snapshot list", "error", err)
		return m.Snapshots()
	}
	return col
}
