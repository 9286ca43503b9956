// Package store implements the snapshot store: timestamped full copies of
// the game's save directory under a single backup root.
//
// # Layout
//
// Each snapshot is one directory under the backup root, named by its capture
// time:
//
//	<BackupRoot>/
//	├── 2026-08-31_14-02-11/
//	│   ├── a.sav
//	│   └── sub/b.sav
//	└── 2026-08-31_14-02-11_1/
//	    └── ...
//
// There is no manifest or index file. The directory listing is the source of
// truth, so snapshots created or deleted by other means (or other processes)
// are picked up by the next List call.
//
// # Atomicity
//
// Create copies the save tree into a ".tmp-*" staging sibling first and only
// renames it to its final label after the copy succeeds. A snapshot is
// therefore either fully present under its final name or not present at all;
// staging directories never parse as labels and are invisible to List.
//
// # Restore policy
//
// Restore is an additive overwrite: files in the snapshot replace their
// counterparts in the save directory, and files the game created after the
// capture are left in place. It never deletes anything.
package store
