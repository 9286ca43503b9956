package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
	"github.com/thoreinstein/vsave/internal/store"
)

func init() {
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [label]",
	Short: "Restore a specific snapshot",
	Long: `Restore a snapshot into the live save directory.

If no label is given, an interactive picker lists all snapshots, most
recent first. The restore is additive: files from the snapshot overwrite
their live counterparts, but files created after the capture are left in
place.`,
	Example: `  # Pick a snapshot interactively
  vsave restore

  # Restore a specific snapshot
  vsave restore 2026-08-31_14-02-11

  # List snapshots first
  vsave list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	mgr := newManager(cmd)

	var label string
	if len(args) > 0 {
		label = args[0]
	} else {
		col, err := mgr.Refresh()
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		label, err = pickSnapshot(col)
		if err != nil {
			return err
		}
		if label == "" {
			// Aborted picker
			return nil
		}
	}

	if err := mgr.Restore(label); err != nil {
		switch {
		case errors.Is(err, errors.ErrSnapshotNotFound):
			return errors.NewUserError(err, "List available snapshots with: vsave list")
		case errors.Is(err, errors.ErrSaveDirNotFound):
			return errors.NewUserError(err,
				"Is the game installed? Set the save directory explicitly with: vsave config set save-dir <path>")
		default:
			return errors.NewSystemError(err, "")
		}
	}
	return nil
}

// pickSnapshot runs the interactive finder over the collection, most recent
// first. Returns an empty label if the user aborted.
func pickSnapshot(col store.Collection) (string, error) {
	if len(col) == 0 {
		return "", errors.NewUserError(errors.ErrNoSnapshots, "Create one first with: vsave save")
	}

	// Most recent first for the picker
	ordered := make([]store.Snapshot, len(col))
	for i, s := range col {
		ordered[len(col)-1-i] = s
	}

	idx, err := fuzzyfinder.Find(
		ordered,
		func(i int) string {
			return ordered[i].Label
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			s := ordered[i]
			return fmt.Sprintf("Label: %s\nCreated: %s\nFiles: %d\n\nPath:\n%s",
				s.Label,
				s.CreatedAt.Format("2006-01-02 15:04:05"),
				s.Files,
				s.Path,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}

	return ordered[idx].Label, nil
}
