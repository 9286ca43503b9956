package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
)

func init() {
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Restore the most recent snapshot",
	Long: `Restore the most recent snapshot into the live save directory.

The restore is additive: files from the snapshot overwrite their live
counterparts, but files the game created after the capture are left in
place. Reload your save in-game after restoring; the game only reads the
save files on load.`,
	Example: `  # Restore the most recent snapshot
  vsave load

  # Restore a specific snapshot instead
  vsave restore 2026-08-31_14-02-11`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, _ []string) error {
	mgr := newManager(cmd)

	if _, err := mgr.QuickLoad(); err != nil {
		switch {
		case errors.Is(err, errors.ErrNoSnapshots):
			return errors.NewUserError(err, "Create one first with: vsave save")
		case errors.Is(err, errors.ErrSaveDirNotFound):
			return errors.NewUserError(err,
				"Is the game installed? Set the save directory explicitly with: vsave config set save-dir <path>")
		default:
			return errors.NewSystemError(err, "")
		}
	}
	return nil
}
