package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
)

func init() {
	rootCmd.AddCommand(saveCmd)
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Capture a snapshot of the current save directory",
	Long: `Capture a full copy of the game's live save directory as a new snapshot.

The snapshot is labeled with the capture timestamp and stored under the
backup root. Captures within the same second get a numeric suffix. The copy
is staged in a temporary directory and renamed into place, so an interrupted
capture never leaves a partial snapshot behind.`,
	Example: `  # Capture a snapshot now
  vsave save

  # Capture with an explicit save directory
  vsave save --save-dir ~/my-saves`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func runSave(cmd *cobra.Command, _ []string) error {
	mgr := newManager(cmd)

	snap, err := mgr.QuickSave()
	if err != nil {
		if errors.Is(err, errors.ErrSaveDirNotFound) {
			return errors.NewUserError(err,
				"Is the game installed? Set the save directory explicitly with: vsave config set save-dir <path>")
		}
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(os.Stdout, "Snapshot %s (%d files)\n", snap.Label, snap.Files)
	return nil
}
