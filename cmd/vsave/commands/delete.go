package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete <label>",
	Aliases: []string{"rm"},
	Short:   "Delete a snapshot",
	Long: `Delete the snapshot with the given label.

Deleting a snapshot never touches the live save directory or any other
snapshot. Deleting a label that does not exist reports that nothing was
removed.`,
	Example: `  # Delete a snapshot
  vsave delete 2026-08-31_14-02-11

  # List snapshots first
  vsave list`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	mgr := newManager(cmd)
	label := args[0]

	if err := mgr.Delete(label); err != nil {
		if errors.Is(err, errors.ErrSnapshotNotFound) {
			fmt.Fprintf(os.Stdout, "Nothing removed: no snapshot named %s\n", label)
			return nil
		}
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(os.Stdout, "%s✓ Deleted %s%s\n", colorGreen, label, colorReset)
	return nil
}
