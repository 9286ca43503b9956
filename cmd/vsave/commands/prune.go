package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", 0,
		"number of snapshots to keep (default: retention from config)")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old snapshots",
	Long: `Remove the oldest snapshots, keeping the most recent N.

N comes from the --keep flag, falling back to the retention setting in the
config file.`,
	Example: `  # Keep the 10 most recent snapshots
  vsave prune --keep 10

  # Use the configured retention
  vsave prune`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	keep := pruneKeep
	if keep == 0 {
		keep = cfg.Retention
	}
	if keep < 1 {
		return errors.NewUserError(errors.Newf("invalid keep count %d", keep),
			"Pass --keep with a positive number")
	}

	removed, err := newStore().Prune(keep)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	if len(removed) == 0 {
		fmt.Fprintln(os.Stdout, "Nothing to prune")
		return nil
	}

	for _, label := range removed {
		fmt.Fprintf(os.Stdout, "%sRemoved %s%s\n", colorGray, label, colorReset)
	}
	fmt.Fprintf(os.Stdout, "%s✓ Pruned %d snapshot(s), keeping %d%s\n",
		colorGreen, len(removed), keep, colorReset)
	return nil
}
