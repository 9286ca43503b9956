package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
)

func init() {
	rootCmd.AddCommand(pathCmd)
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the resolved save directory and backup root",
	Long: `Show the directories vsave operates on.

The save directory is auto-detected by probing the standard Steam locations
for the current platform, unless overridden by the --save-dir flag or the
save_dir config setting.`,
	Example: `  # Show resolved paths
  vsave path`,
	Args: cobra.NoArgs,
	RunE: runPath,
}

func runPath(cmd *cobra.Command, _ []string) error {
	st := newStore()
	fmt.Fprintf(os.Stdout, "%sBackup root:%s    %s\n", colorBold, colorReset, st.Root())

	saveDir, err := newResolver().Resolve()
	if err != nil {
		fmt.Fprintf(os.Stdout, "%sSave directory:%s %s(not found)%s\n",
			colorBold, colorReset, colorYellow, colorReset)
		return errors.NewUserError(err,
			"Is the game installed? Set the save directory explicitly with: vsave config set save-dir <path>")
	}
	fmt.Fprintf(os.Stdout, "%sSave directory:%s %s\n", colorBold, colorReset, saveDir)
	return nil
}
