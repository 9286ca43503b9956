package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
	"github.com/thoreinstein/vsave/internal/store"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List snapshots",
	Long: `List all snapshots in the backup root, oldest first.

The backup root's directory listing is the source of truth; anything that
does not look like a snapshot label is ignored. The most recent snapshot,
the one "vsave load" would restore, is marked.`,
	Example: `  # List all snapshots
  vsave list

  # Output as JSON
  vsave list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// snapshotOutput represents a single snapshot in JSON output.
type snapshotOutput struct {
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	Files     int       `json:"files"`
	Path      string    `json:"path"`
}

func runList(cmd *cobra.Command, _ []string) error {
	mgr := newManager(cmd)

	col, err := mgr.Refresh()
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	if listJSON {
		return outputListJSON(os.Stdout, col)
	}
	return outputListTabular(os.Stdout, col)
}

func outputListJSON(w io.Writer, col store.Collection) error {
	output := make([]snapshotOutput, len(col))
	for i, s := range col {
		output[i] = snapshotOutput{
			Label:     s.Label,
			CreatedAt: s.CreatedAt,
			Files:     s.Files,
			Path:      s.Path,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputListTabular(w io.Writer, col store.Collection) error {
	if len(col) == 0 {
		fmt.Fprintln(w, "No snapshots yet")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Create one with: vsave save")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sLABEL%s\t%sCREATED%s\t%sFILES%s\t\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for i, s := range col {
		marker := ""
		if i == len(col)-1 {
			marker = colorCyan + "latest" + colorReset
		}
		fmt.Fprintf(tw, "%s%s%s\t%s\t%d\t%s\n",
			colorGreen, s.Label, colorReset,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.Files,
			marker)
	}
	return tw.Flush()
}
