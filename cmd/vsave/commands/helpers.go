package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
	"github.com/thoreinstein/vsave/internal/lifecycle"
	"github.com/thoreinstein/vsave/internal/logging"
	"github.com/thoreinstein/vsave/internal/paths"
	"github.com/thoreinstein/vsave/internal/resolver"
	"github.com/thoreinstein/vsave/internal/store"
)

// Color constants for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// newResolver builds the save directory resolver, honoring the --save-dir
// flag first and the config file second.
func newResolver() *resolver.Resolver {
	override := saveDirFlag
	if override == "" {
		override = cfg.SaveDir
	}
	return resolver.New(resolver.WithOverride(override))
}

// newStore builds the snapshot store, honoring the --backup-dir flag first
// and the config file second.
func newStore() *store.Store {
	root := backupDirFlag
	if root == "" {
		root = cfg.BackupDir
	}
	if root == "" {
		root = paths.BackupRoot()
	}
	return store.New(store.WithRoot(root))
}

// newManager wires the resolver, store, CLI notifier, and logger together.
func newManager(cmd *cobra.Command) *lifecycle.Manager {
	return lifecycle.NewManager(
		newResolver(),
		newStore(),
		lifecycle.WithNotifier(&cliNotifier{out: cmd.ErrOrStderr()}),
		lifecycle.WithLogger(logging.FromContext(cmd.Context())),
	)
}

// configFileHint returns the config file path for error suggestions.
func configFileHint() string {
	return paths.ConfigFile()
}

// cliNotifier renders lifecycle events as status lines, standing in for the
// spinner overlay a GUI would show.
type cliNotifier struct {
	out io.Writer
}

func (n *cliNotifier) OperationStarted(kind lifecycle.Kind) {
	switch kind {
	case lifecycle.KindSave:
		fmt.Fprintf(n.out, "%sSaving...%s\n", colorYellow, colorReset)
	case lifecycle.KindRestore:
		fmt.Fprintf(n.out, "%sRestoring...%s\n", colorCyan, colorReset)
	}
}

func (n *cliNotifier) OperationSucceeded(kind lifecycle.Kind, label string) {
	switch kind {
	case lifecycle.KindSave:
		fmt.Fprintf(n.out, "%s✓ Saved: %s%s\n", colorGreen, label, colorReset)
	case lifecycle.KindRestore:
		fmt.Fprintf(n.out, "%s✓ Restored: %s%s (reload your save in-game)\n",
			colorGreen, label, colorReset)
	}
}

func (n *cliNotifier) OperationFailed(kind lifecycle.Kind, err error) {
	verb := "Save"
	if kind == lifecycle.KindRestore {
		verb = "Restore"
	}

	switch {
	case errors.Is(err, errors.ErrBusy):
		fmt.Fprintf(n.out, "%s%s skipped: another operation is in progress%s\n",
			colorYellow, verb, colorReset)
	case errors.Is(err, errors.ErrNoSnapshots):
		fmt.Fprintf(n.out, "%sNothing to restore: no snapshots yet%s\n",
			colorYellow, colorReset)
	default:
		fmt.Fprintf(n.out, "%s✗ %s failed: %v%s\n", colorRed, verb, err, colorReset)
	}
}
