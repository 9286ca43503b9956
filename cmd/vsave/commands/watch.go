package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vsave/internal/errors"
	"github.com/thoreinstein/vsave/internal/logging"
	"github.com/thoreinstein/vsave/internal/watch"
)

var (
	watchDebounce time.Duration
	watchSchedule string
)

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0,
		"quiet period after the last save-dir write before capturing (default: config)")
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "",
		"cron spec for periodic captures, e.g. '*/10 * * * *' (default: config)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Capture snapshots automatically while playing",
	Long: `Watch the live save directory and capture a snapshot whenever the game
writes to it.

Writes are debounced: one in-game save produces a burst of file events but
only one snapshot, captured after the directory has been quiet for the
debounce period. A cron schedule can be added for periodic captures
regardless of activity. Runs until interrupted.`,
	Example: `  # Capture after every in-game save
  vsave watch

  # Wait 5s of quiet before capturing
  vsave watch --debounce 5s

  # Also capture every 10 minutes
  vsave watch --schedule '*/10 * * * *'`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	mgr := newManager(cmd)

	saveDir, err := newResolver().Resolve()
	if err != nil {
		return errors.NewUserError(err,
			"Is the game installed? Set the save directory explicitly with: vsave config set save-dir <path>")
	}

	debounce := watchDebounce
	if debounce == 0 {
		debounce = cfg.Watch.Debounce
	}
	schedule := watchSchedule
	if schedule == "" {
		schedule = cfg.Watch.Schedule
	}

	w := watch.New(mgr, saveDir,
		watch.WithDebounce(debounce),
		watch.WithSchedule(schedule),
		watch.WithLogger(logging.FromContext(cmd.Context())),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)\n", saveDir)

	if err := w.Run(ctx); err != nil {
		return errors.NewSystemError(err, "")
	}
	return nil
}
