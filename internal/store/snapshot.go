package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// LabelFormat is the timestamp layout for snapshot directory names.
// Second resolution; captures within the same second get a numeric suffix
// ("2026-08-31_14-02-11_1").
const LabelFormat = "2006-01-02_15-04-05"

// Snapshot describes one immutable, timestamp-labeled copy of the save
// directory. It is identified by its Label; Path is the directory holding
// the copied tree.
type Snapshot struct {
	// Label is the directory name, a timestamp plus optional collision suffix.
	Label string

	// Path is the absolute path of the snapshot directory.
	Path string

	// CreatedAt is the capture time parsed from the label.
	CreatedAt time.Time

	// Seq is the collision suffix (0 when absent), ordering captures
	// within the same second.
	Seq int

	// Files is the number of files in the snapshot tree.
	Files int
}

// Collection is an ordered list of snapshots, ascending by capture time.
// Labels are unique; the most recent snapshot is the last element.
type Collection []Snapshot

// Latest returns the most recent snapshot, or false if the collection is empty.
func (c Collection) Latest() (Snapshot, bool) {
	if len(c) == 0 {
		return Snapshot{}, false
	}
	return c[len(c)-1], true
}

// Get returns the snapshot with the given label, or false if absent.
func (c Collection) Get(label string) (Snapshot, bool) {
	for _, s := range c {
		if s.Label == label {
			return s, true
		}
	}
	return Snapshot{}, false
}

// Labels returns the labels of all snapshots in order.
func (c Collection) Labels() []string {
	labels := make([]string, len(c))
	for i, s := range c {
		labels[i] = s.Label
	}
	return labels
}

// parseLabel parses a snapshot directory name into its capture time and
// collision sequence. Foreign directory names fail to parse and are skipped
// by List.
func parseLabel(name string) (time.Time, int, error) {
	if len(name) < len(LabelFormat) {
		return time.Time{}, 0, errors.Newf("label %q too short", name)
	}

	base := name[:len(LabelFormat)]
	ts, err := time.ParseInLocation(LabelFormat, base, time.Local)
	if err != nil {
		return time.Time{}, 0, errors.Wrapf(err, "parsing label %q", name)
	}

	rest := name[len(LabelFormat):]
	if rest == "" {
		return ts, 0, nil
	}

	if !strings.HasPrefix(rest, "_") {
		return time.Time{}, 0, errors.Newf("label %q has malformed suffix", name)
	}
	seq, err := strconv.Atoi(rest[1:])
	if err != nil || seq < 1 {
		return time.Time{}, 0, errors.Newf("label %q has malformed suffix", name)
	}

	return ts, seq, nil
}
