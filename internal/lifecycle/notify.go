package lifecycle

// Kind identifies the type of a lifecycle operation.
type Kind string

const (
	// KindSave is a snapshot capture.
	KindSave Kind = "save"
	// KindRestore is a snapshot restore.
	KindRestore Kind = "restore"
)

// Notifier receives lifecycle events for rendering to the user. The manager
// calls it synchronously from whichever goroutine triggered the operation,
// so implementations must be safe for concurrent use.
//
// The overlay/GUI layer renders these; the CLI renders them as colored
// status lines.
type Notifier interface {
	// OperationStarted fires when an operation transitions to in-progress.
	OperationStarted(kind Kind)

	// OperationSucceeded fires on completion, with the snapshot label
	// that was created or restored.
	OperationSucceeded(kind Kind, label string)

	// OperationFailed fires when an operation fails or is rejected.
	// All failures are non-fatal; the reason is user-visible.
	OperationFailed(kind Kind, err error)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) OperationStarted(Kind)            {}
func (NopNotifier) OperationSucceeded(Kind, string)  {}
func (NopNotifier) OperationFailed(Kind, error)      {}
