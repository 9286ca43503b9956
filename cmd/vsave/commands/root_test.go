package commands

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelInfo},
		{"verbose (1)", 1, slog.LevelDebug},
		{"trace (2)", 2, slog.LevelDebug - 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(context.Background(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()
	verbosity = 0

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"VSAVE_DEBUG=1", "1", slog.LevelDebug},
		{"VSAVE_DEBUG=true", "true", slog.LevelDebug},
		{"VSAVE_DEBUG=2", "2", slog.LevelDebug - 4},
		{"VSAVE_DEBUG=unknown", "foo", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VSAVE_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(context.Background(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
		})
	}
}

func TestSetupLogging_QuietAndVerboseConflict(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity = 1
	quiet = true

	if err := setupLogging(rootCmd); err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
}

func TestSetupLogging_Quiet(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity = 0
	quiet = true

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected warn level to be disabled in quiet mode")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error level to be enabled in quiet mode")
	}
}
