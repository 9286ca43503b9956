package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/vsave/internal/store"
)

func testCollection() store.Collection {
	base := time.Date(2026, 8, 31, 14, 2, 11, 0, time.Local)
	return store.Collection{
		{Label: "2026-08-30_09-15-00", CreatedAt: base.Add(-29 * time.Hour), Files: 3, Path: "/backups/2026-08-30_09-15-00"},
		{Label: "2026-08-31_14-02-11", CreatedAt: base, Files: 4, Path: "/backups/2026-08-31_14-02-11"},
	}
}

func TestOutputListTabular(t *testing.T) {
	var buf bytes.Buffer
	if err := outputListTabular(&buf, testCollection()); err != nil {
		t.Fatalf("outputListTabular failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"LABEL", "CREATED", "FILES", "2026-08-30_09-15-00", "2026-08-31_14-02-11"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	// The most recent snapshot carries the marker
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, "latest") {
		t.Errorf("expected latest marker on last row, got %q", last)
	}
	if !strings.Contains(last, "2026-08-31_14-02-11") {
		t.Errorf("expected most recent label on last row, got %q", last)
	}
}

func TestOutputListTabular_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := outputListTabular(&buf, nil); err != nil {
		t.Fatalf("outputListTabular failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No snapshots yet") {
		t.Errorf("expected empty-state message, got %q", out)
	}
	if !strings.Contains(out, "vsave save") {
		t.Errorf("expected hint to create a snapshot, got %q", out)
	}
}

func TestOutputListJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := outputListJSON(&buf, testCollection()); err != nil {
		t.Fatalf("outputListJSON failed: %v", err)
	}

	var out []snapshotOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(out))
	}
	if out[0].Label != "2026-08-30_09-15-00" {
		t.Errorf("expected oldest first, got %q", out[0].Label)
	}
	if out[1].Files != 4 {
		t.Errorf("expected file count 4, got %d", out[1].Files)
	}
}

func TestOutputListJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := outputListJSON(&buf, nil); err != nil {
		t.Fatalf("outputListJSON failed: %v", err)
	}

	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}
