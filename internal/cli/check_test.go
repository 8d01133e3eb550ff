package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/lotcheck/pkg/layout"
)

const cleanLayoutJSON = `{
	"width": 400,
	"height": 300,
	"elements": [
		{"id": "entrance-1", "type": "entrance", "x": 0, "y": 0, "width": 40, "height": 20},
		{"id": "ramp-1", "type": "ramp", "x": 0, "y": 20, "width": 40, "height": 60},
		{"id": "road-1", "type": "road", "x": 0, "y": 80, "width": 400, "height": 60},
		{"id": "exit-1", "type": "exit", "x": 360, "y": 140, "width": 40, "height": 20}
	]
}`

// Two pillars overlapping 1.2 units on a drivable lot: invalid under the
// default epsilon (1.0), valid under a loosened one (1.5).
const overlapLayoutJSON = `{
	"width": 400,
	"height": 300,
	"elements": [
		{"id": "entrance-1", "type": "entrance", "x": 0, "y": 0, "width": 40, "height": 20},
		{"id": "ramp-1", "type": "ramp", "x": 0, "y": 20, "width": 40, "height": 60},
		{"id": "road-1", "type": "road", "x": 0, "y": 80, "width": 400, "height": 60},
		{"id": "exit-1", "type": "exit", "x": 360, "y": 140, "width": 40, "height": 20},
		{"id": "pillar-1", "type": "pillar", "x": 100, "y": 200, "width": 10, "height": 10},
		{"id": "pillar-2", "type": "pillar", "x": 108.8, "y": 200, "width": 10, "height": 10}
	]
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

func TestRunCheckValidLayout(t *testing.T) {
	c := testCLI(t)
	path := writeTempFile(t, "layout.json", cleanLayoutJSON)

	if err := c.runCheck(context.Background(), path, "", "", false, true); err != nil {
		t.Errorf("runCheck = %v, want nil", err)
	}
}

func TestRunCheckInvalidLayout(t *testing.T) {
	c := testCLI(t)
	path := writeTempFile(t, "layout.json", overlapLayoutJSON)

	err := c.runCheck(context.Background(), path, "", "", false, true)
	if err == nil {
		t.Fatal("runCheck = nil, want violation error")
	}
	if !strings.Contains(err.Error(), "violation") {
		t.Errorf("error = %v, want violation count", err)
	}
}

func TestRunCheckPolicyOverride(t *testing.T) {
	c := testCLI(t)
	path := writeTempFile(t, "layout.json", overlapLayoutJSON)
	policy := writeTempFile(t, "policy.toml", "overlap_epsilon = 1.5\n")

	// The 1.2-unit pillar overlap counts as touching under the loosened epsilon.
	if err := c.runCheck(context.Background(), path, policy, "", false, true); err != nil {
		t.Errorf("runCheck with loose policy = %v, want nil", err)
	}
}

func TestRunCheckBadPolicy(t *testing.T) {
	c := testCLI(t)
	path := writeTempFile(t, "layout.json", cleanLayoutJSON)
	policy := writeTempFile(t, "policy.toml", "overlap_epsilonn = 1.5\n")

	if err := c.runCheck(context.Background(), path, policy, "", false, true); err == nil {
		t.Error("runCheck with unknown policy key should fail")
	}
}

func TestRunCheckWritesReport(t *testing.T) {
	c := testCLI(t)
	path := writeTempFile(t, "layout.json", overlapLayoutJSON)
	out := filepath.Join(t.TempDir(), "report.json")

	err := c.runCheck(context.Background(), path, "", out, false, true)
	if err == nil {
		t.Fatal("expected violation error")
	}

	data, readErr := os.ReadFile(out)
	if readErr != nil {
		t.Fatalf("read report: %v", readErr)
	}
	var report layout.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Valid {
		t.Error("report.Valid = true, want false")
	}
	if len(report.Violations) == 0 {
		t.Error("report has no violations")
	}
}

func TestRunCheckCachedSecondRun(t *testing.T) {
	c := testCLI(t)
	path := writeTempFile(t, "layout.json", cleanLayoutJSON)

	// First run populates the cache, second run must still succeed from it.
	if err := c.runCheck(context.Background(), path, "", "", false, false); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := c.runCheck(context.Background(), path, "", "", false, false); err != nil {
		t.Errorf("second run: %v", err)
	}
}

func TestRunCheckMissingFile(t *testing.T) {
	c := testCLI(t)
	if err := c.runCheck(context.Background(), "/nonexistent/layout.json", "", "", false, true); err == nil {
		t.Error("runCheck on missing file should fail")
	}
}

func TestRunCheckRejectsBadPath(t *testing.T) {
	c := testCLI(t)

	err := c.runCheck(context.Background(), "layout\x00.json", "", "", false, true)
	if err == nil || !strings.Contains(err.Error(), "INVALID_PATH") {
		t.Fatalf("input path with control character: error = %v, want INVALID_PATH", err)
	}

	path := writeTempFile(t, "layout.json", cleanLayoutJSON)
	err = c.runCheck(context.Background(), path, "", "report\x00.json", false, true)
	if err == nil || !strings.Contains(err.Error(), "INVALID_PATH") {
		t.Fatalf("output path with control character: error = %v, want INVALID_PATH", err)
	}
}
