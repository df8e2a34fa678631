package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("SETGRID_CONFIG_HOME", dir)
	t.Setenv("SETGRID_LOG_FILE", filepath.Join(dir, "test.log"))

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func TestShow_DayJSONEnvelope(t *testing.T) {
	stdout, stderr, err := runCLI(t, []string{"show", "--day", "lower-a"})
	if err != nil {
		t.Fatalf("show failed: %v\nstderr:\n%s", err, stderr)
	}
	var env struct {
		Data struct {
			ID    string `json:"id"`
			Items []struct {
				Key string `json:"key"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, stdout)
	}
	if env.Data.ID != "lower-a" || len(env.Data.Items) == 0 || env.Data.Items[0].Key != "ex-squat" {
		t.Fatalf("unexpected day: %+v", env.Data)
	}
}

func TestShow_Text(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"show", "--format", "text"})
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	out := string(stdout)
	if !strings.HasPrefix(out, "Upper / Lower\n") || !strings.Contains(out, "[Superset]") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func TestShow_UnknownDay(t *testing.T) {
	_, stderr, err := runCLI(t, []string{"show", "--day", "nope"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "day not found: nope") {
		t.Fatalf("stderr: %s", stderr)
	}
}

func TestShow_ProgramFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	body := `{"name": "Mine", "days": [{"id": "d", "items": [{"key": "a", "name": "A"}]}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stdout, _, err := runCLI(t, []string{"--program", path, "show", "--format", "text"})
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if got := string(stdout); got != "Mine\n## d (d) - 1 exercises\n 1. A\n" {
		t.Fatalf("got %q", got)
	}
}

func TestConfig_PrintsDefaults(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"config"})
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	out := string(stdout)
	for _, want := range []string{"[grid]", "columns = 3", "dwell-ms = 300", "[autoscroll]", "[ui]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSimulateCmd_Stdin(t *testing.T) {
	script := `{"grouping": false, "events": [
  {"at": 0, "type": "longpress", "key": "ex-bench"},
  {"at": 10, "type": "move", "dx": 200},
  {"at": 20, "type": "release"}
]}`
	dir := t.TempDir()
	t.Setenv("SETGRID_CONFIG_HOME", dir)
	t.Setenv("SETGRID_LOG_FILE", filepath.Join(dir, "test.log"))

	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(script))
	cmd.SetArgs([]string{"simulate", "-", "--format", "text", "--day", "upper-a"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("simulate failed: %v\n%s", err, errBuf.String())
	}
	out := outBuf.String()
	if !strings.Contains(out, " 1. Barbell Row") || !strings.Contains(out, " 3. Bench Press") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDocs_ListAndTopic(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"docs", "--format", "text"})
	if err != nil {
		t.Fatalf("docs failed: %v", err)
	}
	if !strings.Contains(string(stdout), "gestures\n") {
		t.Fatalf("topics: %s", stdout)
	}

	stdout, _, err = runCLI(t, []string{"docs", "simulate", "--raw"})
	if err != nil {
		t.Fatalf("docs simulate failed: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# Simulate scripts") {
		t.Fatalf("unexpected body: %.40s", stdout)
	}

	_, stderr, err := runCLI(t, []string{"docs", "nope"})
	if err == nil || !strings.Contains(string(stderr), "unknown docs topic") {
		t.Fatalf("expected unknown topic error, got %v %s", err, stderr)
	}
}

func TestRoot_WriteNeedsProgram(t *testing.T) {
	_, stderr, err := runCLI(t, []string{"--write"})
	if err == nil || !strings.Contains(string(stderr), "--write needs --program") {
		t.Fatalf("expected error, got %v %s", err, stderr)
	}
}

func TestPublish_WritesPagesAndRefusesOverwrite(t *testing.T) {
	to := filepath.Join(t.TempDir(), "site")

	stdout, stderr, err := runCLI(t, []string{"publish", "--to", to, "--day", "upper-a", "--format", "text"})
	if err != nil {
		t.Fatalf("publish failed: %v\nstderr:\n%s", err, stderr)
	}
	want := filepath.Join(to, "days", "upper-a.md")
	if strings.TrimSpace(string(stdout)) != want {
		t.Fatalf("stdout: %q", stdout)
	}
	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.HasPrefix(string(b), "# ") {
		t.Fatalf("page: %s", b)
	}

	_, stderr, err = runCLI(t, []string{"publish", "--to", to, "--day", "upper-a"})
	if err == nil || !strings.Contains(string(stderr), "use --overwrite") {
		t.Fatalf("expected overwrite refusal, got %v\n%s", err, stderr)
	}
}
