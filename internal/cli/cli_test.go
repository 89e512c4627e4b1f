package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: stagetimer %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, stderr, stdout)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, stdout, args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope with data key; got:\n%s", stdout)
	}
	return env
}

func TestPresetsLifecycle(t *testing.T) {
	dir := t.TempDir()

	a := mustRun(t, "--dir", dir, "presets", "add", "--name", "Opening", "--duration", "300")
	aID, _ := a["data"].(map[string]any)["id"].(string)
	if aID == "" {
		t.Fatalf("expected preset id, got %#v", a["data"])
	}
	mustRun(t, "--dir", dir, "presets", "add", "--name", "Keynote", "--duration", "1800", "--warn-yellow", "300", "--warn-orange", "60")
	mustRun(t, "--dir", dir, "presets", "add", "--name", "Q&A", "--duration", "600")

	lst := mustRun(t, "--dir", dir, "presets", "list")
	if xs, _ := lst["data"].([]any); len(xs) != 3 {
		t.Fatalf("expected 3 presets, got %#v", lst["data"])
	}

	mustRun(t, "--dir", dir, "presets", "link", aID)
	lst = mustRun(t, "--dir", dir, "presets", "list")
	first := lst["data"].([]any)[0].(map[string]any)
	if linked, _ := first["linkedToNext"].(bool); !linked {
		t.Fatalf("expected first preset linked, got %#v", first)
	}

	mustRun(t, "--dir", dir, "presets", "move", aID, "2")
	lst = mustRun(t, "--dir", dir, "presets", "list")
	last := lst["data"].([]any)[2].(map[string]any)
	if name, _ := last["name"].(string); name != "Opening" {
		t.Fatalf("expected Opening moved last, got %#v", last)
	}

	mustRun(t, "--dir", dir, "presets", "remove", aID)
	lst = mustRun(t, "--dir", dir, "presets", "list")
	if xs, _ := lst["data"].([]any); len(xs) != 2 {
		t.Fatalf("expected 2 presets after removal, got %#v", lst["data"])
	}
}

func TestPresetsLinkLastFails(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "presets", "add", "--name", "Solo", "--duration", "60")
	if _, _, err := runCLI(t, []string{"--dir", dir, "presets", "link", "0"}); err == nil {
		t.Fatalf("expected linking the last preset to fail")
	}
}

func TestPresetsMoveChainUnlinkedAtTail(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "presets", "add", "--name", "A", "--duration", "60")
	mustRun(t, "--dir", dir, "presets", "add", "--name", "B", "--duration", "60")
	mustRun(t, "--dir", dir, "presets", "link", "0")

	// Moving the linked preset to the tail must not leave a dangling link.
	mustRun(t, "--dir", dir, "presets", "move", "0", "1")
	lst := mustRun(t, "--dir", dir, "presets", "list")
	tail := lst["data"].([]any)[1].(map[string]any)
	if linked, _ := tail["linkedToNext"].(bool); linked {
		t.Fatalf("tail preset must never be linked, got %#v", tail)
	}
}

func TestProfilesLifecycle(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, "--dir", dir, "profiles", "create", "evening-show")
	mustRun(t, "--dir", dir, "profiles", "use", "evening-show")

	lst := mustRun(t, "--dir", dir, "profiles", "list")
	if cur, _ := lst["current"].(string); cur != "evening-show" {
		t.Fatalf("expected current profile evening-show, got %#v", lst)
	}

	// Preset commands now target the selected profile.
	mustRun(t, "--dir", dir, "presets", "add", "--name", "Act 1", "--duration", "1200")
	p := mustRun(t, "--dir", dir, "presets", "list")
	if prof, _ := p["profile"].(string); prof != "evening-show" {
		t.Fatalf("expected presets scoped to evening-show, got %#v", p)
	}
}

func TestProfilesCreateDuplicateFails(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "profiles", "create", "main")
	if _, _, err := runCLI(t, []string{"--dir", dir, "profiles", "create", "main"}); err == nil {
		t.Fatalf("expected duplicate create to fail")
	}
}

func TestYAMLOutputFormat(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "--format", "yaml", "profiles", "list"})
	if err != nil {
		t.Fatalf("command failed: %v\nstderr:\n%s", err, stderr)
	}
	if !bytes.Contains(stdout, []byte("current:")) {
		t.Fatalf("expected yaml output, got:\n%s", stdout)
	}
}
