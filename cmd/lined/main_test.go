package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes lined in a fresh temp directory so no lined.toml above the
// test tree is picked up.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--color=off"}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestStat(t *testing.T) {
	inTempDir(t)
	writeFile(t, "a.txt", "a\nbb\n")

	out, _, err := runCLI(t, "stat", "a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if out != "a.txt: 2 lines, 5 bytes (max 33554432 total, 65536 per line)\n" {
		t.Fatalf("stat = %q", out)
	}

	out, _, err = runCLI(t, "--format=json", "stat", "a.txt")
	if err != nil {
		t.Fatal(err)
	}
	var payload statPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if payload.Lines != 2 || payload.Bytes != 5 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestGetLine(t *testing.T) {
	inTempDir(t)
	writeFile(t, "a.txt", "first\nsecond\n")

	out, _, err := runCLI(t, "get", "a.txt", "0")
	if err != nil || out != "first\n" {
		t.Fatalf("get 0 = %q, %v", out, err)
	}

	_, stderr, err := runCLI(t, "get", "a.txt", "5")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if stderr != "error[BUF5003]: a.txt: getLine: Line 5 does not exist.\n" {
		t.Fatalf("stderr = %q", stderr)
	}

	_, stderr, err = runCLI(t, "--format=short", "get", "a.txt", "3")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if stderr != "error BUF5003 a.txt getLine: Line 3 does not exist\n" {
		t.Fatalf("short stderr = %q", stderr)
	}

	if _, _, err := runCLI(t, "get", "a.txt", "two"); err == nil || !strings.Contains(err.Error(), "invalid line") {
		t.Fatalf("bad number: %v", err)
	}
}

func TestShow(t *testing.T) {
	inTempDir(t)
	writeFile(t, "a.txt", "one\ntwo\nthree is long\nfour\n")

	out, _, err := runCLI(t, "show", "--from=2", "--to=3", "-n", "--width=9", "a.txt")
	if err != nil {
		t.Fatal(err)
	}
	// width 9 minus the "3  " prefix leaves 6 cells
	if out != "2  two\n3  thr...\n" {
		t.Fatalf("show = %q", out)
	}
}

func TestEditCommandsWriteInPlaceOrOut(t *testing.T) {
	inTempDir(t)
	writeFile(t, "a.txt", "abc\n")

	if _, _, err := runCLI(t, "insert-string", "a.txt", "1", "2", "X", "--out", "b.txt"); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, "b.txt"); got != "aXbc\n" {
		t.Fatalf("b.txt = %q", got)
	}
	if got := readFile(t, "a.txt"); got != "abc\n" {
		t.Fatalf("a.txt changed: %q", got)
	}

	steps := [][]string{
		{"append-line", "a.txt", "tail"},
		{"insert-line", "a.txt", "1", "head"},
		{"append-string", "a.txt", "2", "!"},
		{"remove-line", "a.txt", "3"},
	}
	for _, args := range steps {
		if _, stderr, err := runCLI(t, args...); err != nil {
			t.Fatalf("%v: %v\n%s", args, err, stderr)
		}
	}
	if got := readFile(t, "a.txt"); got != "head\nabc!\n" {
		t.Fatalf("a.txt = %q", got)
	}
}

func TestEditRejectedLeavesFile(t *testing.T) {
	inTempDir(t)
	writeFile(t, "a.txt", "0123456789\n")

	_, stderr, err := runCLI(t, "--max-total-bytes=15", "--max-line-bytes=10", "append-line", "a.txt", "toolong")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "error[BUF5001]") || !strings.Contains(stderr, "max total bytes - 15") {
		t.Fatalf("stderr = %q", stderr)
	}
	if got := readFile(t, "a.txt"); got != "0123456789\n" {
		t.Fatalf("a.txt = %q", got)
	}
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	inTempDir(t)
	writeFile(t, "lined.toml", "[limits]\nmax_total_bytes = 8\nmax_line_bytes = 4\n")
	writeFile(t, "a.txt", "abc\n")

	if _, _, err := runCLI(t, "append-string", "a.txt", "1", "de"); !errors.Is(err, errReported) {
		t.Fatalf("config limit not applied: %v", err)
	}
	if _, stderr, err := runCLI(t, "--max-line-bytes=8", "append-string", "a.txt", "1", "de"); err != nil {
		t.Fatalf("flag override: %v\n%s", err, stderr)
	}
	if got := readFile(t, "a.txt"); got != "abcde\n" {
		t.Fatalf("a.txt = %q", got)
	}
}

func TestCopy(t *testing.T) {
	inTempDir(t)
	writeFile(t, "src.txt", "x\ny")

	out, _, err := runCLI(t, "copy", "src.txt", "dst.txt")
	if err != nil {
		t.Fatal(err)
	}
	if out != "dst.txt: 2 lines, 4 bytes\n" {
		t.Fatalf("out = %q", out)
	}
	if got := readFile(t, "dst.txt"); got != "x\ny\n" {
		t.Fatalf("dst = %q", got)
	}
}

func TestApply(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, "edits.toml", "[[edit]]\nop = \"insert-line\"\nline = 1\ntext = \"# top\"\n")
	writeFile(t, "a.txt", "a\n")
	writeFile(t, "b.txt", "b\n")

	_, stderr, err := runCLI(t, "apply", "--ui=off", "--out-dir", filepath.Join(dir, "out"), "edits.toml", "a.txt", "b.txt", "missing.txt")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "error[IO4001]: missing.txt: load: File does not exist.") {
		t.Fatalf("stderr = %q", stderr)
	}
	for _, name := range []string{"a.txt", "b.txt"} {
		want := "# top\n" + strings.TrimSuffix(name, ".txt") + "\n"
		if got := readFile(t, filepath.Join("out", name)); got != want {
			t.Fatalf("%s = %q", name, got)
		}
	}
}

func TestApplyRejectsInvalidScript(t *testing.T) {
	inTempDir(t)
	writeFile(t, "edits.toml", "[[edit]]\nop = \"rewrite\"\n")
	writeFile(t, "a.txt", "a\n")

	_, stderr, err := runCLI(t, "apply", "--ui=off", "edits.toml", "a.txt")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "error[SCR6001]: edits.toml: check: edit 1 is invalid.") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	inTempDir(t)
	writeFile(t, "a.txt", "one\ntwo\n")

	if _, stderr, err := runCLI(t, "snapshot", "save", "a.txt", "a.snap"); err != nil {
		t.Fatalf("save: %v\n%s", err, stderr)
	}
	writeFile(t, "a.txt", "changed\n")

	if _, stderr, err := runCLI(t, "snapshot", "restore", "a.snap", "--to", "restored.txt"); err != nil {
		t.Fatalf("restore: %v\n%s", err, stderr)
	}
	if got := readFile(t, "restored.txt"); got != "one\ntwo\n" {
		t.Fatalf("restored = %q", got)
	}

	out, _, err := runCLI(t, "--format=json", "snapshot", "inspect", "a.snap")
	if err != nil {
		t.Fatal(err)
	}
	var info inspectPayload
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatal(err)
	}
	if info.Path != "a.txt" || info.Lines != 2 || info.Bytes != 8 || len(info.SHA256) != 64 {
		t.Fatalf("inspect = %+v", info)
	}

	writeFile(t, "bad.snap", "garbage")
	_, stderr, err := runCLI(t, "snapshot", "inspect", "bad.snap")
	if !errors.Is(err, errReported) || !strings.Contains(stderr, "error[SNP7001]") {
		t.Fatalf("inspect garbage = %v, %q", err, stderr)
	}
}

func TestVerboseAndQuiet(t *testing.T) {
	inTempDir(t)
	writeFile(t, "a.txt", "a\n")

	_, stderr, err := runCLI(t, "--verbose", "stat", "a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "info: a.txt: load: Read a.txt Successful: 2 bytes, 1 lines.") {
		t.Fatalf("stderr = %q", stderr)
	}

	out, _, err := runCLI(t, "--quiet", "append-line", "a.txt", "b")
	if err != nil || out != "" {
		t.Fatalf("quiet = %q, %v", out, err)
	}

	if _, _, err := runCLI(t, "--quiet", "--verbose", "stat", "a.txt"); err == nil {
		t.Fatal("--quiet with --verbose accepted")
	}
}

func TestVersionJSON(t *testing.T) {
	inTempDir(t)
	out, _, err := runCLI(t, "--format=json", "version")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "lined" || payload.Version == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestProfileFlagsWriteFiles(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, "a.txt", "a\n")

	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	if _, _, err := runCLI(t, "--cpu-profile", cpu, "--mem-profile", mem, "stat", "a.txt"); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{cpu, mem} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("profile %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("profile %s is empty", path)
		}
	}
}

// chdir changes the working directory for the duration of the test,
// restoring the previous one on cleanup (stand-in for testing.T.Chdir,
// which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
