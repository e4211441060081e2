package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
)

// runApp parses args and runs the application. Run sets the global color
// theme, so tests using it do not run in parallel.
func runApp(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	a, err := New(append([]string{"bncalc"}, args...), &errOut)
	if err != nil {
		t.Fatalf("New(%v): %v\n%s", args, err, errOut.String())
	}
	code := a.Run(context.Background(), &out)
	return code, out.String(), errOut.String()
}

func TestRunSingleEvaluation(t *testing.T) {
	code, out, _ := runApp(t, "--no-color", "12", "+", "30")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out)
	}
	for _, want := range []string{"Execution Configuration", "Single evaluation", "12 + 30 = 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunEveryBase(t *testing.T) {
	for _, name := range digits.Names() {
		t.Run(name, func(t *testing.T) {
			code, out, _ := runApp(t, "-q", "--base", name, "1", "+", "1")
			want := "2\n"
			if name == "base2" {
				want = "10\n"
			}
			if code != apperrors.ExitSuccess || out != want {
				t.Errorf("code = %d, output = %q, want %q", code, out, want)
			}
		})
	}
}

func TestRunVerify(t *testing.T) {
	code, out, _ := runApp(t, "--verify", "--metrics", "--details", "--base", "medp", "65535:1", "x", "2:3")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out)
	}
	for _, want := range []string{"Parallel comparison of 4 implementations", "math/big", "All valid results are consistent", "Memory Stats", "--- Metrics ---"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"Digit budget", []string{"-q", "--max-digits", "2", "99", "*", "99"}, apperrors.ExitErrorArithmetic},
		{"Bad digit", []string{"-q", "--base", "base8", "8", "+", "1"}, apperrors.ExitErrorConfig},
		{"Answer without load", []string{"-q", "ans", "+", "1"}, apperrors.ExitErrorConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runApp(t, tt.args...)
			if code != tt.want {
				t.Errorf("exit code = %d, want %d\n%s", code, tt.want, errOut)
			}
		})
	}
}

func TestRunSaveLoadAndOutput(t *testing.T) {
	dir := t.TempDir()
	saved := filepath.Join(dir, "v.bn")
	text := filepath.Join(dir, "v.txt")

	if code, _, errOut := runApp(t, "-q", "--save", saved, "--", "-25", "*", "4"); code != apperrors.ExitSuccess {
		t.Fatalf("save run failed: %d\n%s", code, errOut)
	}

	code, out, _ := runApp(t, "-q", "--load", saved, "-o", text, "ans", "-", "1")
	if code != apperrors.ExitSuccess || out != "-101\n" {
		t.Fatalf("load run: code = %d, output = %q", code, out)
	}
	content, err := os.ReadFile(text)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "ans - 1 =\n-101") {
		t.Errorf("output file = %q", content)
	}

	code, out, _ = runApp(t, "--no-color", "--load", saved)
	if code != apperrors.ExitSuccess || !strings.Contains(out, "ans = -100") {
		t.Errorf("load-only run: code = %d, output:\n%s", code, out)
	}
}

func TestRunREPL(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "ans.bn")
	var out, errOut bytes.Buffer
	a, err := New([]string{"bncalc", "--repl", "--no-color", "--save", saved}, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	a.In = strings.NewReader("6 * 7\nexit\n")

	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "6 * 7 = 42") {
		t.Errorf("REPL output:\n%s", out.String())
	}

	code, quiet, _ := runApp(t, "-q", "--load", saved)
	if code != apperrors.ExitSuccess || quiet != "42\n" {
		t.Errorf("saved answer: code = %d, output = %q", code, quiet)
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runApp(t, "--version")
	if code != apperrors.ExitSuccess || !strings.HasPrefix(out, "bncalc dev") {
		t.Errorf("code = %d, output = %q", code, out)
	}
}

func TestNewErrors(t *testing.T) {
	t.Parallel()
	var errOut bytes.Buffer
	_, err := New([]string{"bncalc", "1", "^", "2"}, &errOut)
	if ExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("ExitCode(%v) = %d", err, ExitCode(err))
	}

	_, err = New([]string{"bncalc", "--help"}, &errOut)
	if !IsHelpError(err) || ExitCode(err) != apperrors.ExitSuccess {
		t.Errorf("help error = %v", err)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{nil, apperrors.ExitSuccess},
		{flag.ErrHelp, apperrors.ExitSuccess},
		{apperrors.NewConfigError("bad"), apperrors.ExitErrorConfig},
		{errors.New("flag provided but not defined: -z"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
