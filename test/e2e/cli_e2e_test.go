package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks its output and exit codes.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	tmpDir := t.TempDir()
	binName := "bncalc"
	if runtime.GOOS == "windows" {
		binName = "bncalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in test/e2e; the build runs from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/bncalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build bncalc: %v", err)
	}

	saved := filepath.Join(tmpDir, "product.bn")

	tests := []struct {
		name     string
		args     []string
		wantOut  string
		wantCode int
	}{
		{"Addition", []string{"--", "-15", "+", "27"}, "-15 + 27 = 12", 0},
		{"Help", []string{"--help"}, "usage", 0},
		{"Verify multiplication", []string{"--verify", "123456789", "x", "987654321"}, "All valid results are consistent", 0},
		{"Quiet mode", []string{"--quiet", "--base", "base16", "ff", "*", "ff"}, "fe01", 0},
		{"Division by zero", []string{"-q", "7", "/", "0"}, "+INF", 0},
		{"High precision", []string{"-q", "--base", "highp", "4294967295", "*", "4294967295"}, "4294967294:1", 0},
		{"Digit budget", []string{"--max-digits", "3", "999", "*", "999"}, "Arithmetic", 5},
		{"Bad operator", []string{"1", "^", "2"}, "unknown operator", 4},
		{"Bad digit", []string{"--base", "base2", "12", "+", "1"}, "Input", 4},
		{"Save", []string{"-q", "--save", saved, "12", "*", "12"}, "144", 0},
		{"Load", []string{"-q", "--load", saved, "ans", "+", "1"}, "145", 0},
		{"Version Flag", []string{"--version"}, "bncalc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("command did not run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("output missing %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
