package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bncalc/internal/bignum"
	"github.com/agbru/bncalc/internal/digits"
	"github.com/agbru/bncalc/internal/magnitude"
	"github.com/agbru/bncalc/internal/metrics"
)

func newTestREPL(input string) (*REPL[uint8, digits.Base10], *bytes.Buffer) {
	r := NewREPL[uint8, digits.Base10](REPLConfig{
		Base:    "base10",
		Timeout: time.Minute,
	})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	return r, &out
}

func TestREPLSession(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL("12 + 30\nans * 2\n- 100\n")
	r.Start()

	output := out.String()
	for _, want := range []string{"bncalc interactive mode", "12 + 30 = 42", "ans * 2 = 84", "ans - 100 = -16", "Goodbye!"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got:\n%s", want, output)
		}
	}
	if got := r.Answer().String(); got != "-16" {
		t.Errorf("Answer() = %s, want -16", got)
	}
}

func TestREPLProcessCommand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		contains string
		wantAns  string
	}{
		{"Bare value", "-77", "-77 = -77", "-77"},
		{"Division by zero", "5 / 0", "5 / 0 = +INF", "+INF"},
		{"Remainder", "17 % 5", "17 % 5 = 2", "2"},
		{"Comparison", "3 cmp 9", "3 cmp 9 = -1", "-1"},
		{"NaN operand", "nan + 1", "= NaN", "NaN"},
		{"Unknown operator", "3 ^ 9", "Unknown operator: ^", "0"},
		{"Bad digit", "12a + 1", "Error:", "0"},
		{"Too many tokens", "1 + 2 + 3", "Unrecognized input", "0"},
		{"Help", "help", "Available commands", "0"},
		{"Status", "status", "base10", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, out := newTestREPL("")
			if !r.processCommand(tt.input) {
				t.Fatal("processCommand asked to exit")
			}
			if !strings.Contains(out.String(), tt.contains) {
				t.Errorf("output should contain %q, got:\n%s", tt.contains, out.String())
			}
			if got := r.Answer().String(); got != tt.wantAns {
				t.Errorf("Answer() = %s, want %s", got, tt.wantAns)
			}
		})
	}
}

func TestREPLExit(t *testing.T) {
	t.Parallel()
	for _, cmd := range []string{"exit", "quit", "q", "EXIT"} {
		r, _ := newTestREPL("")
		if r.processCommand(cmd) {
			t.Errorf("%q should end the session", cmd)
		}
	}
}

func TestREPLAlgoAndBudget(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL("")

	r.processCommand("algo naive")
	if r.config.Multiplier.Algorithm != magnitude.Naive {
		t.Errorf("algorithm = %v, want naive", r.config.Multiplier.Algorithm)
	}
	r.processCommand("algo bogus")
	if !strings.Contains(out.String(), "unknown multiplication algorithm") {
		t.Errorf("missing algorithm error in %q", out.String())
	}

	r.processCommand("budget 3")
	if r.config.MaxDigits != 3 {
		t.Errorf("MaxDigits = %d, want 3", r.config.MaxDigits)
	}
	out.Reset()
	r.processCommand("999 * 999")
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("expected a budget error, got %q", out.String())
	}
	r.processCommand("budget -1")
	if !strings.Contains(out.String(), "Invalid budget") {
		t.Errorf("missing budget error in %q", out.String())
	}
}

func TestREPLRecordsMetrics(t *testing.T) {
	t.Parallel()
	rec := metrics.NewRecorder()
	r := NewREPL[uint32, digits.HighPrecision](REPLConfig{Base: "highp", Timeout: time.Minute, Recorder: rec})
	r.SetOutput(&bytes.Buffer{})

	r.processCommand("4294967295 * 4294967295")
	r.processCommand("1 / 0")

	snap, err := rec.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.FFTFallbacks != 1 {
		t.Errorf("FFTFallbacks = %d, want 1", snap.FFTFallbacks)
	}
	if len(snap.Operations) != 2 {
		t.Errorf("operations = %+v", snap.Operations)
	}
}

func TestREPLSaveLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ans.bn")

	r, _ := newTestREPL("")
	r.SetAnswer(bignum.MustParse[uint8, digits.Base10]("-123456789"))
	r.processCommand("save " + path)

	other, out := newTestREPL("")
	other.processCommand("load " + path)
	if got := other.Answer().String(); got != "-123456789" {
		t.Errorf("loaded answer = %s", got)
	}
	if !strings.Contains(out.String(), "ans = -123456789") {
		t.Errorf("load output = %q", out.String())
	}

	out.Reset()
	other.processCommand("load " + filepath.Join(t.TempDir(), "missing"))
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("expected an error, got %q", out.String())
	}
}

func TestREPLLoadRespectsBudget(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "big.bn")
	if err := SaveBinary(path, bignum.MustParse[uint8, digits.Base10]("123456789")); err != nil {
		t.Fatal(err)
	}

	r, out := newTestREPL("")
	r.processCommand("budget 4")
	out.Reset()
	r.processCommand("load " + path)
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("expected a budget error, got %q", out.String())
	}
	if got := r.Answer().String(); got != "0" {
		t.Errorf("answer changed to %s", got)
	}
}
