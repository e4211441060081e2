package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bncalc/internal/bignum"
	"github.com/agbru/bncalc/internal/digits"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/format"
	"github.com/agbru/bncalc/internal/logging"
	"github.com/agbru/bncalc/internal/magnitude"
	"github.com/agbru/bncalc/internal/metrics"
	"github.com/agbru/bncalc/internal/orchestration"
	"github.com/agbru/bncalc/internal/ui"
)

// AnswerToken names the last result in REPL expressions.
const AnswerToken = "ans"

// replOperators are the operators understood by the REPL.
var replOperators = []string{"+", "-", "*", "x", "/", "%", "cmp"}

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Base is the name of the digit configuration, shown in the banner.
	Base       string
	Multiplier magnitude.Multiplier
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// MaxDigits is the digit budget of every value read or computed.
	MaxDigits int
	// Recorder, when set, counts evaluations and FFT fallbacks.
	Recorder *metrics.Recorder
	// Logger receives one debug entry per evaluation. Nil disables it.
	Logger logging.Logger
}

// REPL is an interactive calculator over the digit configuration D, L.
type REPL[D digits.Digit, L digits.Limits[D]] struct {
	config REPLConfig
	ans    *bignum.Bignum[D, L]
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a REPL whose answer register starts at zero.
func NewREPL[D digits.Digit, L digits.Limits[D]](config REPLConfig) *REPL[D, L] {
	return &REPL[D, L]{
		config: config,
		ans:    bignum.Zero[D, L](bignum.WithMaxDigits(config.MaxDigits)),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL[D, L]) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL[D, L]) SetOutput(out io.Writer) {
	r.out = out
}

// SetAnswer stores a copy of v in the answer register.
func (r *REPL[D, L]) SetAnswer(v *bignum.Bignum[D, L]) {
	r.ans = v.Clone().SetMaxDigits(r.config.MaxDigits)
}

// Answer returns a copy of the answer register.
func (r *REPL[D, L]) Answer() *bignum.Bignum[D, L] {
	return r.ans.Clone()
}

// Start reads and evaluates lines until exit or EOF.
func (r *REPL[D, L]) Start() {
	fmt.Fprintln(r.out, ui.Banner("bncalc interactive mode",
		fmt.Sprintf("base %s (radix %d), multiplication %s", r.config.Base, digits.Radix[D, L](), r.config.Multiplier.Algorithm)))
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"bn> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(input) {
			return
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
	}
}

func (r *REPL[D, L]) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<x> <op> <y>%s     - Evaluate an expression (op: %s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(replOperators, " "))
	fmt.Fprintf(r.out, "  %s<op> <y>%s         - Apply op to the last result\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<x>%s              - Store a value as the last result\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo [name]%s      - Show or change the multiplication algorithm (fft, naive, auto)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbudget [n]%s       - Show or change the digit budget\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssave <path>%s      - Write the last result in binary form\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sload <path>%s      - Read a binary value into the last result\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "The last result is available as %s%s%s.\n", ui.ColorCyan(), AnswerToken, ui.ColorReset())
}

// processCommand runs one input line. It returns false if the REPL should
// exit.
func (r *REPL[D, L]) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "algo":
		r.cmdAlgo(args)
	case "budget", "digits":
		r.cmdBudget(args)
	case "save":
		r.cmdSave(args)
	case "load":
		r.cmdLoad(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(parts)
	}
	return true
}

// evaluate handles the expression forms: x, op y and x op y.
func (r *REPL[D, L]) evaluate(parts []string) {
	var xs, op, ys string
	switch len(parts) {
	case 1:
		v, err := r.operand(parts[0])
		if err != nil {
			r.printError(err)
			return
		}
		r.ans = v
		r.printValue(parts[0], v.String(), 0)
		return
	case 2:
		xs, op, ys = AnswerToken, strings.ToLower(parts[0]), parts[1]
	case 3:
		xs, op, ys = parts[0], strings.ToLower(parts[1]), parts[2]
	default:
		fmt.Fprintf(r.out, "%sUnrecognized input. Type %shelp%s%s for the accepted forms.%s\n",
			ui.ColorRed(), ui.ColorYellow(), ui.ColorReset(), ui.ColorRed(), ui.ColorReset())
		return
	}

	if !slices.Contains(replOperators, op) {
		fmt.Fprintf(r.out, "%sUnknown operator: %s%s\n", ui.ColorRed(), op, ui.ColorReset())
		return
	}
	x, err := r.operand(xs)
	if err != nil {
		r.printError(err)
		return
	}
	y, err := r.operand(ys)
	if err != nil {
		r.printError(err)
		return
	}

	operation := orchestration.BinaryOperation[D, L]{
		Op: op, X: x, Y: y,
		Evaluator: orchestration.Evaluator[D, L]{
			Multiplier:    r.config.Multiplier,
			OnFFTFallback: r.config.Recorder.FFTFallback,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	start := time.Now()
	value, err := operation.Execute(ctx, nil)
	duration := time.Since(start)
	r.config.Recorder.Observe(op, duration, err)
	if r.config.Logger != nil {
		r.config.Logger.Debug("evaluated",
			logging.String("op", op),
			logging.Int("x_digits", x.Len()),
			logging.Int("y_digits", y.Len()),
			logging.Duration("duration", duration))
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: op, Limit: r.config.Timeout}
		}
		r.printError(apperrors.CalculationError{Expression: strings.Join([]string{xs, op, ys}, " "), Cause: err})
		return
	}

	z, err := bignum.Parse[D, L](value, bignum.WithMaxDigits(r.config.MaxDigits))
	if err != nil {
		r.printError(err)
		return
	}
	r.ans = z
	r.printValue(fmt.Sprintf("%s %s %s", xs, op, ys), value, duration)
}

// operand resolves a token to a value: the answer register or a number in
// digit-list notation.
func (r *REPL[D, L]) operand(tok string) (*bignum.Bignum[D, L], error) {
	if strings.EqualFold(tok, AnswerToken) {
		return r.ans.Clone(), nil
	}
	return bignum.Parse[D, L](tok, bignum.WithMaxDigits(r.config.MaxDigits))
}

func (r *REPL[D, L]) printValue(expr, value string, duration time.Duration) {
	if duration > 0 {
		fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	}
	if n := DigitCount(value, digits.Radix[D, L]()); n > 0 {
		fmt.Fprintf(r.out, "  Digits: %s%d%s\n", ui.ColorCyan(), n, ui.ColorReset())
	}
	limit := max(TruncationLimit, ui.TerminalWidth(r.out, 0)-len(expr)-5)
	if short, cut := format.TruncateMiddle(value, limit, DisplayEdges); cut {
		fmt.Fprintf(r.out, "  %s = %s%s%s (truncated)\n", expr, ui.ColorGreen(), short, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "  %s = %s%s%s\n", expr, ui.ColorGreen(), value, ui.ColorReset())
}

func (r *REPL[D, L]) printError(err error) {
	fmt.Fprintln(r.out, ui.Paint(ui.RoleError, "Error: "+err.Error()))
}

// ─────────────────────────────────────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────────────────────────────────────

func (r *REPL[D, L]) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Multiplication algorithm: %s%s%s\n", ui.ColorCyan(), r.config.Multiplier.Algorithm, ui.ColorReset())
		return
	}
	algo, err := magnitude.ParseAlgorithm(args[0])
	if err != nil {
		r.printError(err)
		return
	}
	r.config.Multiplier.Algorithm = algo
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), algo, ui.ColorReset())
}

func (r *REPL[D, L]) cmdBudget(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Digit budget: %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(r.config.MaxDigits)), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		fmt.Fprintf(r.out, "%sInvalid budget: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.config.MaxDigits = n
	r.ans.SetMaxDigits(n)
	fmt.Fprintf(r.out, "Digit budget changed to: %s%s%s\n", ui.ColorGreen(), format.FormatNumberString(args[0]), ui.ColorReset())
}

func (r *REPL[D, L]) cmdSave(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: save <path>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if err := SaveBinary(args[0], r.ans); err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "Saved %s to %s%s%s\n", AnswerToken, ui.ColorCyan(), args[0], ui.ColorReset())
}

func (r *REPL[D, L]) cmdLoad(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: load <path>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	v := bignum.Zero[D, L](bignum.WithMaxDigits(r.config.MaxDigits))
	if err := LoadBinary(args[0], v); err != nil {
		r.printError(err)
		return
	}
	r.SetAnswer(v)
	r.printValue(AnswerToken, v.String(), 0)
}

func (r *REPL[D, L]) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Base:           %s%s%s (radix %d)\n", ui.ColorCyan(), r.config.Base, ui.ColorReset(), digits.Radix[D, L]())
	fmt.Fprintf(r.out, "  Algorithm:      %s%s%s\n", ui.ColorCyan(), r.config.Multiplier.Algorithm, ui.ColorReset())
	fmt.Fprintf(r.out, "  FFT Threshold:  %s%d%s digits\n", ui.ColorCyan(), r.config.Multiplier.Threshold, ui.ColorReset())
	fmt.Fprintf(r.out, "  Digit budget:   %s%d%s\n", ui.ColorCyan(), r.config.MaxDigits, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Last result:    %s%s digits%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(r.ans.Len())), ui.ColorReset())
	fmt.Fprintln(r.out)
}
