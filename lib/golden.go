package lib

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Result is the outcome of running one golden test case.
type Result struct {
	Script  *Script
	Output  string
	Err     error
	Passed  bool
	Elapsed time.Duration
}

// RunScript executes a test case in-process and compares its output with the
// expected result. Both sides are trimmed of surrounding whitespace. When the
// script fails, the error message becomes the last line of the output, so a
// case can expect an error.
func RunScript(script *Script) Result {
	var out bytes.Buffer
	start := time.Now()
	_, err := Run(script.Code, &out)
	elapsed := time.Since(start)

	if err != nil {
		out.WriteString(err.Error())
		out.WriteString("\n")
	}

	output := strings.TrimSpace(out.String())
	return Result{
		Script:  script,
		Output:  output,
		Err:     err,
		Passed:  output == script.Expected,
		Elapsed: elapsed,
	}
}

// Diff renders the difference between the expected and actual output with
// terminal colours.
func Diff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// Terminal colours, the same escapes diffmatchpatch uses for its pretty text.
const (
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
	colorReset  = "\x1b[0m"
)

func colored(color, text string) string {
	return color + text + colorReset
}

// Report renders a result the way the golden runner prints it: the expected
// and actual output, a diff when they differ, and a coloured verdict.
func Report(result Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nRunning Test: %s ...\n", result.Script.Dir)
	fmt.Fprintf(&b, "\n%s\n%s\n", colored(colorYellow, "Expected Output:"), result.Script.Expected)
	fmt.Fprintf(&b, "\n%s\n%s\n", colored(colorCyan, "Actual Output:"), result.Output)

	if result.Passed {
		fmt.Fprintf(&b, "\n%s (%s)\n", colored(colorGreen, "PASS"), result.Elapsed)
		return b.String()
	}

	fmt.Fprintf(&b, "\nDiff:\n%s\n", Diff(result.Script.Expected, result.Output))
	fmt.Fprintf(&b, "\n%s (%s)\n", colored(colorRed, "FAIL"), result.Elapsed)
	return b.String()
}
