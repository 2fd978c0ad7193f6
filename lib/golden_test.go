package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenScripts(t *testing.T) {
	scripts, err := ReadScriptsDir("../test/scripts")
	require.NoError(t, err)
	require.NotEmpty(t, scripts)

	for _, script := range scripts {
		script := script
		t.Run(script.Name, func(t *testing.T) {
			result := RunScript(script)
			require.True(t, result.Passed,
				"expected:\n%s\nactual:\n%s\ndiff:\n%s",
				script.Expected, result.Output, Diff(script.Expected, result.Output))
		})
	}
}

func TestRunScriptFailure(t *testing.T) {
	result := RunScript(&Script{
		Name:     "adhoc",
		Code:     "echo 1; echo 2;",
		Expected: "1\n3",
	})
	require.False(t, result.Passed)
	require.NoError(t, result.Err)
	require.Equal(t, "1\n2", result.Output)
	require.NotEqual(t, result.Script.Expected, result.Output)
}

func TestRunScriptError(t *testing.T) {
	result := RunScript(&Script{
		Name:     "adhoc",
		Code:     "echo 1; echo nope;",
		Expected: "1",
	})
	require.False(t, result.Passed)
	require.Error(t, result.Err)
	require.Equal(t, "1\n"+result.Err.Error(), result.Output)
}

func TestDiff(t *testing.T) {
	require.Contains(t, Diff("abc", "abd"), "ab")
	require.Equal(t, "same", Diff("same", "same"))
}

func TestReport(t *testing.T) {
	script := &Script{Name: "adhoc", Dir: "test0_adhoc", Expected: "1"}

	passed := Report(Result{Script: script, Output: "1", Passed: true})
	require.Contains(t, passed, "Running Test: test0_adhoc")
	require.Contains(t, passed, colored(colorGreen, "PASS"))
	require.NotContains(t, passed, "Diff:")

	failed := Report(Result{Script: script, Output: "2"})
	require.Contains(t, failed, colored(colorYellow, "Expected Output:"))
	require.Contains(t, failed, colored(colorCyan, "Actual Output:"))
	require.Contains(t, failed, "Diff:")
	require.Contains(t, failed, colored(colorRed, "FAIL"))
}
