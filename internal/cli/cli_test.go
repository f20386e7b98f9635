package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/statemelt/internal/domain"
)

const sixStates = `[
  {"name": "D", "obesity_percentage": 40, "McDonalds": 41, "Starbucks": 42, "Subway": 43, "Taco_Bell": 44},
  {"name": "A", "obesity_percentage": 10, "McDonalds": 11, "Starbucks": 12, "Subway": 13, "Taco_Bell": 14},
  {"name": "F", "obesity_percentage": 60, "McDonalds": 61, "Starbucks": 62, "Subway": 63, "Taco_Bell": 64},
  {"name": "B", "obesity_percentage": 20, "McDonalds": 21, "Starbucks": 22, "Subway": 23, "Taco_Bell": 24},
  {"name": "E", "obesity_percentage": 50, "McDonalds": 51, "Starbucks": 52, "Subway": 53, "Taco_Bell": 54},
  {"name": "C", "obesity_percentage": 30, "McDonalds": 31, "Starbucks": 32, "Subway": 33, "Taco_Bell": 34}
]`

type outRow struct {
	Name              string  `json:"name"`
	ObesityPercentage float64 `json:"obesity_percentage"`
	Restaurant        string  `json:"restaurant"`
	Count             float64 `json:"count"`
}

// isolate runs the test from an empty directory with no STATEMELT_* variables set.
func isolate(t *testing.T) string {
	t.Helper()
	for _, kv := range os.Environ() {
		k, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, "STATEMELT_") {
			t.Setenv(k, "")
			require.NoError(t, os.Unsetenv(k))
		}
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func execute(args ...string) (stdout string, stderr string, err error) {
	cmd := newRootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errb.String(), err
}

func decodeRows(t *testing.T, s string) []outRow {
	t.Helper()
	var rows []outRow
	require.NoError(t, json.Unmarshal([]byte(s), &rows), "stdout: %s", s)
	return rows
}

// --- run ---

func TestRoot_RunsPipelineWithoutSubcommand(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)

	stdout, _, err := execute("--source", p)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(stdout, "\n"), "json output is a single line")

	rows := decodeRows(t, stdout)
	require.Len(t, rows, 20)

	wantNames := []string{"A", "B", "D", "E", "F"}
	for i, r := range rows {
		require.Equal(t, wantNames[i/4], r.Name, "row %d", i)
		require.Equal(t, string(domain.Chains[i%4]), r.Restaurant, "row %d", i)
	}
	require.Equal(t, outRow{Name: "A", ObesityPercentage: 10, Restaurant: "McDonalds", Count: 11}, rows[0])
	require.Equal(t, outRow{Name: "F", ObesityPercentage: 60, Restaurant: "Taco_Bell", Count: 64}, rows[19])
}

func TestRun_KeyOrder(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)

	stdout, _, err := execute("run", "-s", p)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, `[{"name":"A","obesity_percentage":10,"restaurant":"McDonalds","count":11},`), stdout)
}

func TestRun_Deterministic(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)

	first, _, err := execute("run", "-s", p)
	require.NoError(t, err)
	second, _, err := execute("run", "-s", p)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRun_DefaultSourceInWorkingDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "state_obesity_fastfood_data.json", sixStates)

	stdout, _, err := execute()
	require.NoError(t, err)
	require.Len(t, decodeRows(t, stdout), 20)
}

func TestRun_SingleRecordRepeats(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "one.json", `[{"name": "Solo", "obesity_percentage": 30.5, "McDonalds": 1, "Starbucks": 2, "Subway": 3, "Taco_Bell": 4}]`)

	stdout, _, err := execute("run", "-s", p)
	require.NoError(t, err)

	rows := decodeRows(t, stdout)
	require.Len(t, rows, 20)
	for g := 1; g < 5; g++ {
		require.Equal(t, rows[:4], rows[g*4:g*4+4])
	}
}

func TestRun_OutputFile(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)
	dest := filepath.Join(dir, "out", "melted.json")

	stdout, _, err := execute("run", "-s", p, "-o", dest, "-f", "pretty")
	require.NoError(t, err)
	require.Empty(t, stdout)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Contains(t, string(b), "\n  {\n")
	require.Len(t, decodeRows(t, string(b)), 20)
}

func TestRun_TableFormat(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)

	stdout, _, err := execute("run", "-s", p, "--format", "table")
	require.NoError(t, err)
	require.Contains(t, stdout, "RESTAURANT")
	require.Contains(t, stdout, "Taco_Bell")
}

func TestRun_CSVSource(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "states.csv", "name,obesity_percentage,McDonalds,Starbucks,Subway,Taco_Bell\n"+
		"Lo,10,1,2,3,4\nHi,30,5,6,7,8\n")

	stdout, _, err := execute("run", "-s", p)
	require.NoError(t, err)

	rows := decodeRows(t, stdout)
	require.Len(t, rows, 20)
	require.Equal(t, "Lo", rows[0].Name)
	require.Equal(t, "Hi", rows[19].Name)
}

func TestRun_ConfigFileDiscovered(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "wrapped.json", `{"states": `+sixStates+`}`)
	writeFile(t, dir, "statemelt.yaml", `
statemelt:
  source:
    path: wrapped.json
    records_path: $.states
  output:
    format: pretty
`)
	nested := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	stdout, _, err := execute("run")
	require.NoError(t, err)
	require.Contains(t, stdout, "\n  {\n")
	require.Len(t, decodeRows(t, stdout), 20)
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)
	cfg := writeFile(t, dir, "custom.yaml", "statemelt:\n  output:\n    format: table\n")

	stdout, _, err := execute("run", "--config", cfg, "-s", p, "-f", "json")
	require.NoError(t, err)
	require.Len(t, decodeRows(t, stdout), 20)
}

func TestRun_EnvOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)
	t.Setenv("STATEMELT_SOURCE_PATH", p)
	t.Setenv("STATEMELT_OUTPUT_FORMAT", "table")

	stdout, _, err := execute("run")
	require.NoError(t, err)
	require.Contains(t, stdout, "RESTAURANT")
}

func TestRun_DebugLogsToStderr(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)

	stdout, stderr, err := execute("run", "-s", p, "--debug")
	require.NoError(t, err)
	require.Len(t, decodeRows(t, stdout), 20)
	require.Contains(t, stderr, "pipeline.pick")
	require.Contains(t, stderr, "config.resolved")
}

// --- failures: no output emitted ---

func TestRun_MissingSource(t *testing.T) {
	dir := isolate(t)

	stdout, stderr, err := execute("run", "-s", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindNotFound))
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "Error:")
}

func TestRun_MalformedRecord(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "bad.json", `[{"name": "A", "obesity_percentage": 10, "McDonalds": 1, "Starbucks": 2, "Subway": 3}]`)

	stdout, _, err := execute("run", "-s", p)
	require.True(t, domain.IsKind(err, domain.KindInvalidRecord))
	require.Contains(t, err.Error(), "Taco_Bell")
	require.Empty(t, stdout)
}

func TestRun_EmptyInput(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "empty.json", `[]`)

	stdout, _, err := execute("run", "-s", p)
	require.True(t, domain.IsKind(err, domain.KindEmptyInput))
	require.Empty(t, stdout)
}

func TestRun_UnknownFormat(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)

	stdout, _, err := execute("run", "-s", p, "-f", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "xml")
	require.Empty(t, stdout)
}

func TestRun_RejectsPositionalArgs(t *testing.T) {
	isolate(t)

	_, _, err := execute("run", "extra")
	require.Error(t, err)
}

// --- validate ---

func TestValidate_OK(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "six.json", sixStates)

	stdout, _, err := execute("validate", "-s", p)
	require.NoError(t, err)
	require.Contains(t, stdout, "OK: 6 record(s)")
	require.NotContains(t, stdout, "note:")
	require.NotContains(t, stdout, "config:")
}

func TestValidate_ReportsConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "six.json", sixStates)
	writeFile(t, dir, "statemelt.yaml", "statemelt:\n  source:\n    path: six.json\n")

	stdout, _, err := execute("validate")
	require.NoError(t, err)
	require.Contains(t, stdout, "OK: 6 record(s)")
	require.Regexp(t, `(?m)^config: .*statemelt\.yaml$`, stdout)
}

func TestValidate_Degenerate(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "one.json", `[{"name": "Solo", "obesity_percentage": 30, "McDonalds": 1, "Starbucks": 2, "Subway": 3, "Taco_Bell": 4}]`)

	stdout, _, err := execute("validate", "-s", p)
	require.NoError(t, err)
	require.Contains(t, stdout, "OK: 1 record(s)")
	require.Contains(t, stdout, "note: only 1-3 records; sampled states will repeat")
}

func TestValidate_Invalid(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "bad.json", `[{"name": "A", "obesity_percentage": "x", "McDonalds": 1, "Starbucks": 2, "Subway": 3, "Taco_Bell": 4}]`)

	stdout, _, err := execute("validate", "-s", p)
	require.Error(t, err)
	require.Empty(t, stdout)
}

// --- version / structure ---

func TestVersion(t *testing.T) {
	stdout, _, err := execute("version")
	require.NoError(t, err)
	require.Contains(t, stdout, "statemelt dev")
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Use] = true
	}
	for _, expected := range []string{"run", "validate", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

func TestRunCmd_Flags(t *testing.T) {
	cmd := runCmd(&globalFlags{})
	if cmd.Use != "run" {
		t.Errorf("expected Use=run, got %q", cmd.Use)
	}
	for _, flag := range []string{"source", "source-format", "records-path", "table", "output", "format"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on run command", flag)
		}
	}
}

func TestValidateCmd_Flags(t *testing.T) {
	cmd := validateCmd(&globalFlags{})
	for _, flag := range []string{"source", "source-format", "records-path", "table"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on validate command", flag)
		}
	}
	if cmd.Flags().Lookup("output") != nil {
		t.Error("validate must not accept --output")
	}
}
