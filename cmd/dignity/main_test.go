package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/dignity-planner/internal/domain"
)

// run executes the CLI with isolated settings and returns stdout.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DIGNITY_DB_PATH", filepath.Join(dataDir, "dignity.db"))
	t.Setenv("DIGNITY_CACHE_DIR", filepath.Join(dataDir, "cache"))
	t.Setenv("DIGNITY_IDENTITY", "household")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(dataDir, "missing.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeExample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "example.yaml")
	_, err := run(t, dir, "example", "--out", path)
	require.NoError(t, err)
	return path
}

func TestExamplePrintsParsableYAML(t *testing.T) {
	out, err := run(t, t.TempDir(), "example")
	require.NoError(t, err)
	assert.Contains(t, out, "target_retirement_age: 58")
	assert.Contains(t, out, "liquid_assets:")
}

func TestProjectConsole(t *testing.T) {
	dir := t.TempDir()
	path := writeExample(t, dir)

	out, err := run(t, dir, "project", "--config", path, "--base-year", "2025", "--currency", "USD")
	require.NoError(t, err)
	assert.Contains(t, out, "DIGNITY PLAN SUMMARY")
	assert.Contains(t, out, "Household: Example Household")
	assert.Contains(t, out, "2055")
	assert.Contains(t, out, "$")
}

func TestProjectJSONToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeExample(t, dir)
	outPath := filepath.Join(dir, "report.json")

	_, err := run(t, dir, "project", "-c", path, "-f", "json", "-o", outPath, "--base-year", "2025")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var report domain.PlanReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Len(t, report.Projections, 31)
	assert.Equal(t, 2025, report.Projections[0].Year)
	assert.Equal(t, 16, report.YearsToRetirement)
}

func TestProjectReportDir(t *testing.T) {
	dir := t.TempDir()
	path := writeExample(t, dir)
	reports := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(reports, 0o755))

	out, err := run(t, dir, "project", "-c", path, "-f", "all", "--report-dir", reports)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Wrote"))
}

func TestProjectRequiresOneSource(t *testing.T) {
	_, err := run(t, t.TempDir(), "project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of --config or --identity")
}

func TestProjectUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeExample(t, dir)
	_, err := run(t, dir, "project", "-c", path, "-f", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestStoreSaveShowListAndProjectByIdentity(t *testing.T) {
	dir := t.TempDir()
	path := writeExample(t, dir)

	out, err := run(t, dir, "store", "save", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved snapshot for household")

	out, err = run(t, dir, "store", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Example Household")

	out, err = run(t, dir, "store", "list")
	require.NoError(t, err)
	assert.Equal(t, "household\n", out)

	out, err = run(t, dir, "project", "--identity", "household", "-f", "csv", "--base-year", "2025")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "YearIndex,Year,Age,Phase"))
	assert.Equal(t, 32, strings.Count(out, "\n"))
}

func TestStoreShowUnknownIdentity(t *testing.T) {
	_, err := run(t, t.TempDir(), "store", "show", "--identity", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody")
}
