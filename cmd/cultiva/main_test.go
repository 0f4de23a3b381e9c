package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cultiva/internal/culture"
	"github.com/Veraticus/cultiva/internal/model"
)

// runCLI executes the root command against a throwaway database and returns
// what it wrote to stdout.
func runCLI(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLIOutputs(t, dir, stdin, args...)
	return out, err
}

// runCLIOutputs is runCLI that also returns stderr. A config.yaml already
// present in dir is used as is.
func runCLIOutputs(t *testing.T, dir, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		writeConfig(t, dir, filepath.Join(dir, "cultiva.db"))
	}

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))

	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, dir, dbPath string) {
	t.Helper()
	cfg := "database:\n  path: " + dbPath + "\n" +
		"logging:\n  level: error\nestimator:\n  seed: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o600))
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func TestRootCmd(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"icons", "resolve", "estimate", "forecast", "migrate", "version"} {
		assert.NotNil(t, findSubcommand(root, name), "%s subcommand should exist", name)
	}

	icons := findSubcommand(root, "icons")
	require.NotNil(t, icons)
	for _, name := range []string{"list", "add", "delete", "import", "export"} {
		assert.NotNil(t, findSubcommand(icons, name), "icons %s subcommand should exist", name)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cultiva dev")
}

func TestIconsLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "", "icons", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No curated icons yet")

	out, err = runCLI(t, dir, "", "icons", "add", "Igname", "Carrot", "tubercules")
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Igname"`)

	out, err = runCLI(t, dir, "", "resolve", "--json", "igname", "Café arabica", "")
	require.NoError(t, err)
	var resolved []resolveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &resolved))
	require.Len(t, resolved, 3)
	assert.Equal(t, "Carrot", resolved[0].Icon)
	assert.Equal(t, "exact", resolved[0].Source)
	assert.Equal(t, "Coffee", resolved[1].Icon)
	assert.Equal(t, "builtin", resolved[1].Source)
	assert.Equal(t, "Leaf", resolved[2].Icon)
	assert.Equal(t, "default", resolved[2].Source)

	// Declining the confirmation keeps the record
	out, err = runCLI(t, dir, "n\n", "icons", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted")

	out, err = runCLI(t, dir, "", "icons", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Igname")

	out, err = runCLI(t, dir, "", "icons", "delete", "--yes", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted culture icon 1")

	_, err = runCLI(t, dir, "", "icons", "delete", "--yes", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no culture icon with id 1")
}

func TestIconsImportExport(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "icons.yaml")
	doc := `icons:
  - culture_name: Mil
    icon_name: Wheat
    category: cereales
  - culture_name: Gombo
    icon_name: Carrot
    category: legumes
`
	require.NoError(t, os.WriteFile(importPath, []byte(doc), 0o600))

	out, err := runCLI(t, dir, "", "icons", "import", importPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 culture icons")

	out, err = runCLI(t, dir, "", "icons", "export")
	require.NoError(t, err)

	exported, err := culture.ReadRecords(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, exported, 2)
	assert.Equal(t, "Mil", exported[0].CultureName)
	assert.Equal(t, "Gombo", exported[1].CultureName)
	assert.Equal(t, "legumes", exported[1].Category)
}

func TestResolveWithoutDatabase(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))
	writeConfig(t, dir, filepath.Join(blocker, "cultiva.db"))

	out, errOut, err := runCLIOutputs(t, dir, "", "resolve", "Igname")
	require.NoError(t, err)
	assert.Contains(t, out, "Sprout")
	assert.Contains(t, out, "builtin")
	assert.Contains(t, errOut, "using built-in keywords only")
}

func TestIconsAddWarnsOnDuplicate(t *testing.T) {
	dir := t.TempDir()

	_, errOut, err := runCLIOutputs(t, dir, "", "icons", "add", "Igname", "Carrot", "tubercules")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "already curated")

	_, errOut, err = runCLIOutputs(t, dir, "", "icons", "add", "IGNAME", "Sprout", "tubercules")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"Igname" is already curated as id 1 (Carrot)`)

	out, err := runCLI(t, dir, "", "resolve", "igname")
	require.NoError(t, err)
	assert.Contains(t, out, "Sprout")
}

func TestResolveBuiltinOnly(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "resolve", "--builtin", "Pomme de terre")
	require.NoError(t, err)
	assert.Contains(t, out, "Sprout")
	assert.Contains(t, out, "builtin")
}

func TestEstimateCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "", "estimate", "--json", "--amount", "100", "--type", model.TypeLabor, "--month", "8")
	require.NoError(t, err)

	var result model.PredictionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.InDelta(t, 150.0, result.Prediction, 1e-9)
	assert.Equal(t, model.ConfidenceMedium, result.Confidence)

	out, err = runCLI(t, dir, "", "estimate", "--amount", "100", "--type", model.TypeLabor, "--month", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "août")
	assert.Contains(t, out, "150 FCFA")

	_, err = runCLI(t, dir, "", "estimate", "--amount", "100", "--direction", "sideways")
	require.Error(t, err)
}

func TestForecastCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	records := `[
  {"amount": 100, "category": "expense", "type": "Main-d'œuvre", "month": 8},
  {"amount": 200, "category": "income", "month": 3}
]`
	require.NoError(t, os.WriteFile(path, []byte(records), 0o600))

	out, err := runCLI(t, dir, "", "forecast", "--json", path)
	require.NoError(t, err)

	var batch model.BatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	require.Len(t, batch.Results, 2)
	assert.Equal(t, 2, batch.SuccessCount)
	assert.InDelta(t, 150.0, batch.Results[0].Prediction, 1e-9)

	out, err = runCLI(t, dir, "", "forecast", "--no-progress", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 2 records forecast")
}

func TestLoadForecastInputs(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	yamlPath := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`- amount: 5000
  category: income
  type: Récolte
  month: 9
  total_income: 900000
  total_expenses: 700000
`), 0o600))

	inputs, err := loadForecastInputs(ctx, yamlPath)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, model.TypeHarvest, inputs[0].Type)
	assert.Equal(t, model.DirectionIncome, inputs[0].Direction)
	require.NotNil(t, inputs[0].TotalIncome)
	assert.InDelta(t, 900000.0, *inputs[0].TotalIncome, 0)
	assert.Nil(t, inputs[0].Seasonality)

	csvPath := filepath.Join(dir, "records.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("amount\n1\n"), 0o600))
	_, err = loadForecastInputs(ctx, csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = loadForecastInputs(ctx, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestMigrateStatus(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "", "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 0")
	assert.Contains(t, out, "Pending migrations")

	out, err = runCLI(t, dir, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "completed successfully")

	out, err = runCLI(t, dir, "", "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 2")
	assert.NotContains(t, out, "Pending migrations")
}
