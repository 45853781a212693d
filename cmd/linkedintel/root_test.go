package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaskoefod/linkedintel/internal/config"
	"github.com/thomaskoefod/linkedintel/internal/export"
	"github.com/thomaskoefod/linkedintel/internal/report"
	"github.com/thomaskoefod/linkedintel/pkg/models"
)

// =============================================================================
// Helpers
// =============================================================================

// execute runs the root command with args against a config file that does not
// exist, so every run starts from the built-in defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dataDir, selfName, logLevel = "", "", ""
	reportOutput, reportRaw, reportExample = "", false, false
	warmPathRaw, resurrectRaw = false, false
	scoreJSON, scoreRaw = false, false
	configForce = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "export")
	require.NoError(t, export.WriteSample(dir))
	return dir
}

// =============================================================================
// Definitions
// =============================================================================

func TestRootCmd_Definition(t *testing.T) {
	t.Run("command is defined", func(t *testing.T) {
		assert.Equal(t, "linkedintel", rootCmd.Use)
		assert.True(t, rootCmd.SilenceUsage)
	})

	t.Run("has persistent flags", func(t *testing.T) {
		pflags := rootCmd.PersistentFlags()

		dataFlag := pflags.Lookup("data")
		require.NotNil(t, dataFlag)
		assert.Equal(t, "d", dataFlag.Shorthand)

		require.NotNil(t, pflags.Lookup("config"))
		require.NotNil(t, pflags.Lookup("self"))
		require.NotNil(t, pflags.Lookup("log-level"))
	})

	t.Run("has subcommands", func(t *testing.T) {
		found := map[string]bool{}
		for _, cmd := range rootCmd.Commands() {
			found[cmd.Name()] = true
		}
		for _, name := range []string{"report", "warm-path", "resurrect", "score", "sample", "dashboard", "config"} {
			assert.True(t, found[name], "%s subcommand should exist", name)
		}
	})
}

func TestReportCmd_Definition(t *testing.T) {
	flags := reportCmd.Flags()

	outputFlag := flags.Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	rawFlag := flags.Lookup("raw")
	require.NotNil(t, rawFlag)
	assert.Equal(t, "false", rawFlag.DefValue)

	require.NotNil(t, flags.Lookup("example"))
}

// =============================================================================
// Execution
// =============================================================================

func TestSampleCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sample")

	out, err := execute(t, "sample", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Sample export written to "+dir)
	assert.FileExists(t, filepath.Join(dir, export.ConnectionsFile))
	assert.FileExists(t, filepath.Join(dir, export.MessagesFile))
}

func TestReportCmd(t *testing.T) {
	data := sampleDir(t)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "report", "-d", data, "-o", outDir, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# LinkedIn Network Intelligence Report")
	assert.Contains(t, out, "| Total Connections | 10 |")

	saved, err := os.ReadFile(filepath.Join(outDir, report.NetworkFilename))
	require.NoError(t, err)
	assert.Equal(t, out, string(saved))
}

func TestReportCmd_Example(t *testing.T) {
	outDir := t.TempDir()

	out, err := execute(t, "report", "--example", "-o", outDir, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "**Connections Analyzed**: 10")
	assert.DirExists(t, filepath.Join(outDir, SampleDirName))
	assert.FileExists(t, filepath.Join(outDir, report.NetworkFilename))
}

func TestReportCmd_Rendered(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("report:\n  style: notty\n"), 0644))

	out, err := execute(t, "--config", cfgPath, "report", "-d", sampleDir(t), "-o", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "Mike Torres")
}

func TestReportCmd_NoDataDir(t *testing.T) {
	_, err := execute(t, "report", "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no export directory")
}

func TestReportCmd_DataDirMissing(t *testing.T) {
	_, err := execute(t, "report", "-d", filepath.Join(t.TempDir(), "nope"), "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening export directory")
}

func TestWarmPathCmd(t *testing.T) {
	data := sampleDir(t)
	t.Chdir(t.TempDir())

	out, err := execute(t, "warm-path", "stripe", "-d", data, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# Warm Path Discovery: stripe")
	assert.Contains(t, out, "Sarah Chen")
	assert.FileExists(t, filepath.Join("output", "warm_path_stripe.md"))

	out, err = execute(t, "warm-path", "Initech", "Corp", "-d", data, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "No direct connections found at Initech Corp.")
}

func TestResurrectCmd_Definition(t *testing.T) {
	assert.Equal(t, "resurrect", resurrectCmd.Use)
	assert.Contains(t, resurrectCmd.Long, "most recent first")
	assert.NotContains(t, resurrectCmd.Long, "oldest first")
}

func TestResurrectCmd(t *testing.T) {
	out, err := execute(t, "resurrect", "-d", sampleDir(t), "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# Conversation Resurrection Opportunities")
}

func TestScoreCmd_JSON(t *testing.T) {
	out, err := execute(t, "score", "mike", "torres", "-d", sampleDir(t), "--json")
	require.NoError(t, err)

	var score models.RelationshipScore
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.Equal(t, "Mike Torres", score.Name)
	assert.Equal(t, "Acme Corp", score.Company)
	assert.Equal(t, 1, score.RecommendationsReceived)
}

func TestScoreCmd_Unknown(t *testing.T) {
	_, err := execute(t, "score", "Nobody Here", "-d", sampleDir(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no connection named "Nobody Here"`)
}

func TestConfigInitCmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "--config", cfgPath, "config", "init", "-d", "/exports/linkedin", "--self", "Ada Lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "Config written to "+cfgPath)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "/exports/linkedin", cfg.Export.DataDir)
	assert.Equal(t, "Ada Lovelace", cfg.Identity.Self)

	_, err = execute(t, "--config", cfgPath, "config", "init")
	assert.ErrorIs(t, err, config.ErrConfigExists)

	_, err = execute(t, "--config", cfgPath, "config", "init", "--force", "--self", "Grace Hopper")
	require.NoError(t, err)
	cfg, err = config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", cfg.Identity.Self)
}
