package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PCTRACK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Veri_Kayitlari", cfg.Paths.DataDir)
	assert.Equal(t, 7, cfg.Pipeline.MinIDLength)
	assert.Equal(t, 11, cfg.Pipeline.OutcomeFlags)
	assert.Equal(t, "MEZUN_LISTESI.xlsx", cfg.Pipeline.RosterFileName)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
pipeline:
  min_id_length: 9
  roster_file_name: GRADUATES.xlsx
paths:
  data_dir: uploads
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	t.Setenv("PCTRACK_CONFIG", configPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 9, cfg.Pipeline.MinIDLength)
	assert.Equal(t, "GRADUATES.xlsx", cfg.Pipeline.RosterFileName)
	assert.Equal(t, "uploads", cfg.Paths.DataDir)
	// Unset values still come from defaults.
	assert.Equal(t, 11, cfg.Pipeline.OutcomeFlags)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv("PCTRACK_CONFIG", configPath)
	t.Setenv("PCTRACK_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad port":          "server:\n  port: 99999\n",
		"empty password":    "security:\n  admin_password: \"\"\n",
		"zero id length":    "pipeline:\n  min_id_length: -1\n",
		"zero flags":        "pipeline:\n  outcome_flags: -1\n",
		"empty roster name": "pipeline:\n  roster_file_name: \"\"\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
			t.Setenv("PCTRACK_CONFIG", configPath)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Paths: PathsConfig{
			DataDir: filepath.Join(dir, "data"),
			LogsDir: filepath.Join(dir, "logs"),
		},
	}

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.Paths.DataDir)
	assert.DirExists(t, cfg.Paths.LogsDir)
}

func TestRosterPath(t *testing.T) {
	cfg := &Config{
		Paths:    PathsConfig{DataDir: "data"},
		Pipeline: PipelineConfig{RosterFileName: "MEZUN_LISTESI.xlsx"},
	}
	assert.Equal(t, filepath.Join("data", "MEZUN_LISTESI.xlsx"), cfg.RosterPath())
}
