package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.BaseDir = "/tmp/solutions"
	cfg.Language = "c++"
	cfg.Codeforces.Username = "tourist"
	cfg.Codeforces.URL = "https://codeforces.example/"
	cfg.UISettings.ShowSolvedCounts = false

	svc := NewConfigService()
	require.NoError(t, svc.SaveToPath(cfg, path))

	got, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	svc := NewConfigService()
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadFillsOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[codeforces]\nusername = \"alice\"\n"), 0600))

	svc := NewConfigService()
	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "alice", cfg.Codeforces.Username)
	require.NotEmpty(t, cfg.BaseDir)
	require.Equal(t, "python", cfg.Language)
	require.Equal(t, "https://codeforces.com/", cfg.Codeforces.URL)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = [unclosed"), 0600))

	svc := NewConfigService()
	_, err := svc.LoadFromPath(path)
	require.Error(t, err)
}
