package provisioner

import (
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"selenite.systems/groundwork/internal/envfile"
)

func loadConf(t *testing.T, values map[string]any) *koanf.Koanf {
	t.Helper()
	k := koanf.New(".")
	require.NoError(t, k.Load(confmap.Provider(values, "."), nil))
	return k
}

func TestNewConfigDefaults(t *testing.T) {
	k := loadConf(t, map[string]any{
		"repo": "https://example.test/r.git",
	})
	c, err := NewConfig(k)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "https://example.test/r.git", c.RepoURL)
	assert.Equal(t, "challengebot.service", c.ServiceName)
	assert.Equal(t, envfile.PlaceholderToken, c.BotToken)
	assert.Equal(t, []string{"python3", "python3-venv", "python3-pip", "git"}, c.Packages)
	assert.Equal(t, filepath.Join(c.InstallDir, "challenge.db"), c.DatabasePath)
	assert.Equal(t, filepath.Join(c.InstallDir, ".env"), c.EnvFilePath())
	assert.Equal(t, filepath.Join(c.InstallDir, "venv"), c.VenvPath())
	assert.Equal(t, filepath.Join(c.InstallDir, "requirements.txt"), c.RequirementsPath())
	assert.Equal(t, filepath.Join(c.InstallDir, "challengebot.service"), c.UnitPath())
	assert.Equal(t, 30, c.Timeout)
	assert.NotEmpty(t, c.InstallDir)
	assert.NotEmpty(t, c.ServiceDir)
}

func TestNewConfigOverrides(t *testing.T) {
	k := loadConf(t, map[string]any{
		"repo":       "https://example.test/r.git",
		"installdir": "/tmp/r",
		"service":    "svc",
		"token":      "PLACEHOLDER",
		"dbpath":     "/tmp/r/db.sqlite",
		"timeout":    5,
	})
	c, err := NewConfig(k)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/r", c.InstallDir)
	assert.Equal(t, "svc", c.ServiceName)
	assert.Equal(t, "PLACEHOLDER", c.BotToken)
	assert.Equal(t, "/tmp/r/db.sqlite", c.DatabasePath)
	assert.Equal(t, 5, c.Timeout)
}

func TestConfigValidate(t *testing.T) {
	k := loadConf(t, map[string]any{})
	c, err := NewConfig(k)
	require.NoError(t, err)
	assert.Error(t, c.Validate(), "missing repo URL must not validate")
}
