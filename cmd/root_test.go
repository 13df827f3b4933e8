package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russellbomer/domsift/internal/config"
)

func TestExecute_ConfigFlagReachesViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  name: renamed\n"), 0o600))

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"domsift", "--config", path, "version"}

	require.NoError(t, Execute())
	assert.Equal(t, "renamed", viper.GetString("app.name"))
	assert.Equal(t, "renamed", config.FromViper().App.Name)
}

func TestExecute_MissingExplicitConfigWarnsButRuns(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"domsift", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "version"}

	require.NoError(t, Execute())
	assert.Equal(t, "domsift", viper.GetString("app.name"))
}
