package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NafisRayan/pdfform/asset"
	"github.com/NafisRayan/pdfform/layout"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "builtin:regular", cfg.Fonts.Regular)
	assert.Equal(t, "builtin:bold", cfg.Fonts.Bold)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout.Duration)
	assert.Equal(t, asset.DefaultRewrites(), cfg.Assets.Rewrites)
	assert.Equal(t, layout.A4, cfg.PageSize())
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pdfform.toml")
	content := `
[fonts]
regular = "fonts/Inter-Regular.ttf"

[assets]
base_dir = "web"
logo = "assets/logo.png"
rewrites = [
  { from = "/build/", to = "/src/" },
]

[http]
timeout = "3s"

[log]
level = "debug"

[page]
size = "letter"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fonts/Inter-Regular.ttf", cfg.Fonts.Regular)
	assert.Equal(t, "builtin:bold", cfg.Fonts.Bold)
	assert.Equal(t, filepath.Join(dir, "web"), cfg.Assets.BaseDir)
	assert.Equal(t, "assets/logo.png", cfg.Assets.Logo)
	assert.Equal(t, []asset.Rewrite{{From: "/build/", To: "/src/"}}, cfg.Assets.Rewrites)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout.Duration)
	assert.Equal(t, layout.Letter, cfg.PageSize())

	router := cfg.Resolver()
	assert.Equal(t, 3*time.Second, router.Remote.(*asset.HTTPResolver).Timeout)
	assert.Equal(t, filepath.Join(dir, "web"), router.Local.(*asset.FileResolver).BaseDir)
}

func TestParseEmptyRewritesDisablesDefault(t *testing.T) {
	cfg, err := Parse([]byte("[assets]\nrewrites = []\n"), "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Assets.Rewrites)
}

func TestParseErrors(t *testing.T) {
	for name, content := range map[string]string{
		"syntax":        "[fonts\n",
		"unknown field": "[fonts]\nitalic = \"x\"\n",
		"bad level":     "[log]\nlevel = \"loud\"\n",
		"bad page":      "[page]\nsize = \"B9\"\n",
		"bad duration":  "[http]\ntimeout = \"soon\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content), "")
			assert.Error(t, err)
		})
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
