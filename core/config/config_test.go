package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `prompt: "> "
path: /usr/local/bin:/usr/bin:/bin
env:
  GREETING: hello
source:
  - /etc/pish/init.pish
`

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte(sampleConfig), 0644))

	cfg, err := Load(fsys, "/cfg/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, "/usr/local/bin:/usr/bin:/bin", cfg.Path)
	assert.Equal(t, map[string]string{"GREETING": "hello"}, cfg.Env)
	assert.Equal(t, []string{"/etc/pish/init.pish"}, cfg.Source)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope/config.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte("bogus: 1\n"), 0644))

	_, err := Load(fsys, "/cfg/config.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Configuration{}).Validate(), "empty configuration is fine")

	bad := &Configuration{Source: []string{""}}
	assert.Error(t, bad.Validate(), "empty source entries are rejected")
}
