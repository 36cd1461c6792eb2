package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	document := `config:
  exclusions:
    - bot
    - spammer
  keepExcludedUsers: true
  extractEmailDomain: true
  fieldsWhitelist:
    - name
    - email
  excludeRepositories:
    - acme/legacy
`

	t.Run("empty path means defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("malformed document is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(path, []byte("config: [broken"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("full document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(document), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"bot", "spammer"}, cfg.Exclusions)
		assert.True(t, cfg.KeepExcludedUsers)
		assert.True(t, cfg.ExtractEmailDomain)
		assert.Equal(t, []string{"name", "email"}, cfg.FieldsWhitelist)
		assert.Equal(t, []string{"acme/legacy"}, cfg.ExcludeRepositories)
	})
}

func TestConfig_Predicates(t *testing.T) {
	cfg := Config{
		Exclusions:          []string{"bot"},
		FieldsWhitelist:     []string{"name"},
		ExcludeRepositories: []string{"acme/legacy"},
	}

	assert.True(t, cfg.IsExcluded("bot"))
	assert.False(t, cfg.IsExcluded("Bot")) // logins are case-sensitive
	assert.False(t, cfg.IsExcluded("human"))

	assert.True(t, cfg.IsRepositoryExcluded("acme/legacy"))
	assert.False(t, cfg.IsRepositoryExcluded("acme/active"))

	assert.True(t, cfg.AllowsField("name"))
	assert.False(t, cfg.AllowsField("email"))
	assert.True(t, Config{}.AllowsField("anything"))
}
