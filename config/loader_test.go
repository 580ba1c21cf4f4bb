package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/repl/errors"
	"github.com/grovetools/repl/logging"
)

const yamlFixture = `version: "1.0"
repls:
  - language: python
    command: [python3]
    mappings:
      - key: "<leader>si"
        function: import
        payload: "import "
  - language: python
    command: [ipython, --no-autoindent]
    detect: ipython
extensions:
  logging:
    level: debug
`

const tomlFixture = `version = "1.0"

[[repls]]
language = "lua"
command = ["lua"]

[[repls.mappings]]
key = "<leader>sp"
function = "print"
payload = "print()"
`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "repls.yml", yamlFixture)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Repls, 2)
	assert.Equal(t, "python", cfg.Repls[0].Language)
	assert.Equal(t, []string{"python3"}, cfg.Repls[0].Command)
	assert.Equal(t, "import", cfg.Repls[0].Mappings[0].Function)

	// Detect defaults to the first command word, or the explicit value.
	assert.Equal(t, "python3", cfg.Repls[0].DetectExecutable())
	assert.Equal(t, "ipython", cfg.Repls[1].DetectExecutable())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "repls.toml", tomlFixture)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Repls, 1)
	assert.Equal(t, "lua", cfg.Repls[0].Language)
	assert.Equal(t, "<leader>sp", cfg.Repls[0].Mappings[0].Key)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "repls.yml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestLoadInvalid(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "repls.yml", "repls: [unclosed")
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("entry without command", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "repls.yml", "repls:\n  - language: python\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("mapping without key", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "repls.yml",
			"repls:\n  - language: python\n    command: [python3]\n    mappings:\n      - function: import\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	})
}

func TestUnmarshalExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "repls.yml", yamlFixture)

	cfg, err := Load(path)
	require.NoError(t, err)

	var logCfg logging.Config
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)

	// Missing sections leave the target untouched.
	var other struct{ Level string }
	require.NoError(t, cfg.UnmarshalExtension("nope", &other))
	assert.Empty(t, other.Level)
}

func TestFindConfigFile(t *testing.T) {
	t.Run("walks up to a parent directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "repls.yml", yamlFixture)

		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0755))

		found, err := FindConfigFile(nested)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "repls.yml"), found)
	})

	t.Run("yml takes precedence over toml at the same level", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "repls.yml", yamlFixture)
		writeFile(t, root, "repls.toml", tomlFixture)

		found, err := FindConfigFile(root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "repls.yml"), found)
	})
}
