package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/repl/config"
)

func TestDefinitionsFromConfig(t *testing.T) {
	cfg := &config.File{
		Repls: []config.DefinitionConfig{
			{
				Language: "sh",
				Command:  []string{"sh", "-i"},
				Mappings: []config.MappingConfig{
					{Key: "<leader>sc", Function: "clear", Payload: "clear\n"},
				},
			},
			{
				Language: "cobol",
				Command:  []string{"definitely-not-a-real-repl"},
			},
		},
	}

	defs := DefinitionsFromConfig(cfg)
	require.Len(t, defs, 2)

	// Order is preserved from the file.
	assert.Equal(t, "sh", defs[0].Language)
	assert.Equal(t, []string{"sh", "-i"}, defs[0].Command)
	assert.Equal(t, []Mapping{{Key: "<leader>sc", Function: "clear", Payload: "clear\n"}}, defs[0].Mappings)

	// Detect defaults to a PATH lookup of the first command word.
	assert.True(t, defs[0].Detect())
	assert.False(t, defs[1].Detect())
}

func TestDefinitionsFromConfigExplicitDetect(t *testing.T) {
	cfg := &config.File{
		Repls: []config.DefinitionConfig{
			{Language: "posix", Command: []string{"env", "sh"}, Detect: "sh"},
		},
	}

	defs := DefinitionsFromConfig(cfg)
	require.Len(t, defs, 1)
	assert.True(t, defs[0].Detect())
}
