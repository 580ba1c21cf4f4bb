package config

import (
	"github.com/mitchellh/mapstructure"

	"github.com/grovetools/repl/errors"
)

// MappingConfig binds a normal-mode key to a named special function and
// the payload that function sends to the repl when dispatched.
type MappingConfig struct {
	Key      string `yaml:"key" toml:"key" json:"key" jsonschema:"description=Normal-mode key sequence to bind (e.g. <leader>si)"`
	Function string `yaml:"function" toml:"function" json:"function" jsonschema:"description=Name the binding is dispatched under"`
	Payload  string `yaml:"payload" toml:"payload" json:"payload" jsonschema:"description=Raw text sent to the repl when the function fires"`
}

// DefinitionConfig describes one supported repl for a filetype. Entries
// are tried in file order; the first whose detect executable resolves on
// PATH wins.
type DefinitionConfig struct {
	Language string   `yaml:"language" toml:"language" json:"language" jsonschema:"description=Filetype this repl serves"`
	Command  []string `yaml:"command" toml:"command" json:"command" jsonschema:"description=Argv used to spawn the repl in a terminal"`
	Detect   string   `yaml:"detect,omitempty" toml:"detect,omitempty" json:"detect,omitempty" jsonschema:"description=Executable that must be on PATH for this entry to apply (defaults to the first command word)"`

	Mappings []MappingConfig `yaml:"mappings,omitempty" toml:"mappings,omitempty" json:"mappings,omitempty" jsonschema:"description=Special function key mappings bound while the repl is open"`
}

// DetectExecutable returns the executable probed by the availability
// check for this entry.
func (d DefinitionConfig) DetectExecutable() string {
	if d.Detect != "" {
		return d.Detect
	}
	if len(d.Command) > 0 {
		return d.Command[0]
	}
	return ""
}

// File is the root of repls.yml / repls.toml.
type File struct {
	Version string             `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`
	Repls   []DefinitionConfig `yaml:"repls" toml:"repls" json:"repls" jsonschema:"description=Ordered repl definitions; registration order is the tie-break for a filetype"`

	// Extensions holds tool-specific sections (e.g. "logging") decoded on
	// demand with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:"extensions,omitempty" toml:"extensions,omitempty" json:"extensions,omitempty"`
}

// UnmarshalExtension decodes a named extension section into out. Missing
// sections leave out untouched and return nil.
func (f *File) UnmarshalExtension(name string, out interface{}) error {
	raw, ok := f.Extensions[name]
	if !ok {
		return nil
	}
	return mapstructure.Decode(raw, out)
}

// Validate checks structural requirements on the definitions table.
func (f *File) Validate() error {
	for i, def := range f.Repls {
		if def.Language == "" {
			return errors.ConfigInvalid("repl entry missing language").WithDetail("index", i)
		}
		if len(def.Command) == 0 {
			return errors.ConfigInvalid("repl entry missing command").WithDetail("language", def.Language)
		}
		for _, m := range def.Mappings {
			if m.Key == "" || m.Function == "" {
				return errors.ConfigInvalid("mapping entry missing key or function").
					WithDetail("language", def.Language)
			}
		}
	}
	return nil
}
