package repl

import (
	"os/exec"

	"github.com/grovetools/repl/config"
)

// Mapping binds a key to a named special function and the payload it
// sends when dispatched.
type Mapping struct {
	Key      string
	Function string
	Payload  string
}

// Definition identifies one supported repl for a filetype: the spawn
// command, an availability predicate, and the special key mappings bound
// while the repl is open. Definitions are immutable; they come from
// configuration, not from this package.
type Definition struct {
	Language string
	Command  []string
	Detect   func() bool
	Mappings []Mapping
}

// Empty reports whether this is the zero definition, the "no repl for
// this filetype" value.
func (d Definition) Empty() bool {
	return d.Language == ""
}

// DefinitionsFromConfig converts configured entries into definitions,
// preserving file order. The detect predicate is a PATH lookup of the
// configured executable.
func DefinitionsFromConfig(cfg *config.File) []Definition {
	defs := make([]Definition, 0, len(cfg.Repls))
	for _, entry := range cfg.Repls {
		executable := entry.DetectExecutable()

		mappings := make([]Mapping, 0, len(entry.Mappings))
		for _, m := range entry.Mappings {
			mappings = append(mappings, Mapping{Key: m.Key, Function: m.Function, Payload: m.Payload})
		}

		defs = append(defs, Definition{
			Language: entry.Language,
			Command:  entry.Command,
			Detect: func() bool {
				_, err := exec.LookPath(executable)
				return err == nil
			},
			Mappings: mappings,
		})
	}
	return defs
}
