// Package host defines the capability surface the repl core needs from the
// editor it runs inside. The core never talks to Neovim directly; it goes
// through this interface so tests can substitute a double.
package host

// Host is the narrow view of the editing environment consumed by the
// session registry. All side effects (spawning processes, key mapping,
// variable storage, register access) happen behind it.
type Host interface {
	// SpawnTerminalJob opens a terminal surface, starts command in it and
	// returns the opaque job handle assigned by the editor.
	SpawnTerminalJob(command []string) (int, error)

	// SendToJob writes raw text to the running job's input stream.
	SendToJob(jobID int, data string) error

	// RunCommand executes an arbitrary editor command string.
	RunCommand(cmd string) error

	// CallFunction invokes a named editor function, discarding any result.
	CallFunction(name string, args ...interface{}) error

	// CurrentFiletype returns the filetype of the active buffer.
	CurrentFiletype() (string, error)

	// CurrentBufferID returns the handle of the active buffer.
	CurrentBufferID() (int, error)

	// Register reads the contents of a register.
	Register(name string) (string, error)

	// SetRegister stores a value in a register.
	SetRegister(name, value string) error

	// Var reads a global variable. The second return is false when the
	// variable is not set.
	Var(name string) (interface{}, bool)

	// SetVar stores a global variable.
	SetVar(name string, value interface{}) error

	// ListVar reads a global variable and normalizes it to a list of
	// strings: absent becomes an empty list, a scalar becomes a
	// one-element list.
	ListVar(name string) []string

	// Prompt asks the user for a single line of input.
	Prompt(msg string) (string, error)
}

// NormalizeList converts a raw variable value to the list form used for
// hook configuration. Implementations of ListVar share this so the fake
// host and the nvim host agree on the semantics.
func NormalizeList(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case string:
		return []string{val}
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
