package repl

// Session is the live record of one repl instance for a filetype. It is
// created pending (no job), becomes active once the host reports a
// spawned job, and disappears on Clear. There is no paused or restarted
// state; a filetype's repl must be cleared before a new one is created.
type Session struct {
	// Language is the filetype this session is keyed by.
	Language string `yaml:"language"`

	// Command is the spawn argv copied from the matched definition. Empty
	// for a placeholder session, which signals "no repl available" for
	// the filetype without being an error.
	Command []string `yaml:"command,omitempty"`

	// Mappings is the definition's special mapping list.
	Mappings []Mapping `yaml:"-"`

	// JobID is the opaque handle assigned by the host once a process is
	// spawned. Zero until then.
	JobID int `yaml:"job_id,omitempty"`

	// Fns maps a special function name to the payload it sends.
	Fns map[string]string `yaml:"fns,omitempty"`

	// MappedKeys lists the currently bound keys in bind order, so Clear
	// can unmap them in the same order.
	MappedKeys []string `yaml:"mapped_keys,omitempty"`
}

// Available reports whether a matching definition backed this session.
func (s *Session) Available() bool {
	return len(s.Command) > 0
}

// Active reports whether a job has been attached.
func (s *Session) Active() bool {
	return s.JobID != 0
}

func newSession(def Definition, ft string) *Session {
	if def.Empty() {
		// Placeholder: remembers that no repl matched so repeated lookups
		// stay cheap and callers get a session value either way.
		return &Session{Language: ft}
	}
	return &Session{
		Language: ft,
		Command:  def.Command,
		Mappings: def.Mappings,
	}
}
