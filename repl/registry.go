package repl

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/repl/errors"
	"github.com/grovetools/repl/host"
	"github.com/grovetools/repl/logging"
)

// SpecialFunctionName is the editor function the special key mappings
// dispatch through. The plugin host registers a handler under this name.
const SpecialFunctionName = "GroveReplSendSpecial"

// Hook variable names consulted by RunHooks. The per-filetype list is
// hookVarPrefix + filetype.
const (
	globalHooksVar = "repl_new_hooks"
	hookVarPrefix  = "repl_new_hooks_"
)

// Registry owns the filetype to session mapping and mediates every
// session lifecycle transition. All side effects go through the injected
// host.
//
// Sessions are only touched from the editor's event loop, so the map is
// unguarded. The definition table is the one exception: config hot reload
// replaces it from the watcher goroutine, so it sits behind a mutex.
type Registry struct {
	host     host.Host
	sessions map[string]*Session
	log      *logrus.Entry

	defsMu sync.Mutex
	defs   []Definition
}

// NewRegistry creates an empty registry over the given host and
// definition table.
func NewRegistry(h host.Host, defs []Definition) *Registry {
	return &Registry{
		host:     h,
		defs:     defs,
		sessions: make(map[string]*Session),
		log:      logging.NewLogger("registry"),
	}
}

// SetDefinitions swaps the definition table in place. Live sessions are
// untouched; the new table only affects future GetOrCreate calls.
func (r *Registry) SetDefinitions(defs []Definition) {
	r.defsMu.Lock()
	r.defs = defs
	r.defsMu.Unlock()
	r.log.Infof("Definition table replaced with %d entries", len(defs))
}

// Resolve returns the first registered definition whose language matches
// ft and whose detect predicate holds. The boolean is false when nothing
// matches; that is an expected outcome, not an error. Ties are broken by
// registration order, deterministically.
func (r *Registry) Resolve(ft string) (Definition, bool) {
	r.defsMu.Lock()
	defs := r.defs
	r.defsMu.Unlock()

	for _, def := range defs {
		if def.Language != ft {
			continue
		}
		if def.Detect != nil && !def.Detect() {
			continue
		}
		r.log.Debugf("Resolved filetype %q to command %v", ft, def.Command)
		return def, true
	}

	r.log.Debugf("No repl definition matches filetype %q", ft)
	return Definition{}, false
}

// Session returns the tracked session for ft, if any. No creation.
func (r *Registry) Session(ft string) (*Session, bool) {
	s, ok := r.sessions[ft]
	return s, ok
}

// GetOrCreate returns the existing session for ft unchanged, or
// materializes one from the resolved definition. When no definition
// matches, a placeholder session is stored and returned so callers can
// tell "no repl available" apart from an error.
func (r *Registry) GetOrCreate(ft string) *Session {
	if s, ok := r.sessions[ft]; ok {
		return s
	}

	def, found := r.Resolve(ft)
	s := newSession(def, ft)
	r.sessions[ft] = s

	if found {
		r.log.Infof("Created pending session for %q with command %v", ft, s.Command)
	} else {
		r.log.Infof("Created placeholder session for %q (no matching repl)", ft)
	}
	return s
}

// AttachJob records the host-assigned job handle on the filetype's
// session. Idempotent. The session must already exist; attaching without
// one is a programming error. The spawning buffer is recorded in a host
// variable so editor-side glue can find the repl window later.
func (r *Registry) AttachJob(ft string, jobID int) error {
	s, ok := r.sessions[ft]
	if !ok {
		return errors.InvalidState("AttachJob", ft)
	}

	s.JobID = jobID
	r.log.Infof("Attached job %d to session %q", jobID, ft)

	buf, err := r.host.CurrentBufferID()
	if err != nil {
		return err
	}
	return r.host.SetVar(fmt.Sprintf("repl_%s_buffer", ft), buf)
}

// Send forwards data verbatim to the target session's job. The target is
// the explicit session when non-nil, otherwise the session tracked for
// the current filetype. No chunking, escaping, or retry.
func (r *Registry) Send(data string, s *Session) error {
	if s == nil {
		ft, err := r.host.CurrentFiletype()
		if err != nil {
			return err
		}
		existing, ok := r.sessions[ft]
		if !ok {
			return errors.NoActiveSession(ft)
		}
		s = existing
	}

	if !s.Active() {
		return errors.NoActiveSession(s.Language)
	}

	r.log.Debugf("Sending %d bytes to job %d (%s)", len(data), s.JobID, s.Language)
	return r.host.SendToJob(s.JobID, data)
}

// BindSpecialFunctions resets the session's function table and binds the
// definition's special mappings: each key is mapped to a silent,
// non-recursive invocation of the dispatch function with the mapping's
// function name. Registration follows the definition's list order;
// conflicts are the host's to arbitrate.
func (r *Registry) BindSpecialFunctions(def Definition, ft string) error {
	s, ok := r.sessions[ft]
	if !ok {
		return errors.InvalidState("BindSpecialFunctions", ft)
	}

	s.Fns = make(map[string]string)
	s.MappedKeys = nil

	for _, m := range def.Mappings {
		cmd := fmt.Sprintf(`nnoremap <silent> %s :call %s("%s")<CR>`, m.Key, SpecialFunctionName, m.Function)
		if err := r.host.RunCommand(cmd); err != nil {
			return err
		}

		s.Fns[m.Function] = m.Payload
		s.MappedKeys = append(s.MappedKeys, m.Key)
		r.log.Debugf("Mapped %q to special function %q for %q", m.Key, m.Function, ft)
	}

	return nil
}

// Clear unmaps every key bound for the filetype, in the order they were
// originally mapped, then removes the session entirely. Unmap failures
// are logged and skipped; the host no-ops on already-unmapped keys.
// Clearing an untracked filetype is an error, not a silent no-op.
func (r *Registry) Clear(ft string) error {
	s, ok := r.sessions[ft]
	if !ok {
		return errors.UnknownFiletype(ft)
	}

	for _, key := range s.MappedKeys {
		if err := r.host.RunCommand("unmap " + key); err != nil {
			r.log.Warnf("Failed to unmap %q while clearing %q: %v", key, ft, err)
		}
	}

	delete(r.sessions, ft)
	r.log.Infof("Cleared session for %q", ft)
	return nil
}

// RunHooks invokes the global hook list followed by the filetype-specific
// one, each called with the current buffer handle. Hook lists come from
// host variables; a scalar value is treated as a one-element list. Errors
// propagate immediately; there is no isolation between hook invocations.
func (r *Registry) RunHooks(ft string) error {
	buf, err := r.host.CurrentBufferID()
	if err != nil {
		return err
	}

	hooks := append(r.host.ListVar(globalHooksVar), r.host.ListVar(hookVarPrefix+ft)...)
	r.log.Debugf("Running %d new-repl hooks for %q", len(hooks), ft)

	for _, hook := range hooks {
		if err := r.host.CallFunction(hook, buf); err != nil {
			return err
		}
	}
	return nil
}

// DumpState renders the registry mapping as YAML for diagnostics.
func (r *Registry) DumpState() string {
	data, err := yaml.Marshal(r.sessions)
	if err != nil {
		return fmt.Sprintf("failed to dump registry state: %v", err)
	}
	r.log.Infof("Dumped registry state (%d sessions)", len(r.sessions))
	return string(data)
}
