// Package rplugin is the glue between the session registry and Neovim's
// remote plugin protocol: it exposes the user-facing operations (open,
// send, clear, dump) as editor functions.
package rplugin

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/repl/errors"
	"github.com/grovetools/repl/host"
	"github.com/grovetools/repl/logging"
	"github.com/grovetools/repl/repl"
)

// Service implements the user-facing operations over a registry and its
// host. It holds no state of its own, so it is testable with a fake host.
type Service struct {
	reg  *repl.Registry
	host host.Host
	log  *logrus.Entry
}

// NewService wires a registry and host into the glue surface.
func NewService(reg *repl.Registry, h host.Host) *Service {
	return &Service{
		reg:  reg,
		host: h,
		log:  logging.NewLogger("rplugin"),
	}
}

// Echo shows a message in the editor's command line.
func (s *Service) Echo(msg string) error {
	escaped := strings.ReplaceAll(msg, `"`, `\"`)
	return s.host.RunCommand(fmt.Sprintf(`echomsg "grove-repl: %s"`, escaped))
}

// Open finds or creates the repl session for the current filetype. On
// first open it spawns the terminal job, attaches it, binds the special
// mappings and runs the new-repl hooks. An already-open repl and a
// filetype with no definition both produce a message, not an error.
func (s *Service) Open() error {
	ft, err := s.host.CurrentFiletype()
	if err != nil {
		return err
	}
	if ft == "" {
		return s.Echo("buffer has no filetype")
	}

	sess := s.reg.GetOrCreate(ft)
	if !sess.Available() {
		return s.Echo(fmt.Sprintf("no repl configured for filetype '%s'", ft))
	}
	if sess.Active() {
		return s.Echo(fmt.Sprintf("repl for '%s' already open; clear it first", ft))
	}

	def, _ := s.reg.Resolve(ft)

	jobID, err := s.host.SpawnTerminalJob(sess.Command)
	if err != nil {
		return errors.SpawnFailed(sess.Command, err)
	}

	if err := s.reg.AttachJob(ft, jobID); err != nil {
		return err
	}
	if err := s.reg.BindSpecialFunctions(def, ft); err != nil {
		return err
	}
	return s.reg.RunHooks(ft)
}

// SendRegister sends the contents of a register to the current repl. An
// empty name means the unnamed register, which holds the last yank or
// visual selection.
func (s *Service) SendRegister(name string) error {
	if name == "" {
		name = `"`
	}

	data, err := s.host.Register(name)
	if err != nil {
		return err
	}
	return s.reg.Send(data, nil)
}

// SendSpecial dispatches a bound special function by name: the payload
// recorded at bind time is sent to the current repl.
func (s *Service) SendSpecial(name string) error {
	ft, err := s.host.CurrentFiletype()
	if err != nil {
		return err
	}

	sess, ok := s.reg.Session(ft)
	if !ok {
		return errors.NoActiveSession(ft)
	}

	payload, ok := sess.Fns[name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("no special function '%s' bound for filetype '%s'", name, ft)).
			WithDetail("function", name).
			WithDetail("filetype", ft)
	}

	return s.reg.Send(payload, sess)
}

// SendPrompted asks the user for a line and sends it to the current repl
// with a trailing newline.
func (s *Service) SendPrompted() error {
	line, err := s.host.Prompt("send")
	if err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	return s.reg.Send(line+"\n", nil)
}

// ClearCurrent tears down the session for the current filetype.
func (s *Service) ClearCurrent() error {
	ft, err := s.host.CurrentFiletype()
	if err != nil {
		return err
	}
	return s.reg.Clear(ft)
}

// Dump returns the registry state for diagnostics.
func (s *Service) Dump() (string, error) {
	return s.reg.DumpState(), nil
}
