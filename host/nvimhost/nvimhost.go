// Package nvimhost implements host.Host on top of a live Neovim instance
// via the msgpack-rpc client.
package nvimhost

import (
	"fmt"

	"github.com/neovim/go-client/nvim"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/repl/host"
	"github.com/grovetools/repl/logging"
)

// Nvim adapts a connected *nvim.Nvim client to the host.Host interface.
type Nvim struct {
	v   *nvim.Nvim
	log *logrus.Entry
}

// New wraps an already-connected Neovim client. The logger is created
// here rather than at package init so serve mode can suppress the stderr
// sink first.
func New(v *nvim.Nvim) *Nvim {
	return &Nvim{v: v, log: logging.NewLogger("nvimhost")}
}

// Client exposes the underlying Neovim client for glue code that needs
// the raw API (plugin registration, echo messages).
func (h *Nvim) Client() *nvim.Nvim {
	return h.v
}

// SpawnTerminalJob opens a split below the current window, switches it to
// a fresh buffer and starts command in a terminal there.
func (h *Nvim) SpawnTerminalJob(command []string) (int, error) {
	if err := h.v.Command("split | wincmd j | enew"); err != nil {
		return 0, err
	}

	var jobID int
	if err := h.v.Call("termopen", &jobID, command); err != nil {
		return 0, err
	}

	h.log.WithField("job", jobID).Debug("Spawned terminal job")
	return jobID, nil
}

func (h *Nvim) SendToJob(jobID int, data string) error {
	return h.v.Call("chansend", nil, jobID, data)
}

func (h *Nvim) RunCommand(cmd string) error {
	h.log.WithField("cmd", cmd).Debug("Running command")
	return h.v.Command(cmd)
}

func (h *Nvim) CallFunction(name string, args ...interface{}) error {
	h.log.WithField("fn", name).Debug("Calling function")
	return h.v.Call(name, nil, args...)
}

func (h *Nvim) CurrentFiletype() (string, error) {
	buf, err := h.v.CurrentBuffer()
	if err != nil {
		return "", err
	}

	var ft string
	if err := h.v.BufferOption(buf, "filetype", &ft); err != nil {
		return "", err
	}
	return ft, nil
}

func (h *Nvim) CurrentBufferID() (int, error) {
	buf, err := h.v.CurrentBuffer()
	if err != nil {
		return 0, err
	}
	return int(buf), nil
}

func (h *Nvim) Register(name string) (string, error) {
	var value string
	if err := h.v.Call("getreg", &value, name); err != nil {
		return "", err
	}
	return value, nil
}

func (h *Nvim) SetRegister(name, value string) error {
	return h.v.Call("setreg", nil, name, value)
}

// Var reads g:<name>. The client errors on unset variables; that is the
// absent case, not a failure.
func (h *Nvim) Var(name string) (interface{}, bool) {
	var value interface{}
	if err := h.v.Var(name, &value); err != nil {
		return nil, false
	}
	return value, true
}

func (h *Nvim) SetVar(name string, value interface{}) error {
	return h.v.SetVar(name, value)
}

func (h *Nvim) ListVar(name string) []string {
	value, _ := h.Var(name)
	return host.NormalizeList(value)
}

// Prompt saves and restores the user's typeahead around the input call so
// a pending mapping cannot leak into the prompt.
func (h *Nvim) Prompt(msg string) (string, error) {
	if err := h.v.Call("inputsave", nil); err != nil {
		return "", err
	}

	var answer string
	err := h.v.Call("input", &answer, fmt.Sprintf("repl> %s: ", msg))

	if restoreErr := h.v.Call("inputrestore", nil); restoreErr != nil && err == nil {
		err = restoreErr
	}

	return answer, err
}
