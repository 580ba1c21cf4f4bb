// Package testutil provides test doubles and fixtures shared across the
// repo's tests.
package testutil

import (
	"fmt"

	"github.com/grovetools/repl/host"
)

// FunctionCall records one CallFunction invocation on the fake host.
type FunctionCall struct {
	Name string
	Args []interface{}
}

// FakeHost is a scripted in-memory implementation of host.Host. Every
// side effect is recorded so tests can assert on exactly what the core
// asked the editor to do.
type FakeHost struct {
	// NextJobID is returned by the next SpawnTerminalJob call and then
	// incremented.
	NextJobID int

	// SpawnErr, SendErr and CommandErr force the corresponding calls to
	// fail when non-nil.
	SpawnErr   error
	SendErr    error
	CommandErr error

	// FnErrs forces CallFunction to fail for specific function names.
	FnErrs map[string]error

	// Filetype and BufferID script the "current buffer" answers.
	Filetype string
	BufferID int

	// PromptAnswer scripts the reply to Prompt.
	PromptAnswer string

	Spawned   [][]string
	Sent      map[int][]string
	Commands  []string
	Calls     []FunctionCall
	Prompts   []string
	Registers map[string]string
	Vars      map[string]interface{}
}

// NewFakeHost returns a fake host with empty state and job ids starting
// at 1.
func NewFakeHost() *FakeHost {
	return &FakeHost{
		NextJobID: 1,
		BufferID:  1,
		Sent:      make(map[int][]string),
		Registers: make(map[string]string),
		Vars:      make(map[string]interface{}),
	}
}

func (f *FakeHost) SpawnTerminalJob(command []string) (int, error) {
	if f.SpawnErr != nil {
		return 0, f.SpawnErr
	}
	f.Spawned = append(f.Spawned, command)
	id := f.NextJobID
	f.NextJobID++
	return id, nil
}

func (f *FakeHost) SendToJob(jobID int, data string) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent[jobID] = append(f.Sent[jobID], data)
	return nil
}

func (f *FakeHost) RunCommand(cmd string) error {
	if f.CommandErr != nil {
		return f.CommandErr
	}
	f.Commands = append(f.Commands, cmd)
	return nil
}

func (f *FakeHost) CallFunction(name string, args ...interface{}) error {
	if err, ok := f.FnErrs[name]; ok {
		return err
	}
	f.Calls = append(f.Calls, FunctionCall{Name: name, Args: args})
	return nil
}

func (f *FakeHost) CurrentFiletype() (string, error) {
	return f.Filetype, nil
}

func (f *FakeHost) CurrentBufferID() (int, error) {
	return f.BufferID, nil
}

func (f *FakeHost) Register(name string) (string, error) {
	value, ok := f.Registers[name]
	if !ok {
		return "", fmt.Errorf("register %q not set", name)
	}
	return value, nil
}

func (f *FakeHost) SetRegister(name, value string) error {
	f.Registers[name] = value
	return nil
}

func (f *FakeHost) Var(name string) (interface{}, bool) {
	value, ok := f.Vars[name]
	return value, ok
}

func (f *FakeHost) SetVar(name string, value interface{}) error {
	f.Vars[name] = value
	return nil
}

func (f *FakeHost) ListVar(name string) []string {
	value, _ := f.Var(name)
	return host.NormalizeList(value)
}

func (f *FakeHost) Prompt(msg string) (string, error) {
	f.Prompts = append(f.Prompts, msg)
	return f.PromptAnswer, nil
}
