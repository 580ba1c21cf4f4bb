package rplugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/repl/errors"
	"github.com/grovetools/repl/repl"
	"github.com/grovetools/repl/testutil"
)

func alwaysAvailable() bool { return true }

func testDefs() []repl.Definition {
	return []repl.Definition{
		{
			Language: "python",
			Command:  []string{"python3"},
			Detect:   alwaysAvailable,
			Mappings: []repl.Mapping{
				{Key: "<leader>si", Function: "import", Payload: "import "},
			},
		},
	}
}

func newTestService(h *testutil.FakeHost) *Service {
	return NewService(repl.NewRegistry(h, testDefs()), h)
}

func TestOpen(t *testing.T) {
	t.Run("spawns, attaches, binds and runs hooks on first open", func(t *testing.T) {
		h := testutil.NewFakeHost()
		h.Filetype = "python"
		h.BufferID = 5
		h.Vars["repl_new_hooks"] = "OnNewRepl"
		svc := newTestService(h)

		require.NoError(t, svc.Open())

		require.Equal(t, [][]string{{"python3"}}, h.Spawned)

		s, ok := svc.reg.Session("python")
		require.True(t, ok)
		assert.Equal(t, 1, s.JobID)
		assert.Equal(t, []string{"<leader>si"}, s.MappedKeys)

		require.Len(t, h.Calls, 1)
		assert.Equal(t, "OnNewRepl", h.Calls[0].Name)
		assert.Equal(t, []interface{}{5}, h.Calls[0].Args)

		assert.Equal(t, 5, h.Vars["repl_python_buffer"])
	})

	t.Run("buffer without filetype gets a message", func(t *testing.T) {
		h := testutil.NewFakeHost()
		svc := newTestService(h)

		require.NoError(t, svc.Open())
		assert.Empty(t, h.Spawned)
		require.Len(t, h.Commands, 1)
		assert.Contains(t, h.Commands[0], "no filetype")
	})

	t.Run("unconfigured filetype gets a message, not an error", func(t *testing.T) {
		h := testutil.NewFakeHost()
		h.Filetype = "haskell"
		svc := newTestService(h)

		require.NoError(t, svc.Open())
		assert.Empty(t, h.Spawned)
		require.Len(t, h.Commands, 1)
		assert.Contains(t, h.Commands[0], "no repl configured")
	})

	t.Run("second open is a message, never a second job", func(t *testing.T) {
		h := testutil.NewFakeHost()
		h.Filetype = "python"
		svc := newTestService(h)

		require.NoError(t, svc.Open())
		require.NoError(t, svc.Open())
		assert.Len(t, h.Spawned, 1)
	})

	t.Run("spawn failure surfaces as SPAWN_FAILED", func(t *testing.T) {
		h := testutil.NewFakeHost()
		h.Filetype = "python"
		h.SpawnErr = assert.AnError
		svc := newTestService(h)

		err := svc.Open()
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSpawnFailed, errors.GetCode(err))
	})
}

func TestSendRegister(t *testing.T) {
	h := testutil.NewFakeHost()
	h.Filetype = "python"
	h.Registers[`"`] = "x = 1\n"
	svc := newTestService(h)

	require.NoError(t, svc.Open())
	require.NoError(t, svc.SendRegister(""))

	assert.Equal(t, []string{"x = 1\n"}, h.Sent[1])
}

func TestSendSpecial(t *testing.T) {
	t.Run("dispatches the bound payload", func(t *testing.T) {
		h := testutil.NewFakeHost()
		h.Filetype = "python"
		svc := newTestService(h)

		require.NoError(t, svc.Open())
		require.NoError(t, svc.SendSpecial("import"))

		assert.Equal(t, []string{"import "}, h.Sent[1])
	})

	t.Run("unknown function name is INVALID_INPUT", func(t *testing.T) {
		h := testutil.NewFakeHost()
		h.Filetype = "python"
		svc := newTestService(h)

		require.NoError(t, svc.Open())
		err := svc.SendSpecial("nope")
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
	})

	t.Run("no session is NO_ACTIVE_SESSION", func(t *testing.T) {
		h := testutil.NewFakeHost()
		h.Filetype = "python"
		svc := newTestService(h)

		err := svc.SendSpecial("import")
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeNoActiveSession, errors.GetCode(err))
	})
}

func TestSendPrompted(t *testing.T) {
	h := testutil.NewFakeHost()
	h.Filetype = "python"
	h.PromptAnswer = "print(2)"
	svc := newTestService(h)

	require.NoError(t, svc.Open())
	require.NoError(t, svc.SendPrompted())

	assert.Equal(t, []string{"print(2)\n"}, h.Sent[1])

	// An empty answer sends nothing.
	h.PromptAnswer = ""
	require.NoError(t, svc.SendPrompted())
	assert.Len(t, h.Sent[1], 1)
}

func TestClearCurrent(t *testing.T) {
	h := testutil.NewFakeHost()
	h.Filetype = "python"
	svc := newTestService(h)

	require.NoError(t, svc.Open())
	require.NoError(t, svc.ClearCurrent())

	_, ok := svc.reg.Session("python")
	assert.False(t, ok)

	// Clearing again errors; the session is gone.
	err := svc.ClearCurrent()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownFiletype, errors.GetCode(err))
}

func TestDump(t *testing.T) {
	h := testutil.NewFakeHost()
	h.Filetype = "python"
	svc := newTestService(h)

	require.NoError(t, svc.Open())
	dump, err := svc.Dump()
	require.NoError(t, err)
	assert.Contains(t, dump, "python")
}

func TestReport(t *testing.T) {
	t.Run("expected failures become messages", func(t *testing.T) {
		h := testutil.NewFakeHost()
		svc := newTestService(h)

		require.NoError(t, svc.report(errors.NoActiveSession("python")))
		require.Len(t, h.Commands, 1)
		assert.Contains(t, h.Commands[0], "echomsg")
	})

	t.Run("unexpected failures propagate", func(t *testing.T) {
		h := testutil.NewFakeHost()
		svc := newTestService(h)

		err := errors.SpawnFailed([]string{"python3"}, assert.AnError)
		assert.Equal(t, err, svc.report(err))
	})
}
