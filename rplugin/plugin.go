package rplugin

import (
	"github.com/neovim/go-client/nvim/plugin"

	"github.com/grovetools/repl/errors"
	"github.com/grovetools/repl/repl"
)

// Register attaches the glue surface to a remote plugin instance. All
// functions take and return msgpack-friendly values; vimscript calls them
// like ordinary functions once the manifest is installed.
func Register(p *plugin.Plugin, svc *Service) {
	p.HandleFunction(&plugin.FunctionOptions{Name: "GroveReplOpen"},
		func(args []string) error {
			return svc.report(svc.Open())
		})

	p.HandleFunction(&plugin.FunctionOptions{Name: "GroveReplSendRegister"},
		func(args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return svc.report(svc.SendRegister(name))
		})

	p.HandleFunction(&plugin.FunctionOptions{Name: repl.SpecialFunctionName},
		func(args []string) error {
			if len(args) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "special function name required")
			}
			return svc.report(svc.SendSpecial(args[0]))
		})

	p.HandleFunction(&plugin.FunctionOptions{Name: "GroveReplSendPrompted"},
		func(args []string) error {
			return svc.report(svc.SendPrompted())
		})

	p.HandleFunction(&plugin.FunctionOptions{Name: "GroveReplClear"},
		func(args []string) error {
			return svc.report(svc.ClearCurrent())
		})

	p.HandleFunction(&plugin.FunctionOptions{Name: "GroveReplDump"},
		func(args []string) (string, error) {
			return svc.Dump()
		})
}

// report turns the expected-outcome error kinds into command-line
// messages so the user does not get a stack of vimscript error noise for
// "no repl open yet". Everything else propagates to the editor.
func (s *Service) report(err error) error {
	if err == nil {
		return nil
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeNoActiveSession, errors.ErrCodeUnknownFiletype, errors.ErrCodeInvalidInput:
		s.log.WithError(err).Info("Reporting expected failure to the user")
		if replErr, ok := err.(*errors.ReplError); ok {
			return s.Echo(replErr.Message)
		}
		return s.Echo(err.Error())
	default:
		s.log.WithError(err).Error("Operation failed")
		return err
	}
}
