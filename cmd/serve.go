package cmd

import (
	"os"

	"github.com/neovim/go-client/nvim/plugin"
	"github.com/spf13/cobra"

	"github.com/grovetools/repl/cli"
	"github.com/grovetools/repl/config"
	"github.com/grovetools/repl/errors"
	"github.com/grovetools/repl/host/nvimhost"
	"github.com/grovetools/repl/logging"
	"github.com/grovetools/repl/repl"
	"github.com/grovetools/repl/rplugin"
)

// NewServeCmd creates the `serve` command, the Neovim remote plugin host.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as a Neovim remote plugin over stdio",
		Long: `Attaches to Neovim as a msgpack-rpc remote plugin and registers the
GroveRepl* functions. Neovim starts this command itself via the plugin
manifest; it is not meant to be run interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Stdout carries the rpc stream; nothing else may write there.
			logging.SuppressStderr()
			log := logging.NewLogger("serve")

			opts := cli.GetOptions(cmd)
			noWatch, _ := cmd.Flags().GetBool("no-watch")

			configPath := opts.ConfigFile
			if configPath == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				found, err := config.FindConfigFile(cwd)
				if err == nil {
					configPath = found
				}
			}

			var defs []repl.Definition
			if configPath != "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					if !errors.Is(err, errors.ErrCodeConfigNotFound) {
						return err
					}
				} else {
					defs = repl.DefinitionsFromConfig(cfg)
				}
			}
			if len(defs) == 0 {
				log.Warn("No repl definitions configured; every filetype will resolve to a placeholder")
			}

			plugin.Main(func(p *plugin.Plugin) error {
				h := nvimhost.New(p.Nvim)
				reg := repl.NewRegistry(h, defs)
				rplugin.Register(p, rplugin.NewService(reg, h))

				if configPath != "" && !noWatch {
					stop, err := config.Watch(configPath, log, func(cfg *config.File) {
						reg.SetDefinitions(repl.DefinitionsFromConfig(cfg))
					})
					if err != nil {
						log.WithError(err).Warn("Definitions file watching disabled")
					} else {
						_ = stop // runs for the lifetime of the plugin host
					}
				}

				log.WithField("config", configPath).Info("Plugin host registered")
				return nil
			})

			return nil
		},
	}

	cmd.Flags().Bool("no-watch", false, "Disable hot reload of the definitions file")

	return cmd
}
