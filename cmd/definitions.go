package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/repl/cli"
	"github.com/grovetools/repl/config"
)

type definitionStatus struct {
	Language  string   `json:"language"`
	Command   []string `json:"command"`
	Detect    string   `json:"detect"`
	Available bool     `json:"available"`
	Mappings  int      `json:"mappings"`
}

// NewDefinitionsCmd creates the `definitions` command.
func NewDefinitionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "definitions",
		Short: "List configured repl definitions and their availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			configPath := opts.ConfigFile
			if configPath == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				configPath, err = config.FindConfigFile(cwd)
				if err != nil {
					return handler.Handle(err)
				}
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return handler.Handle(err)
			}

			statuses := make([]definitionStatus, 0, len(cfg.Repls))
			for _, entry := range cfg.Repls {
				executable := entry.DetectExecutable()
				_, lookErr := exec.LookPath(executable)
				statuses = append(statuses, definitionStatus{
					Language:  entry.Language,
					Command:   entry.Command,
					Detect:    executable,
					Available: lookErr == nil,
					Mappings:  len(entry.Mappings),
				})
			}

			if opts.JSONOutput {
				data, err := json.MarshalIndent(statuses, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("Definitions from %s:\n\n", configPath)
			for _, s := range statuses {
				marker := "✗"
				if s.Available {
					marker = "✓"
				}
				fmt.Printf("  %s %-12s %s (%d mappings)\n", marker, s.Language, strings.Join(s.Command, " "), s.Mappings)
			}
			return nil
		},
	}

	return cmd
}
