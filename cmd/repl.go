package cmd

import (
	"os"

	"github.com/bmatsuo/nisp/repl"
	"github.com/spf13/cobra"
)

var replPrompt string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive session.  Definitions made in the session persist
until it exits.  Press Ctrl-C to discard a partially entered expression and
Ctrl-D to exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("prompt") {
			rootSettings.Prompt = replPrompt
		}
		env, err := newEnv()
		if err != nil {
			return err
		}
		return repl.RunRepl(env, &repl.Config{
			Prompt:      rootSettings.Prompt,
			HistoryFile: rootSettings.HistoryFile,
			Stdout:      os.Stdout,
			Stderr:      os.Stderr,
			Trace:       rootSettings.Trace,
		})
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", repl.DefaultPrompt,
		"Prompt displayed when waiting for a new expression")
}
