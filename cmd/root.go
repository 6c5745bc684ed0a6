package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/bmatsuo/nisp/lisp"
	"github.com/bmatsuo/nisp/parser"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath     string
	rootMaxStackHeight int
	rootTrace          bool

	// rootSettings holds the settings loaded from rootConfigPath, with flags
	// given on the command line applied on top.
	rootSettings = DefaultSettings()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nisp",
	Short: "A minimal lisp interpreter",
	Long: `Nisp evaluates lisp expressions built from numbers, symbols and lists,
with lexically scoped procedures.  Run without a subcommand to start an
interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog complains about logging before the go flag set is parsed.
		goflag.CommandLine.Parse(nil)
		if rootConfigPath != "" {
			settings, err := LoadSettings(rootConfigPath)
			if err != nil {
				return err
			}
			rootSettings = settings
			glog.V(1).Infof("loaded settings from %s", rootConfigPath)
		}
		flags := cmd.Flags()
		if flags.Changed("max-stack-height") {
			rootSettings.MaxStackHeight = rootMaxStackHeight
		}
		if flags.Changed("trace") {
			rootSettings.Trace = rootTrace
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return replCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newEnv returns the root environment shared by every expression evaluated
// by a command.
func newEnv() (*lisp.LEnv, error) {
	glog.V(1).Infof("creating root environment (max stack height %d)", rootSettings.MaxStackHeight)
	return lisp.NewRootEnv(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(os.Stderr),
		lisp.WithMaximumStackHeight(rootSettings.MaxStackHeight),
	)
}

func init() {
	// Log to stderr unless the user asks for log files.
	goflag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "",
		"YAML settings file")
	rootCmd.PersistentFlags().IntVar(&rootMaxStackHeight, "max-stack-height", 0,
		"Maximum procedure call depth (0 is unlimited)")
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Print a stack trace for evaluation errors")
}
