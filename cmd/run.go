package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bmatsuo/nisp/lisp"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file ...]",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("print") {
			rootSettings.Print = runPrint
		}
		sources, err := runReadSources(args)
		if err != nil {
			return err
		}

		env, err := newEnv()
		if err != nil {
			return err
		}
		for _, src := range sources {
			glog.V(1).Infof("loading %s (%d bytes)", src.name, len(src.text))
			v := env.LoadString(src.name, src.text)
			if v.Type == lisp.LError {
				if rootSettings.Trace && v.Stack != nil {
					v.Stack.DebugPrint(os.Stderr)
				}
				return lisp.GoError(v)
			}
			if rootSettings.Print {
				fmt.Println(v)
			}
		}
		return nil
	},
}

type runSource struct {
	name string
	text string
}

func runReadSources(args []string) ([]runSource, error) {
	sources := make([]runSource, len(args))
	if runExpression {
		for i := range args {
			sources[i] = runSource{fmt.Sprintf("expr%d", i+1), args[i]}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = runSource{path, string(b)}
	}
	return sources, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the value of each source to stdout")
}
