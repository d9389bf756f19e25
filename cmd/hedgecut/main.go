package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hedgecut",
		Short: "hedgecut grows tree ensembles that can forget their training data",
		Long: `A tool to grow ensembles of randomized decision trees for binary classification from your data,
test them, and make them forget training rows without growing them again`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug messages on the standard error")
	rootCmd.AddCommand(versionCmd(), setCmd(config), growCmd(config), testCmd(config), forgetCmd(config), enqueueCmd(config), workCmd(config))
	return rootCmd
}
