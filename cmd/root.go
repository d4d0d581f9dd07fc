package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "opsdash",
	Short: "Operator dashboard for an API server",
	Long: `opsdash serves a browser dashboard in front of a running API server.
It shows the server's route documentation and source, runs its built-in
self test, browses generated documentation and lists recent request events.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".opsdash.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
