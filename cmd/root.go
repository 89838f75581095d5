package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/guidebook/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "guidebook",
	Short: "Serve and prerender markdown guides with a navigation control panel",
	Long: `Guidebook turns a directory of markdown guides into a documentation site.
Every page carries a control panel with links to the previous and next guide,
a light/dark mode toggle, and edit and feedback links. Serve it live, build
it to static files, or expose the guides to AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
