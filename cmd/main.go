package main

import (
	"os"

	"github.com/kievzenit/ranni/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:          "ranni",
	Short:        "Front end for the ranni programming language",
	Long:         "Parses ranni programs and serves them to editors over the language server protocol.",
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file, TOML or YAML (default "+config.DefaultFile+" if present)")
	rootCmd.AddCommand(compileCmd, lspCmd, replCmd)
}

func loadConfig() (*config.Config, error) {
	return config.LoadOptional(configFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
