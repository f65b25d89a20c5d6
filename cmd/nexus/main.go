package main

import (
	"github.com/spf13/cobra"

	"github.com/nexusai/nexus/cli/chat"
	"github.com/nexusai/nexus/cli/tui"
	"github.com/nexusai/nexus/internal/configuration"
	"github.com/nexusai/nexus/internal/session"
)

const configFilepath = "~/.config/nexus/config.json"

var rootCmd = &cobra.Command{
	Use:     "nexus",
	Short:   "A terminal client for the NexusAI chat backend",
	Version: "1.0",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	// Create session store
	store, err := session.NewStore(config.Database)
	if err != nil {
		panic(err)
	}
	// Ensure store is closed when the program exits normally
	defer store.Close()

	registry := session.NewRegistry(store)

	rootCmd.AddCommand(chat.NewCmd(config, registry))
	rootCmd.AddCommand(tui.NewCmd(registry))
	rootCmd.Execute()
}
