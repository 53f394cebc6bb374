package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitesearch/internal/searchclient"
	"sitesearch/pkg/config"
	"sitesearch/pkg/logger"
)

var backendURL string

var rootCmd = &cobra.Command{
	Use:           "sitesearch",
	Short:         "Search through website content from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv(nil)
		if !cmd.Flags().Changed("backend") {
			backendURL = config.GetEnv("SEARCH_BACKEND_URL", backendURL)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", searchclient.DefaultEndpoint, "search backend endpoint (env SEARCH_BACKEND_URL)")
	rootCmd.AddCommand(newSearchCmd(), newTUICmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newClient() *searchclient.Client {
	return searchclient.New(backendURL, searchclient.WithLogger(logger.New()))
}
