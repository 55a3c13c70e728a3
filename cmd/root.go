package cmd

import (
	"fmt"
	"github.com/benjmnxu/ngram/cmd/client"
	"github.com/benjmnxu/ngram/cmd/serve"
	"github.com/benjmnxu/ngram/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "ngram",
		Short: "document archive server and client",
		Long: fmt.Sprintf(`ngram (v%s)

An archive service for publishing, searching and retrieving text
documents over a compact binary protocol.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ngram",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ngram v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(client.ClientCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
