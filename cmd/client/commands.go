package client

import (
	"fmt"
	"github.com/spf13/cobra"
	"os"
)

var (
	publishCmd = &cobra.Command{
		Use:   "publish [path]",
		Short: "Publishes the content of a file as a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runAction("publish"),
	}
	searchCmd = &cobra.Command{
		Use:   "search [word]",
		Short: "Lists the ids of all documents containing a word",
		Args:  cobra.ExactArgs(1),
		RunE:  runAction("search"),
	}
	retrieveCmd = &cobra.Command{
		Use:   "retrieve [id]",
		Short: "Prints the document with the given id",
		Args:  cobra.ExactArgs(1),
		RunE:  runAction("retrieve"),
	}
)

func runAction(action string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(action, args[0])
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		return sendAndPrint(req)
	}
}

// readDocument reads the document to publish
func readDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(content), nil
}
