package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Inspect indexed case documents",
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the collection",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Print a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentOpenCmd = &cobra.Command{
	Use:   "open [id]",
	Short: "Open the judgement or first interim order in the browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentOpen,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentOpenCmd)
	rootCmd.AddCommand(documentCmd)
}

func documentServices() (*Services, error) {
	s, err := requireServices()
	if err != nil {
		return nil, err
	}
	if s.Document == nil {
		return nil, errors.New("document service not configured")
	}
	return s, nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	s, err := documentServices()
	if err != nil {
		return err
	}

	docs, err := s.Document.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}
	for i := range docs {
		cmd.Printf("%-8s %s\n", docs[i].ID, docs[i].Title())
	}
	cmd.Printf("\n%d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	s, err := documentServices()
	if err != nil {
		return err
	}

	doc, err := s.Document.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s (%s)\n\n", doc.Title(), doc.ID)
	cmd.Println(doc.Text)
	return nil
}

func runDocumentOpen(cmd *cobra.Command, args []string) error {
	s, err := documentServices()
	if err != nil {
		return err
	}
	return s.Document.Open(cmd.Context(), args[0])
}
