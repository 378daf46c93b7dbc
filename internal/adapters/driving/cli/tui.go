package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui"
	"github.com/custodia-labs/casedocs/internal/core/domain"
)

var (
	tuiDocument string
	tuiLanguage string
)

// runProgram runs the TUI app. Replaced in tests.
var runProgram = func(app *tui.App) error {
	return app.Run()
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for searching ingested cases,
reading their documents and chatting about a single case.

Controls:
  Enter      - Search / actions on the selected case
  ↑/k, ↓/j   - Navigate results, scroll documents
  r, a, o    - Read, ask about, or open the selected case
  ctrl+l     - Change the answer language while chatting
  Esc        - Back
  ctrl+c     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiDocument, "doc", "", "start chatting about this document ID")
	tuiCmd.Flags().StringVarP(&tuiLanguage, "lang", "l", "en", "initial answer language")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panicked: %v", r)
		}
	}()

	s, err := requireServices()
	if err != nil {
		return err
	}

	lang, err := domain.ParseLanguage(tuiLanguage)
	if err != nil {
		return err
	}

	ports := &tui.Ports{Search: s.Search, Document: s.Document, QnA: s.QnA}
	app, err := tui.NewApp(ports, tui.Options{DocumentID: tuiDocument, Language: lang})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
