package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

var askLanguage string

var askCmd = &cobra.Command{
	Use:   "ask [id] [question]",
	Short: "Ask questions about one case document",
	Long: `Answers questions about a single indexed document using the configured LLM.

With a question argument a single answer is printed. Otherwise questions are
read line by line from stdin; on a terminal this is an interactive chat where
follow-up questions use the earlier turns as context.

Chat commands:
  /reset  - forget the conversation so far
  /quit   - end the session`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

func init() {
	askCmd.Long += "\n\nLanguages:\n  " + languageList()
	askCmd.Flags().StringVarP(&askLanguage, "lang", "l", "en", "answer language (code or name, e.g. hi or Hindi)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.QnA == nil {
		return errors.New("question answering not configured")
	}

	lang, err := domain.ParseLanguage(askLanguage)
	if err != nil {
		return err
	}

	session, err := s.QnA.OpenSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(args) == 2 {
		return askOnce(cmd, session, args[1], lang)
	}
	return askLoop(cmd, session, lang, isInteractive(cmd.InOrStdin()))
}

func askOnce(cmd *cobra.Command, session driving.ChatSession, question string, lang domain.Language) error {
	answer, err := session.Ask(cmd.Context(), question, lang)
	if err != nil {
		return err
	}
	cmd.Println(answer.Text)
	return nil
}

func askLoop(cmd *cobra.Command, session driving.ChatSession, lang domain.Language, interactive bool) error {
	if interactive {
		cmd.Printf("Chatting about %s. Type /quit to exit.\n", session.DocumentID())
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if interactive {
			cmd.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			session.Reset()
			cmd.Println("Conversation cleared.")
			continue
		}

		if err := askOnce(cmd, session, line, lang); err != nil {
			if !interactive {
				return err
			}
			cmd.PrintErrf("error: %v\n", err)
		}
		if interactive {
			cmd.Println()
		}
	}
	return scanner.Err()
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// languageList formats the supported answer languages for help output.
func languageList() string {
	names := make([]string, 0, len(domain.Languages()))
	for _, l := range domain.Languages() {
		names = append(names, fmt.Sprintf("%s (%s)", l, l.Name()))
	}
	return strings.Join(names, ", ")
}
