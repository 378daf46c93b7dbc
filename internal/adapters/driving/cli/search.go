package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// Placeholders shown when a case has no documents of a kind.
const (
	noInterimOrders = "No interim orders available for this case."
	noJudgement     = "No judgements available for this case."
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed case documents",
	Long: `Ranks the documents of the collection against the query.
Uses semantic similarity when an embedding model is configured, keyword
overlap otherwise. Each result shows the document id to pass to "ask".`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Search == nil {
		return errors.New("search service not configured")
	}

	results, err := s.Search.Search(cmd.Context(), args[0], domain.SearchOptions{Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchTable(cmd, results)
	return nil
}

// searchResultJSON is the JSON form of one search result.
type searchResultJSON struct {
	ID               string   `json:"id"`
	Score            float64  `json:"score"`
	CaseTitle        string   `json:"case_title"`
	CaseType         string   `json:"case_type"`
	CNRNumber        string   `json:"cnr_num"`
	InterimOrderURLs []string `json:"interim_order_urls"`
	JudgementURL     string   `json:"judgement_url"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{
			ID:               r.Document.ID,
			Score:            r.Score,
			CaseTitle:        r.Document.Metadata[domain.MetaCaseTitle],
			CaseType:         r.Document.Metadata[domain.MetaCaseType],
			CNRNumber:        r.Document.Metadata[domain.MetaCNRNumber],
			InterimOrderURLs: r.InterimOrderURLs,
			JudgementURL:     r.JudgementURL,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, r.Document.Title(), r.Score)
		cmd.Printf("      ID: %s  Type: %s  CNR: %s\n",
			r.Document.ID, r.Document.Metadata[domain.MetaCaseType], r.Document.Metadata[domain.MetaCNRNumber])
		cmd.Println("      Interim orders:")
		if len(r.InterimOrderURLs) == 0 {
			cmd.Printf("        %s\n", noInterimOrders)
		}
		for j, u := range r.InterimOrderURLs {
			cmd.Printf("        %d. %s\n", j+1, u)
		}
		judgement := strings.TrimSpace(r.JudgementURL)
		if judgement == "" {
			judgement = noJudgement
		}
		cmd.Printf("      Judgement: %s\n", judgement)
		cmd.Println()
	}
}
