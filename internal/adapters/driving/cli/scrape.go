package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

var (
	scrapeCaseTypes []string
	scrapeFromYear  int
	scrapeToYear    int
	scrapeOut       string
	scrapeLimit     int
	scrapeListTypes bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape case details from the portal",
	Long: `Queries the portal for every requested case type and registration year,
fetches the details page of each listed case and writes one CSV row per case.

Without --case-type every case type offered by the portal is scraped.
Use --list-types to print the available case types.`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	year := time.Now().Year()
	scrapeCmd.Flags().StringSliceVar(&scrapeCaseTypes, "case-type", nil, "case type value to scrape (repeatable)")
	scrapeCmd.Flags().IntVar(&scrapeFromYear, "from-year", year, "first registration year")
	scrapeCmd.Flags().IntVar(&scrapeToYear, "to-year", year, "last registration year")
	scrapeCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "output CSV (default storage.cases_csv)")
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "stop after this many cases (0 = no limit)")
	scrapeCmd.Flags().BoolVar(&scrapeListTypes, "list-types", false, "list case types and exit")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Scrape == nil {
		return fmt.Errorf("scrape service not configured")
	}

	if scrapeListTypes {
		types, err := s.Scrape.CaseTypes(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range types {
			if t.Value == "" {
				continue
			}
			cmd.Printf("%-6s %s\n", t.Value, t.Label)
		}
		return nil
	}

	if scrapeToYear < scrapeFromYear {
		return fmt.Errorf("%w: --to-year %d is before --from-year %d", domain.ErrInvalidInput, scrapeToYear, scrapeFromYear)
	}
	years := make([]int, 0, scrapeToYear-scrapeFromYear+1)
	for y := scrapeFromYear; y <= scrapeToYear; y++ {
		years = append(years, y)
	}

	out := scrapeOut
	if out == "" {
		out = s.Settings.Storage.CasesCSV
	}
	sink, err := s.CreateCases(out)
	if err != nil {
		return fmt.Errorf("open %s: %w", out, err)
	}

	report, err := s.Scrape.Scrape(cmd.Context(), domain.ScrapeOptions{
		CaseTypes: scrapeCaseTypes,
		Years:     years,
		Limit:     scrapeLimit,
	}, sink)
	if closeErr := sink.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close %s: %w", out, closeErr)
	}

	if report != nil {
		cmd.Printf("Scraped %d of %d listed cases over %d queries in %s\n",
			report.Scraped, report.Listed, report.Queries, report.Duration.Round(time.Millisecond))
		for _, f := range report.Failures {
			cmd.Printf("  skipped %s: %v\n", f.CaseNumber, f.Err)
		}
		cmd.Printf("Wrote %s\n", out)
	}
	return err
}
