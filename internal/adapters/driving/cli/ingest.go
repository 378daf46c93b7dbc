package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

var (
	ingestCSV        string
	ingestCollection string
	ingestLive       bool
	ingestCaseTypes  []string
	ingestYears      []int
	ingestLimit      int
	ingestRebuild    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Download, extract and index case documents",
	Long: `Reads case records, downloads their interim orders and judgement, extracts
the text (with OCR for scanned PDFs) and adds one document per case to the
collection.

Cases are read from the scraped CSV by default. Use --live to pull cases from
the portal directly. A case that fails is reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCSV, "csv", "", "input CSV (default storage.cases_csv)")
	ingestCmd.Flags().StringVarP(&ingestCollection, "collection", "c", "", "collection name (default collection.name)")
	ingestCmd.Flags().BoolVar(&ingestLive, "live", false, "read cases from the portal instead of a CSV")
	ingestCmd.Flags().StringSliceVar(&ingestCaseTypes, "case-type", nil, "case type for --live (repeatable)")
	ingestCmd.Flags().IntSliceVar(&ingestYears, "year", nil, "registration year for --live (repeatable)")
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", 0, "with --live, stop after this many cases")
	ingestCmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "delete the collection before ingesting")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Ingest == nil || s.Collections == nil {
		return errors.New("ingest service not configured")
	}
	ctx := cmd.Context()

	name := ingestCollection
	if name == "" {
		name = s.Settings.Collection
	}
	if ingestRebuild {
		if err := s.Collections.Delete(ctx, name); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete collection %s: %w", name, err)
		}
		cmd.Printf("Deleted collection %s\n", name)
	}
	collection, err := s.Collections.GetOrCreate(ctx, name)
	if err != nil {
		return fmt.Errorf("open collection %s: %w", name, err)
	}

	source, err := openIngestSource(s)
	if err != nil {
		return err
	}
	defer source.Close()

	report, err := s.Ingest.Ingest(ctx, source, collection)
	if report != nil {
		printIngestReport(cmd, report)
	}
	return err
}

func openIngestSource(s *Services) (driven.CaseSource, error) {
	if ingestLive {
		if s.LiveCases == nil {
			return nil, errors.New("live source not configured")
		}
		return s.LiveCases(ingestCaseTypes, ingestYears, ingestLimit)
	}

	path := ingestCSV
	if path == "" {
		path = s.Settings.Storage.CasesCSV
	}
	source, err := s.OpenCases(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return source, nil
}

func printIngestReport(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("Indexed %d of %d cases into %s in %s\n",
		report.Indexed(), len(report.Outcomes), report.Collection, report.Duration.Round(time.Millisecond))

	for _, o := range report.Outcomes {
		if o.Skipped() {
			continue
		}
		failed := 0
		for _, st := range o.InterimOrders {
			if st.Code == domain.StatusFailed {
				failed++
			}
		}
		if failed > 0 || o.Judgement.Code == domain.StatusFailed {
			cmd.Printf("  %s (%s): %d of %d interim orders failed, judgement %s\n",
				o.DocumentID, o.CNRNumber, failed, len(o.InterimOrders), o.Judgement)
		}
	}

	skips := report.Skips()
	if len(skips) == 0 {
		return
	}
	cmd.Printf("Skipped %d cases:\n", len(skips))
	for _, o := range skips {
		id := o.CNRNumber
		if id == "" {
			id = fmt.Sprintf("row %d", o.Row)
		}
		stage := domain.StageOf(o.Err)
		if stage == "" {
			stage = domain.StageParse
		}
		cmd.Printf("  %s [%s]: %v\n", id, stage, o.Err)
	}
}
