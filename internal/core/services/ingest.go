package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// interimOrdersDir is the per-case subfolder for interim order downloads.
const interimOrdersDir = "interim orders"

// IngestService downloads, extracts and indexes the documents of each case.
type IngestService struct {
	resolver     driven.PDFResolver
	fetcher      driven.PDFFetcher
	extractor    driven.TextExtractor
	composer     *Composer
	downloadsDir string
}

// NewIngestService creates an ingestion service that stages downloads
// under downloadsDir.
func NewIngestService(
	resolver driven.PDFResolver,
	fetcher driven.PDFFetcher,
	extractor driven.TextExtractor,
	composer *Composer,
	downloadsDir string,
) *IngestService {
	return &IngestService{
		resolver:     resolver,
		fetcher:      fetcher,
		extractor:    extractor,
		composer:     composer,
		downloadsDir: downloadsDir,
	}
}

// Ingest processes cases one at a time until source is exhausted.
// Document ids continue from the current size of collection.
func (s *IngestService) Ingest(
	ctx context.Context,
	source driven.CaseSource,
	collection driven.Collection,
) (*domain.IngestReport, error) {
	report := &domain.IngestReport{Collection: collection.Name(), StartedAt: time.Now()}
	finish := func(err error) (*domain.IngestReport, error) {
		report.Duration = time.Since(report.StartedAt)
		return report, err
	}

	indexed, err := collection.Count(ctx)
	if err != nil {
		return finish(fmt.Errorf("count collection %s: %w", collection.Name(), err))
	}

	for {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		item, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return finish(fmt.Errorf("read cases: %w", err))
		}

		outcome := domain.CaseOutcome{Row: item.Row, CNRNumber: item.CNRNumber}
		if item.Record != nil && item.Record.CNRNumber != "" {
			outcome.CNRNumber = item.Record.CNRNumber
		}

		switch {
		case item.Err != nil:
			outcome.Err = item.Err
		case item.Record == nil:
			outcome.Err = domain.NewStageError(domain.StageParse, fmt.Errorf("%w: empty case", domain.ErrInvalidInput))
		default:
			if err := item.Record.Validate(); err != nil {
				outcome.Err = domain.NewStageError(domain.StageParse, err)
			}
		}
		if outcome.Err != nil {
			s.skip(report, outcome)
			continue
		}

		logger.Section(fmt.Sprintf("Case %d: %s", item.Row, item.Record.CNRNumber))
		id := fmt.Sprintf("id_%d", indexed+1)
		doc, err := s.buildDocument(ctx, item.Record, id, &outcome)
		if err != nil {
			return finish(err)
		}

		if err := collection.Add(ctx, []domain.Document{doc}); err != nil {
			if ctx.Err() != nil {
				return finish(ctx.Err())
			}
			outcome.Err = domain.NewStageError(domain.StageIndex, err)
			s.skip(report, outcome)
			continue
		}

		indexed++
		outcome.DocumentID = id
		report.Outcomes = append(report.Outcomes, outcome)
		logger.Info("indexed %s as %s", item.Record.CNRNumber, id)
	}

	return finish(nil)
}

func (s *IngestService) skip(report *domain.IngestReport, outcome domain.CaseOutcome) {
	caseID := outcome.CNRNumber
	if caseID == "" {
		caseID = fmt.Sprintf("row %d", outcome.Row)
	}
	stage := domain.StageOf(outcome.Err)
	if stage == "" {
		stage = domain.StageParse
	}
	logger.CaseFailed(caseID, string(stage), outcome.Err)
	report.Outcomes = append(report.Outcomes, outcome)
}

// buildDocument extracts every document of record and composes the result.
// Staged downloads are removed before it returns. Only cancellation is
// returned as an error; document failures are recorded in outcome.
func (s *IngestService) buildDocument(
	ctx context.Context,
	record *domain.CaseRecord,
	id string,
	outcome *domain.CaseOutcome,
) (domain.Document, error) {
	folder := filepath.Join(s.downloadsDir, record.FolderName())
	defer s.cleanup(folder)

	var extractions []domain.Extraction
	outcome.InterimOrders = make([]domain.StageStatus, 0, len(record.InterimOrderURLs))
	for i, url := range record.InterimOrderURLs {
		ext, status := s.extract(ctx, url, filepath.Join(folder, interimOrdersDir))
		if err := ctx.Err(); err != nil {
			return domain.Document{}, err
		}
		outcome.InterimOrders = append(outcome.InterimOrders, status)
		if status.OK() {
			ext.Kind = domain.KindInterimOrder
			ext.Index = i + 1
			extractions = append(extractions, ext)
		}
	}

	outcome.Judgement = domain.StageStatus{Code: domain.StatusNotApplicable}
	if record.JudgementURL != "" {
		ext, status := s.extract(ctx, record.JudgementURL, folder)
		if err := ctx.Err(); err != nil {
			return domain.Document{}, err
		}
		outcome.Judgement = status
		if status.OK() {
			ext.Kind = domain.KindJudgement
			ext.Index = 1
			extractions = append(extractions, ext)
		}
	}

	return domain.Document{
		ID:       id,
		Text:     s.composer.Compose(record, extractions),
		Metadata: documentMetadata(record, outcome),
	}, nil
}

// emptyText marks an extraction that succeeded without yielding any text.
const emptyText = "empty text"

// extract resolves, downloads and extracts one document.
func (s *IngestService) extract(ctx context.Context, url, folder string) (domain.Extraction, domain.StageStatus) {
	fail := func(err error, stage domain.Stage) (domain.Extraction, domain.StageStatus) {
		status := domain.StatusFromError(err, stage)
		logger.Warn("%s: %s", url, status)
		return domain.Extraction{}, status
	}

	direct, err := s.resolver.ResolvePDFURL(ctx, url)
	if err != nil {
		return fail(err, domain.StageResolve)
	}

	path, err := s.fetcher.FetchAndStore(ctx, direct, folder)
	if err != nil {
		return fail(err, domain.StageFetch)
	}

	ext, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return fail(err, domain.StageExtract)
	}
	ext.SourceURL = url
	logger.Debug("extracted %d pages from %s (%s)", ext.Pages, filepath.Base(path), ext.Method)
	if strings.TrimSpace(ext.Text) == "" {
		logger.Warn("%s: %s from %s", url, emptyText, filepath.Base(path))
		return ext, domain.StageStatus{Code: domain.StatusOK, Stage: domain.StageExtract, Reason: emptyText}
	}
	return ext, domain.StageStatus{Code: domain.StatusOK}
}

func (s *IngestService) cleanup(folder string) {
	if err := os.RemoveAll(folder); err != nil {
		logger.Warn("%s: remove %s: %v", domain.StageCleanup, folder, err)
	}
}

func documentMetadata(record *domain.CaseRecord, outcome *domain.CaseOutcome) map[string]string {
	statuses := make([]string, len(outcome.InterimOrders))
	for i, st := range outcome.InterimOrders {
		statuses[i] = st.String()
	}
	encoded, err := json.Marshal(statuses)
	if err != nil {
		encoded = []byte("[]")
	}

	return map[string]string{
		domain.MetaCaseTitle:        record.CaseTitle,
		domain.MetaCaseType:         record.CaseType,
		domain.MetaCNRNumber:        record.CNRNumber,
		domain.MetaInterimOrderURLs: domain.FormatURLList(record.InterimOrderURLs),
		domain.MetaJudgementURL:     record.JudgementURL,
		domain.MetaInterimStatus:    string(encoded),
		domain.MetaJudgementStatus:  outcome.Judgement.String(),
	}
}
