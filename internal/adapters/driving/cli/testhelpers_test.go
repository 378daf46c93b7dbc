package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casedocs/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/casedocs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
	coreservices "github.com/custodia-labs/casedocs/internal/core/services"
)

// fakeScrape implements driving.ScrapeService with canned records.
type fakeScrape struct {
	types   []domain.CaseType
	records []*domain.CaseRecord
	opts    domain.ScrapeOptions
}

func (f *fakeScrape) CaseTypes(context.Context) ([]domain.CaseType, error) {
	return f.types, nil
}

func (f *fakeScrape) Scrape(ctx context.Context, opts domain.ScrapeOptions, sink driven.CaseSink) (*domain.ScrapeReport, error) {
	f.opts = opts
	report := &domain.ScrapeReport{Queries: len(opts.Years), Listed: len(f.records) + 1}
	for _, r := range f.records {
		if err := sink.Write(ctx, r); err != nil {
			return report, err
		}
		report.Scraped++
	}
	report.Failures = append(report.Failures, domain.CaseFailure{
		CaseNumber: "WP(C) 9/2023",
		Err:        domain.NewStageError(domain.StageParse, errors.New("details table missing")),
	})
	return report, nil
}

// fakeIngest implements driving.IngestService by indexing case titles.
type fakeIngest struct{}

func (fakeIngest) Ingest(ctx context.Context, source driven.CaseSource, c driven.Collection) (*domain.IngestReport, error) {
	report := &domain.IngestReport{Collection: c.Name()}
	n, err := c.Count(ctx)
	if err != nil {
		return report, err
	}
	for {
		item, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return report, nil
		}
		if err != nil {
			return report, err
		}
		outcome := domain.CaseOutcome{Row: item.Row, Err: item.Err}
		if item.Record != nil {
			outcome.CNRNumber = item.Record.CNRNumber
		}
		if outcome.Err == nil {
			n++
			outcome.DocumentID = fmt.Sprintf("id_%d", n)
			outcome.Judgement = domain.StageStatus{Code: domain.StatusNotApplicable}
			doc := domain.Document{ID: outcome.DocumentID, Text: item.Record.CaseTitle, Metadata: map[string]string{
				domain.MetaCaseTitle: item.Record.CaseTitle,
			}}
			if err := c.Add(ctx, []domain.Document{doc}); err != nil {
				return report, err
			}
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
}

// fakeQnA implements driving.QnAService with a scripted session.
type fakeQnA struct {
	session *fakeSession
}

func (f *fakeQnA) OpenSession(_ context.Context, docID string) (driving.ChatSession, error) {
	if docID != "id_1" {
		return nil, fmt.Errorf("open document %s: %w", docID, domain.ErrNotFound)
	}
	f.session.docID = docID
	return f.session, nil
}

type fakeSession struct {
	docID     string
	questions []string
	langs     []domain.Language
	resets    int
}

func (s *fakeSession) DocumentID() string { return s.docID }

func (s *fakeSession) Ask(_ context.Context, question string, lang domain.Language) (*domain.Answer, error) {
	if question == "fail" {
		return nil, domain.ErrLLMUnavailable
	}
	s.questions = append(s.questions, question)
	s.langs = append(s.langs, lang)
	return &domain.Answer{Text: fmt.Sprintf("answer %d (%s)", len(s.questions), lang), Language: lang}, nil
}

func (s *fakeSession) History() []domain.ChatTurn { return nil }

func (s *fakeSession) Reset() { s.resets++ }

// testEnv is the state behind the services installed by setupTestServices.
type testEnv struct {
	dir         string
	collections *memory.CollectionStore
	collection  driven.Collection
	config      *memory.ConfigStore
	scrape      *fakeScrape
	session     *fakeSession
	services    *Services
}

func seedDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:   "id_1",
			Text: "CNR Number: KLHC010001232023\nmotor accident compensation claim",
			Metadata: map[string]string{
				domain.MetaCaseTitle:        "Joseph v. United India Insurance",
				domain.MetaCaseType:         "MACA",
				domain.MetaCNRNumber:        "KLHC010001232023",
				domain.MetaInterimOrderURLs: `["https://hckinfo.example/io/1"]`,
				domain.MetaJudgementURL:     "https://hckinfo.example/j/1",
			},
		},
		{
			ID:   "id_2",
			Text: "CNR Number: KLHC010004562022\nanticipatory bail application",
			Metadata: map[string]string{
				domain.MetaCaseTitle:        "Thomas v. State of Kerala",
				domain.MetaCaseType:         "BAIL APPL.",
				domain.MetaCNRNumber:        "KLHC010004562022",
				domain.MetaInterimOrderURLs: "[]",
			},
		},
	}
}

// setupTestServices installs in-memory services and resets command flags.
// Everything is restored when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	collections := memory.NewCollectionStore()
	collection, err := collections.GetOrCreate(ctx, domain.DefaultCollectionName)
	require.NoError(t, err)
	require.NoError(t, collection.Add(ctx, seedDocuments()))

	settings := domain.DefaultSettings(dir)
	settings.Storage.CasesCSV = filepath.Join(dir, "cases.csv")

	env := &testEnv{
		dir:         dir,
		collections: collections,
		collection:  collection,
		config:      memory.NewConfigStore(),
		scrape: &fakeScrape{
			types: []domain.CaseType{{Value: "", Label: "Select"}, {Value: "1", Label: "WP(C)"}, {Value: "7", Label: "MACA"}},
			records: []*domain.CaseRecord{
				{CNRNumber: "KLHC010001112023", CaseTitle: "Mathew v. State", CaseType: "WP(C)"},
				{CNRNumber: "KLHC010002222023", CaseTitle: "Mary v. Union of India", CaseType: "WP(C)"},
			},
		},
		session: &fakeSession{},
	}
	env.services = &Services{
		Settings:    settings,
		Config:      env.config,
		Collections: collections,
		Scrape:      env.scrape,
		Ingest:      fakeIngest{},
		Search:      coreservices.NewSearchService(collection),
		Document:    coreservices.NewDocumentService(collection),
		QnA:         &fakeQnA{session: env.session},
		OpenCases: func(path string) (driven.CaseSource, error) {
			return csvfile.Open(path)
		},
		CreateCases: func(path string) (driven.CaseSink, error) {
			return csvfile.Create(path)
		},
	}

	previous := services
	SetServices(env.services)
	resetFlags()
	t.Cleanup(func() {
		SetServices(previous)
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return env
}

// resetFlags restores command flag variables to their defaults.
// Slice flags are reset to nil so their next Set starts from empty.
func resetFlags() {
	verbose = false
	configPath = ""

	scrapeCaseTypes = nil
	scrapeFromYear, scrapeToYear = 2023, 2023
	scrapeOut = ""
	scrapeLimit = 0
	scrapeListTypes = false

	ingestCSV = ""
	ingestCollection = ""
	ingestLive = false
	ingestCaseTypes = nil
	ingestYears = nil
	ingestLimit = 0
	ingestRebuild = false

	searchLimit = domain.DefaultSearchLimit
	searchJSON = false

	askLanguage = "en"

	tuiDocument = ""
	tuiLanguage = "en"
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeCases writes records to path as a case CSV.
func writeCases(t *testing.T, path string, records ...*domain.CaseRecord) {
	t.Helper()
	sink, err := csvfile.Create(path)
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, sink.Write(context.Background(), r))
	}
	require.NoError(t, sink.Close())
}
