package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseRecord_FolderName(t *testing.T) {
	c := CaseRecord{CaseType: "WP(C)", CNRNumber: "KLHC010012342023"}
	assert.Equal(t, "WP(C)_KLHC010012342023", c.FolderName())
}

func TestCaseRecord_Validate(t *testing.T) {
	assert.NoError(t, (&CaseRecord{CNRNumber: "X"}).Validate())
	assert.ErrorIs(t, (&CaseRecord{}).Validate(), ErrInvalidInput)
}

func TestDocument_Sections(t *testing.T) {
	doc := Document{Text: "intro\n" + ChunkSeparator + "\nfirst\n" + ChunkSeparator + "\n\n" + ChunkSeparator + "\nsecond"}
	assert.Equal(t, []string{"intro", "first", "second"}, doc.Sections())
}

func TestDocument_Title(t *testing.T) {
	assert.Equal(t, "A vs B", (&Document{ID: "id_1", Metadata: map[string]string{MetaCaseTitle: "A vs B"}}).Title())
	assert.Equal(t, "id_2", (&Document{ID: "id_2"}).Title())
}

func TestDocument_InterimOrderURLs(t *testing.T) {
	doc := Document{Metadata: map[string]string{MetaInterimOrderURLs: "['u1', 'u2', 'u3']"}}
	urls, err := doc.InterimOrderURLs()
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, urls)
}

func TestChunkSeparator_Is25Hyphens(t *testing.T) {
	assert.Len(t, ChunkSeparator, 25)
	for _, r := range ChunkSeparator {
		assert.Equal(t, '-', r)
	}
}

func TestStageError(t *testing.T) {
	err := fmt.Errorf("case KL1: %w", NewStageError(StageExtract, ErrExtraction))

	assert.ErrorIs(t, err, ErrExtraction)
	assert.Equal(t, StageExtract, StageOf(err))
	assert.Equal(t, Stage(""), StageOf(errors.New("plain")))
	assert.Contains(t, err.Error(), "extract: extraction error")
}

func TestStageStatus_String(t *testing.T) {
	assert.Equal(t, "ok", StageStatus{Code: StatusOK}.String())
	assert.Equal(t, "not_applicable", StageStatus{Code: StatusNotApplicable}.String())
	assert.Equal(t, "ok:empty text", StageStatus{Code: StatusOK, Reason: "empty text"}.String())
	assert.True(t, StageStatus{Code: StatusOK, Reason: "empty text"}.OK())

	st := StatusFromError(NewStageError(StageResolve, ErrNotFound), StageFetch)
	assert.False(t, st.OK())
	assert.Equal(t, "failed:resolve:not found", st.String())

	st = StatusFromError(errors.New("boom"), StageFetch)
	assert.Equal(t, "failed:fetch:boom", st.String())
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"", LangEnglish},
		{"ml", LangMalayalam},
		{"Malayalam", LangMalayalam},
		{"HI", LangHindi},
		{"or", LangOdia},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLanguage("klingon")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, Languages(), 12)
	assert.Equal(t, "Tamil", LangTamil.Name())
}

func TestIngestReport_Counts(t *testing.T) {
	r := IngestReport{Outcomes: []CaseOutcome{
		{Row: 1, DocumentID: "id_1"},
		{Row: 2, Err: ErrParse},
		{Row: 3, DocumentID: "id_2"},
	}}
	assert.Equal(t, 2, r.Indexed())
	require.Len(t, r.Skips(), 1)
	assert.Equal(t, 2, r.Skips()[0].Row)
}

func TestCaseRecord_FolderNameStripsSeparators(t *testing.T) {
	c := CaseRecord{CaseType: "Crl.A/B", CNRNumber: "KL1"}
	assert.Equal(t, "Crl.A-B_KL1", c.FolderName())
}

// ==================== Similarity Tests ====================

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}

func TestKeywordScore(t *testing.T) {
	text := "Bail application under Section 439, granted."
	assert.InDelta(t, 1.0, KeywordScore("bail GRANTED", text), 1e-9)
	assert.InDelta(t, 0.5, KeywordScore("bail refused", text), 1e-9)
	assert.InDelta(t, 0.5, KeywordScore("bail bail refused", text), 1e-9)
	assert.Zero(t, KeywordScore("", text))
}

func TestRankResults(t *testing.T) {
	results := []SearchResult{
		{Document: Document{ID: "a"}, Score: 0.1},
		{Document: Document{ID: "b"}, Score: 0.9},
		{Document: Document{ID: "c"}, Score: 0.9},
		{Document: Document{ID: "d"}, Score: 0.5},
	}
	ranked := RankResults(results, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].Document.ID)
	assert.Equal(t, "c", ranked[1].Document.ID)
	assert.Equal(t, "d", ranked[2].Document.ID)
}

// ==================== Settings Tests ====================

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("/home/u/.casedocs")
	require.NoError(t, s.Validate())
	assert.Equal(t, "documents_db", s.Collection)
	assert.Equal(t, "phi3", s.AI.LLMModel)
	assert.Equal(t, 300, s.OCR.DPI)
	assert.Equal(t, "/home/u/.casedocs/data/downloads", s.Storage.DownloadsDir)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"empty base url", func(s *Settings) { s.Portal.BaseURL = "" }},
		{"zero rate", func(s *Settings) { s.Portal.RequestsPerSecond = 0 }},
		{"zero timeout", func(s *Settings) { s.Portal.Timeout = 0 }},
		{"empty collection", func(s *Settings) { s.Collection = "" }},
		{"zero dpi", func(s *Settings) { s.OCR.DPI = 0 }},
		{"hot temperature", func(s *Settings) { s.AI.Temperature = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings("/tmp")
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestHearingEvent_SetField(t *testing.T) {
	var portal HearingEvent
	for header, value := range map[string]string{
		"Cause List Type":    "Daily List",
		"Hon: Judge":         "Justice A",
		"Business Date":      "01-01-2020",
		"Next Date":          "08-01-2020",
		"Purpose of Hearing": "Admission",
		"Order":              "Adjourned",
	} {
		assert.True(t, portal.SetField(header, value), header)
	}
	assert.Equal(t, HearingEvent{
		CauseListType: "Daily List",
		Judge:         "Justice A",
		BusinessDate:  "01-01-2020",
		NextDate:      "08-01-2020",
		Purpose:       "Admission",
		Order:         "Adjourned",
	}, portal)

	var stored HearingEvent
	assert.True(t, stored.SetField("cause_list_type", "Daily"))
	assert.True(t, stored.SetField("business_date", "02-02-2021"))
	assert.False(t, stored.SetField("Sl No", "1"))
	assert.Equal(t, HearingEvent{CauseListType: "Daily", BusinessDate: "02-02-2021"}, stored)
}

func TestActEntry_SetField(t *testing.T) {
	var a ActEntry
	assert.True(t, a.SetField("Under Act(s)", "Constitution of India"))
	assert.True(t, a.SetField("Under Section(s)", "226"))
	assert.False(t, a.SetField("Remarks", "x"))
	assert.Equal(t, ActEntry{Act: "Constitution of India", Section: "226"}, a)
}
