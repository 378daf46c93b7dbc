package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// DefaultCollectionName is the collection ingested into and searched by default.
const DefaultCollectionName = "documents_db"

// Settings is the typed application configuration.
type Settings struct {
	Portal     PortalSettings
	Storage    StorageSettings
	Collection string
	OCR        OCRSettings
	AI         AISettings
}

// PortalSettings configures the court portal client.
type PortalSettings struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	UserAgent         string
}

// StorageSettings locates local data. Relative paths are resolved against DataDir.
type StorageSettings struct {
	// DataDir holds the collection database.
	DataDir string

	// DownloadsDir holds per-case download folders during ingestion.
	DownloadsDir string

	// CasesCSV is the scraped case file read by ingestion.
	CasesCSV string
}

// OCRSettings configures the scanned-document path.
type OCRSettings struct {
	// Language is a Tesseract language code such as "eng".
	Language string
	DPI      int
}

// AISettings configures the Ollama services.
type AISettings struct {
	BaseURL        string
	EmbeddingModel string
	LLMModel       string
	Temperature    float64
}

// DefaultSettings returns the settings used when no configuration is present.
// baseDir is the application directory, usually ~/.casedocs.
func DefaultSettings(baseDir string) Settings {
	dataDir := filepath.Join(baseDir, "data")
	return Settings{
		Portal: PortalSettings{
			BaseURL:           "https://hckinfo.kerala.gov.in/digicourt/Casedetailssearch",
			Timeout:           60 * time.Second,
			RequestsPerSecond: 1,
			UserAgent:         "casedocs/0.1 (+https://github.com/custodia-labs/casedocs)",
		},
		Storage: StorageSettings{
			DataDir:      dataDir,
			DownloadsDir: filepath.Join(dataDir, "downloads"),
			CasesCSV:     filepath.Join(dataDir, "output.csv"),
		},
		Collection: DefaultCollectionName,
		OCR: OCRSettings{
			Language: "eng",
			DPI:      300,
		},
		AI: AISettings{
			BaseURL:        "http://localhost:11434",
			EmbeddingModel: "nomic-embed-text",
			LLMModel:       "phi3",
			Temperature:    0.6,
		},
	}
}

// Validate rejects settings that cannot drive a run.
func (s Settings) Validate() error {
	switch {
	case s.Portal.BaseURL == "":
		return fmt.Errorf("%w: portal.base_url is empty", ErrInvalidInput)
	case s.Portal.RequestsPerSecond <= 0:
		return fmt.Errorf("%w: portal.requests_per_second must be positive", ErrInvalidInput)
	case s.Portal.Timeout <= 0:
		return fmt.Errorf("%w: portal.timeout must be positive", ErrInvalidInput)
	case s.Collection == "":
		return fmt.Errorf("%w: collection.name is empty", ErrInvalidInput)
	case s.OCR.DPI <= 0:
		return fmt.Errorf("%w: ocr.dpi must be positive", ErrInvalidInput)
	case s.AI.Temperature < 0 || s.AI.Temperature > 2:
		return fmt.Errorf("%w: ai.temperature must be within [0, 2]", ErrInvalidInput)
	}
	return nil
}
