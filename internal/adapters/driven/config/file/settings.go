package file

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// Configuration keys. Each maps onto one domain.Settings field.
const (
	KeyPortalBaseURL           = "portal.base_url"
	KeyPortalTimeout           = "portal.timeout"
	KeyPortalRequestsPerSecond = "portal.requests_per_second"
	KeyPortalUserAgent         = "portal.user_agent"
	KeyStorageDataDir          = "storage.data_dir"
	KeyStorageDownloadsDir     = "storage.downloads_dir"
	KeyStorageCasesCSV         = "storage.cases_csv"
	KeyCollectionName          = "collection.name"
	KeyOCRLanguage             = "ocr.language"
	KeyOCRDPI                  = "ocr.dpi"
	KeyAIBaseURL               = "ai.base_url"
	KeyAIEmbeddingModel        = "ai.embedding_model"
	KeyAILLMModel              = "ai.llm_model"
	KeyAITemperature           = "ai.temperature"
)

// Keys lists every recognised configuration key in display order.
var Keys = []string{
	KeyPortalBaseURL, KeyPortalTimeout, KeyPortalRequestsPerSecond, KeyPortalUserAgent,
	KeyStorageDataDir, KeyStorageDownloadsDir, KeyStorageCasesCSV,
	KeyCollectionName,
	KeyOCRLanguage, KeyOCRDPI,
	KeyAIBaseURL, KeyAIEmbeddingModel, KeyAILLMModel, KeyAITemperature,
}

// LoadSettings overlays the values in store onto domain.DefaultSettings.
// Relative storage paths are resolved against the data directory.
func LoadSettings(store driven.ConfigStore, baseDir string) domain.Settings {
	s := domain.DefaultSettings(baseDir)

	setString(store, KeyPortalBaseURL, &s.Portal.BaseURL)
	setString(store, KeyPortalUserAgent, &s.Portal.UserAgent)
	if d, ok := duration(store, KeyPortalTimeout); ok {
		s.Portal.Timeout = d
	}
	setFloat(store, KeyPortalRequestsPerSecond, &s.Portal.RequestsPerSecond)

	dataDirSet := setString(store, KeyStorageDataDir, &s.Storage.DataDir)
	if dataDirSet {
		// Derived paths follow a relocated data directory unless set themselves.
		s.Storage.DownloadsDir = filepath.Join(s.Storage.DataDir, "downloads")
		s.Storage.CasesCSV = filepath.Join(s.Storage.DataDir, "output.csv")
	}
	setString(store, KeyStorageDownloadsDir, &s.Storage.DownloadsDir)
	setString(store, KeyStorageCasesCSV, &s.Storage.CasesCSV)
	s.Storage.DownloadsDir = resolve(s.Storage.DataDir, s.Storage.DownloadsDir)
	s.Storage.CasesCSV = resolve(s.Storage.DataDir, s.Storage.CasesCSV)

	setString(store, KeyCollectionName, &s.Collection)

	setString(store, KeyOCRLanguage, &s.OCR.Language)
	if _, ok := store.Get(KeyOCRDPI); ok {
		if dpi := store.GetInt(KeyOCRDPI); dpi > 0 {
			s.OCR.DPI = dpi
		}
	}

	setString(store, KeyAIBaseURL, &s.AI.BaseURL)
	setString(store, KeyAIEmbeddingModel, &s.AI.EmbeddingModel)
	setString(store, KeyAILLMModel, &s.AI.LLMModel)
	setFloat(store, KeyAITemperature, &s.AI.Temperature)

	return s
}

// SettingValue returns the effective value of key as display text.
func SettingValue(s domain.Settings, key string) (string, bool) {
	switch key {
	case KeyPortalBaseURL:
		return s.Portal.BaseURL, true
	case KeyPortalTimeout:
		return s.Portal.Timeout.String(), true
	case KeyPortalRequestsPerSecond:
		return strconv.FormatFloat(s.Portal.RequestsPerSecond, 'g', -1, 64), true
	case KeyPortalUserAgent:
		return s.Portal.UserAgent, true
	case KeyStorageDataDir:
		return s.Storage.DataDir, true
	case KeyStorageDownloadsDir:
		return s.Storage.DownloadsDir, true
	case KeyStorageCasesCSV:
		return s.Storage.CasesCSV, true
	case KeyCollectionName:
		return s.Collection, true
	case KeyOCRLanguage:
		return s.OCR.Language, true
	case KeyOCRDPI:
		return strconv.Itoa(s.OCR.DPI), true
	case KeyAIBaseURL:
		return s.AI.BaseURL, true
	case KeyAIEmbeddingModel:
		return s.AI.EmbeddingModel, true
	case KeyAILLMModel:
		return s.AI.LLMModel, true
	case KeyAITemperature:
		return strconv.FormatFloat(s.AI.Temperature, 'g', -1, 64), true
	}
	return "", false
}

func setString(store driven.ConfigStore, key string, dst *string) bool {
	if v := store.GetString(key); v != "" {
		*dst = v
		return true
	}
	return false
}

func setFloat(store driven.ConfigStore, key string, dst *float64) {
	if _, ok := store.Get(key); ok {
		*dst = store.GetFloat(key)
	}
}

// duration accepts a Go duration string ("90s") or a number of seconds.
func duration(store driven.ConfigStore, key string) (time.Duration, bool) {
	val, ok := store.Get(key)
	if !ok {
		return 0, false
	}
	if str, isStr := val.(string); isStr {
		d, err := time.ParseDuration(str)
		return d, err == nil
	}
	secs := store.GetFloat(key)
	if secs <= 0 {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
