// Package cli implements the casedocs command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// version is set at build time.
var version = "dev"

// skipServices marks commands that run without bootstrapping services.
const skipServices = "skip-services"

// Services holds everything the commands drive.
type Services struct {
	Settings    domain.Settings
	Config      driven.ConfigStore
	Collections driven.CollectionStore

	Scrape   driving.ScrapeService
	Ingest   driving.IngestService
	Search   driving.SearchService
	Document driving.DocumentService
	QnA      driving.QnAService

	// OpenCases reads case records from a CSV file.
	OpenCases func(path string) (driven.CaseSource, error)
	// CreateCases writes case records to a CSV file.
	CreateCases func(path string) (driven.CaseSink, error)
	// LiveCases streams case records straight from the portal.
	LiveCases func(caseTypes []string, years []int, limit int) (driven.CaseSource, error)

	// Close releases resources held by the services.
	Close func() error
}

// Bootstrap builds services from the configuration file at configPath.
// An empty path selects the default location.
type Bootstrap func(configPath string) (*Services, error)

var (
	services  *Services
	bootstrap Bootstrap

	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "casedocs",
	Short: "Search and question Kerala High Court case documents",
	Long: `casedocs scrapes case details from the Kerala High Court portal, downloads
interim orders and judgements, extracts their text and indexes one document per
case for search and question answering.

Typical flow:
  casedocs scrape --case-type 1 --from-year 2023 --to-year 2023
  casedocs ingest
  casedocs search "compensation for collision"
  casedocs ask id_1`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.casedocs/config.toml)")
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	services = s
}

// SetBootstrap sets the function used to build services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if services != nil && services.Close != nil {
			if err := services.Close(); err != nil {
				logger.Warn("close services: %v", err)
			}
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipServices] != "" {
			return nil
		}
	}
	if services != nil || bootstrap == nil {
		return nil
	}

	s, err := bootstrap(configPath)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	services = s
	return nil
}

func requireServices() (*Services, error) {
	if services == nil {
		return nil, errors.New("services not configured")
	}
	return services, nil
}
