package cli

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casedocs/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/casedocs/internal/core/domain"
)

func TestScrapeCmd_Flags(t *testing.T) {
	for _, name := range []string{"case-type", "from-year", "to-year", "out", "limit", "list-types"} {
		assert.NotNil(t, scrapeCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "o", scrapeCmd.Flags().Lookup("out").Shorthand)
}

func TestScrapeCmd_ListTypes(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "scrape", "--list-types")

	require.NoError(t, err)
	assert.Contains(t, out, "1      WP(C)")
	assert.Contains(t, out, "7      MACA")
	assert.NotContains(t, out, "Select")
}

func TestScrapeCmd_WritesCSV(t *testing.T) {
	env := setupTestServices(t)
	path := filepath.Join(env.dir, "scraped.csv")

	out, err := run(t, "scrape", "--case-type", "1", "--case-type", "7",
		"--from-year", "2022", "--to-year", "2023", "--limit", "5", "-o", path)

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "7"}, env.scrape.opts.CaseTypes)
	assert.Equal(t, []int{2022, 2023}, env.scrape.opts.Years)
	assert.Equal(t, 5, env.scrape.opts.Limit)
	assert.Contains(t, out, "Scraped 2 of 3 listed cases over 2 queries")
	assert.Contains(t, out, "skipped WP(C) 9/2023")
	assert.Contains(t, out, "Wrote "+path)

	source, err := csvfile.Open(path)
	require.NoError(t, err)
	defer source.Close()
	var cnrs []string
	for {
		item, err := source.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		cnrs = append(cnrs, item.Record.CNRNumber)
	}
	assert.Equal(t, []string{"KLHC010001112023", "KLHC010002222023"}, cnrs)
}

func TestScrapeCmd_DefaultOutput(t *testing.T) {
	env := setupTestServices(t)

	out, err := run(t, "scrape", "--from-year", "2023", "--to-year", "2023")

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+env.services.Settings.Storage.CasesCSV)
	assert.FileExists(t, env.services.Settings.Storage.CasesCSV)
	assert.Empty(t, env.scrape.opts.CaseTypes)
}

func TestScrapeCmd_YearRangeReversed(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "scrape", "--from-year", "2024", "--to-year", "2020")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScrapeCmd_NoArgs(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "scrape", "extra")

	assert.Error(t, err)
}
