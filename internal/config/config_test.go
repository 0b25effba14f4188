package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.GetServerConfig().Address)
	require.Equal(t, "noticias", cfg.GetElasticsearchConfig().IndexName)

	scraperCfg := cfg.GetScraperConfig()
	require.Equal(t, []string{"https://www.df.cl", "https://df.cl"}, scraperCfg.Domains)
	require.Len(t, scraperCfg.Sections, 11)
	require.Equal(t, 60*time.Second, scraperCfg.ResolutionTimeout)

	require.False(t, cfg.GetSearchConfig().Enabled())
	require.False(t, cfg.GetSummarizerConfig().Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("server.address", ":9090")
	v.Set("elasticsearch.index_name", "noticias_test")
	v.Set("elasticsearch.addresses", "http://es1:9200,http://es2:9200")
	v.Set("scraper.fetch_timeout", "5s")
	v.Set("scraper.max_attempts", 2)
	v.Set("search.api_key", "serper-key")
	v.Set("summarizer.api_key", "openai-key")

	cfg, err := config.Load(v)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.GetServerConfig().Address)
	require.Equal(t, "noticias_test", cfg.GetElasticsearchConfig().IndexName)
	require.Equal(t,
		[]string{"http://es1:9200", "http://es2:9200"},
		cfg.GetElasticsearchConfig().Addresses)
	require.Equal(t, 5*time.Second, cfg.GetScraperConfig().FetchTimeout)
	require.Equal(t, 2, cfg.GetScraperConfig().MaxAttempts)
	require.True(t, cfg.GetSearchConfig().Enabled())
	require.True(t, cfg.GetSummarizerConfig().Enabled())
}

func TestCandidateSpaceSize(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	scraperCfg := cfg.GetScraperConfig()
	// Each slug probes every domain bare plus every domain/section pair.
	total := len(scraperCfg.Domains) * (1 + len(scraperCfg.Sections))
	require.Equal(t, 24, total)
}
