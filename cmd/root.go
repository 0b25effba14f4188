// Package cmd implements the command-line interface for newsgate. It
// provides the root command and subcommands for serving the API, resolving
// articles, listing stored articles, and managing the index.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/newsgate/cmd/articles"
	"github.com/jonesrussell/newsgate/cmd/httpd"
	cmdindex "github.com/jonesrussell/newsgate/cmd/index"
	"github.com/jonesrussell/newsgate/cmd/resolve"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the newsgate CLI.
	rootCmd = &cobra.Command{
		Use:   "newsgate",
		Short: "A news aggregation and resolution service",
		Long: `Newsgate aggregates news articles in a document store and resolves
bare article identifiers against DF.cl by scraping, search, and fallback
synthesis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("newsgate version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(resolve.Command())
	rootCmd.AddCommand(articles.Command())
	rootCmd.AddCommand(cmdindex.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over config file values and
	// defaults.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; defaults and environment variables cover
	// the common deployment.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindCommandLineFlags(); err != nil {
		return err
	}
	if err := bindAppEnvVars(); err != nil {
		return err
	}
	if err := bindElasticsearchEnvVars(); err != nil {
		return err
	}
	if err := bindServiceEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	return nil
}

// bindAppEnvVars binds application and logger environment variables to config keys.
func bindAppEnvVars() error {
	if err := viper.BindEnv("app.environment", "APP_ENV"); err != nil {
		return fmt.Errorf("failed to bind APP_ENV: %w", err)
	}
	if err := viper.BindEnv("app.debug", "APP_DEBUG"); err != nil {
		return fmt.Errorf("failed to bind APP_DEBUG: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	return nil
}

// bindElasticsearchEnvVars binds Elasticsearch environment variables to config keys.
func bindElasticsearchEnvVars() error {
	if err := viper.BindEnv("elasticsearch.addresses", "ELASTICSEARCH_HOSTS", "ELASTICSEARCH_ADDRESSES"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch addresses: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.password", "ELASTIC_PASSWORD", "ELASTICSEARCH_PASSWORD"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch password: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.username", "ELASTICSEARCH_USERNAME"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch username: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.tls.insecure_skip_verify", "ELASTICSEARCH_SKIP_TLS"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch TLS skip verify: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.api_key", "ELASTICSEARCH_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch API key: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.index_name", "ELASTICSEARCH_INDEX_NAME"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch index name: %w", err)
	}
	if err := viper.BindEnv("elasticsearch.retry.max_retries", "ELASTICSEARCH_MAX_RETRIES"); err != nil {
		return fmt.Errorf("failed to bind Elasticsearch max retries: %w", err)
	}
	return nil
}

// bindServiceEnvVars binds external service credentials to config keys.
func bindServiceEnvVars() error {
	if err := viper.BindEnv("search.api_key", "SERPER_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind SERPER_API_KEY: %w", err)
	}
	if err := viper.BindEnv("summarizer.api_key", "OPENAI_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind OPENAI_API_KEY: %w", err)
	}
	return nil
}

// setupDevelopmentLogging configures development logging settings based on
// environment and debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.enable_color", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults - production safe
	viper.SetDefault("app", map[string]any{
		"name":        "newsgate",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	// Logger defaults - production safe
	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "json",
		"enable_color": false,
	})

	// Server defaults - production safe
	viper.SetDefault("server", map[string]any{
		"address":       ":8080",
		"read_timeout":  "15s",
		"write_timeout": "30s",
		"idle_timeout":  "60s",
	})

	// Use 127.0.0.1 instead of localhost to avoid IPv6 resolution issues
	viper.SetDefault("elasticsearch", map[string]any{
		"addresses":  "http://127.0.0.1:9200",
		"index_name": "noticias",
		"tls": map[string]any{
			"enabled":              false,
			"insecure_skip_verify": false,
		},
		"retry": map[string]any{
			"enabled":     true,
			"max_retries": 3,
		},
		"discover_nodes": false,
	})

	viper.SetDefault("scraper", map[string]any{
		"homepage_url":       "https://www.df.cl",
		"fetch_timeout":      "15s",
		"resolution_timeout": "60s",
		"max_attempts":       3,
		"page_cache_size":    20,
		"page_cache_ttl":     "30m",
		"article_cache_size": 100,
		"article_cache_ttl":  "24h",
		"refresh_interval":   "15m",
	})

	viper.SetDefault("search", map[string]any{
		"endpoint":    "https://google.serper.dev/search",
		"country":     "cl",
		"language":    "es",
		"num_results": 10,
	})

	viper.SetDefault("summarizer", map[string]any{
		"model":      "gpt-4o-mini",
		"max_tokens": 300,
	})
}
