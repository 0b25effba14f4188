// Package app wires the shared dependencies every command needs: config,
// logger, and the article store.
package app

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonesrussell/newsgate/internal/config"
	"github.com/jonesrussell/newsgate/internal/logger"
	"github.com/jonesrussell/newsgate/internal/storage"
)

// Deps holds the dependencies shared by all commands.
type Deps struct {
	Config  config.Interface
	Logger  logger.Interface
	Storage *storage.Storage
}

// New loads configuration and builds the logger.
func New() (*Deps, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := createLogger()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &Deps{
		Config: cfg,
		Logger: log,
	}, nil
}

// ConnectStorage creates the Elasticsearch client and article store.
func (d *Deps) ConnectStorage() error {
	client, err := storage.NewClient(d.Config.GetElasticsearchConfig(), d.Logger)
	if err != nil {
		return fmt.Errorf("connect storage: %w", err)
	}

	d.Storage = storage.New(client, d.Config.GetElasticsearchConfig().IndexName, d.Logger)
	return nil
}

// createLogger creates a logger instance from Viper configuration.
func createLogger() (logger.Interface, error) {
	logCfg := &logger.Config{
		Level:       logger.Level(normalizeLogLevel(viper.GetString("logger.level"))),
		Development: viper.GetBool("logger.development"),
		Encoding:    viper.GetString("logger.encoding"),
		EnableColor: viper.GetBool("logger.enable_color"),
	}
	return logger.New(logCfg)
}

// normalizeLogLevel normalizes log level string.
func normalizeLogLevel(level string) string {
	if level == "" {
		return "info"
	}
	return strings.ToLower(level)
}
