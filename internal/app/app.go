// Package app wires configuration, clients, and services into a runnable
// application core.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tealscan/tealscan/internal/clients/casparser"
	"github.com/tealscan/tealscan/internal/common"
	"github.com/tealscan/tealscan/internal/interfaces"
	"github.com/tealscan/tealscan/internal/services/analyzer"
	"github.com/tealscan/tealscan/internal/services/report"
)

// App holds all initialized services and clients.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Parser          interfaces.StatementParser
	AnalyzerService interfaces.AnalyzerService
	ReportService   interfaces.ReportService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, the parser client, and the
// services. configPath may be empty, in which case the default resolution
// logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Load configuration - check provided path, TEALSCAN_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("TEALSCAN_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "tealscan.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/tealscan.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	parserClient := casparser.NewClient(
		casparser.WithBaseURL(config.Clients.CASParser.BaseURL),
		casparser.WithTimeout(config.Clients.CASParser.GetTimeout()),
		casparser.WithRateLimit(config.Clients.CASParser.RateLimit),
		casparser.WithLogger(logger),
	)

	analyzerService := analyzer.NewService(config.Engine, logger)
	reportService := report.NewService(parserClient, analyzerService, logger)

	return &App{
		Config:          config,
		Logger:          logger,
		Parser:          parserClient,
		AnalyzerService: analyzerService,
		ReportService:   reportService,
		StartupTime:     time.Now(),
	}, nil
}
