package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dealdesk/dealpilot/internal/admin"
	"github.com/dealdesk/dealpilot/internal/config"
	"github.com/dealdesk/dealpilot/internal/deal"
	"github.com/dealdesk/dealpilot/internal/lender"
	"github.com/dealdesk/dealpilot/internal/rulestore"
	"github.com/dealdesk/dealpilot/internal/server"
	"github.com/dealdesk/dealpilot/pkg/constants"
	"github.com/dealdesk/dealpilot/pkg/output"
	"github.com/dealdesk/dealpilot/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Pick up DEALPILOT_ADMIN_PASSCODE and friends from a local .env when present.
	_ = godotenv.Load()

	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	dealLocation := flag.String("deal", "", "path to a deal YAML file to evaluate")
	checklistLender := flag.String("lender", "", "include the funding checklist for this lender in the report")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "start the HTTP API instead of a one-shot evaluation")
	addr := flag.String("addr", "", "HTTP listen address override")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Load the lender rule set once per session; a missing file starts from
	// the built-in defaults.
	store := rulestore.NewStore(conf.Rules.Path, logger)
	rules, err := store.Load()
	if err != nil {
		logger.Fatal("failed to load lender rules",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *serve {
		session := admin.NewSession(conf.AdminPasscode())
		handler := server.NewHandler(logger, rules, store, session, version)

		address := conf.Server.Address
		if *addr != "" {
			address = *addr
		}

		logger.Info("starting HTTP API",
			zap.String("op", "main"),
			zap.String("address", address),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("HTTP server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *dealLocation == "" {
		logger.Fatal("no deal file provided; use -deal or -serve",
			zap.String("op", "main"),
		)
	}

	dealBytes, err := os.ReadFile(*dealLocation)
	if err != nil {
		logger.Fatal(fmt.Sprintf("failed to read deal file at %s", *dealLocation),
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var input deal.Input
	if err := yaml.Unmarshal(dealBytes, &input); err != nil {
		logger.Fatal("failed to parse deal file",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Validate the form-level contract and display any warnings
	warnings := validation.CheckDealInput(input)
	for _, warning := range warnings {
		logger.Warn("Deal input warning: "+warning,
			zap.String("op", "main"),
		)
	}

	metrics := deal.ComputeMetrics(input)
	matches := lender.MatchLenders(metrics, rules)
	alerts := lender.ComputeAlerts(metrics, rules, input.Scores, input.BaseValue)

	eval := output.Evaluation{
		Metrics:  metrics,
		Matches:  matches,
		Alerts:   alerts,
		Warnings: warnings,
	}

	if *checklistLender != "" {
		docs, err := rules.Checklist(*checklistLender)
		if err != nil {
			logger.Fatal("failed to look up funding checklist",
				zap.String("op", "main"),
				zap.String("lender", *checklistLender),
				zap.Error(err),
			)
		}
		eval.ChecklistLender = *checklistLender
		eval.Checklist = docs
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(eval)
	case constants.OutputFormatCSV:
		output.CsvFormat(eval)
	}
}
