package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ecolink/ecolink/internal/ai"
	"github.com/ecolink/ecolink/internal/ai/gemini"
	"github.com/ecolink/ecolink/internal/directory"
	"github.com/ecolink/ecolink/internal/logger"
	"github.com/ecolink/ecolink/internal/secrets"
)

// setup builds the logger and reads the config. Both failures are fatal.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting", zap.String("app", app), zap.String("version", version), zap.Any("config", redacted(config)))

	return logger, config
}

func loadDirectory(config *Config, logger *zap.Logger) (*directory.Directory, error) {
	path := strings.TrimSpace(config.DirectoryFile)
	if path == "" {
		logger.Debug("using the built-in sample directory")
		return directory.Sample(), nil
	}

	d, err := directory.Load(path)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded company directory", zap.String("file", path), zap.Int("companies", d.Len()))
	return d, nil
}

func newClassifier(ctx context.Context, cfg *ClassifierConfig, logger *zap.Logger) (ai.Classifier, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set classifier.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "rest"
	}

	var generator ai.Generator
	switch backend {
	case "rest":
		generator, err = gemini.NewRESTGenerator(cfg.BaseURL, apiKey, cfg.Model, cfg.Timeout)
	case "sdk":
		generator, err = gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unsupported classifier backend: %s", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("building %s generator: %w", backend, err)
	}

	logger.Debug("classifier ready",
		zap.String("backend", backend),
		zap.String("model", generator.Model()),
		zap.Int("max_retries", cfg.MaxRetries),
	)

	return gemini.NewClassifier(generator, logger, gemini.Options{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		MaxLogLength: cfg.MaxLogLength,
	}), nil
}

// redacted returns a copy of the config safe to log.
func redacted(config *Config) Config {
	out := *config
	if config.Classifier != nil {
		classifier := *config.Classifier
		if classifier.APIKey != "" {
			classifier.APIKey = "REDACTED"
		}
		out.Classifier = &classifier
	}
	return out
}
